package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lendly/internal/domain"
	"lendly/internal/events"
	"lendly/internal/logger"
)

// MarkOverdueRentals notifies both parties of active rentals past their
// end date. The request stays active until the owner confirms the
// return; this job only surfaces the overdue state.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()
		today := domain.DateOf(time.Now().UTC())

		overdue, err := jr.store.RequestRepository.ListOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to list overdue rentals", "error", err)
			return
		}

		for i := range overdue {
			req := &overdue[i]
			jr.notifyOverdue(ctx, req)
			if err := jr.publisher.Publish(ctx, events.TypeRentalOverdue, req.ItemID, req); err != nil {
				logger.Warn("overdue event publish failed", "request_id", req.ID, "error", err)
			}
		}

		logger.Info("Overdue rentals processed", "count", len(overdue))
	})
}

func (jr *JobRunner) notifyOverdue(ctx context.Context, req *domain.RentalRequest) {
	item, err := jr.store.ItemRepository.GetByID(ctx, req.ItemID)
	if err != nil {
		logger.Warn("overdue notification skipped", "request_id", req.ID, "error", err)
		return
	}

	if requester, err := jr.store.UserRepository.GetByID(ctx, req.RequesterID); err != nil {
		logger.Warn("overdue email skipped", "request_id", req.ID, "error", err)
	} else if err := jr.emailSvc.SendRentalOverdue(ctx, requester.Email, item.Title, req.TimeFrame.EndDate.String()); err != nil {
		logger.Warn("overdue email failed", "request_id", req.ID, "error", err)
	}

	now := time.Now().UTC()
	for _, recipientID := range []string{req.RequesterID, req.OwnerID} {
		note := &domain.Notification{
			ID:      uuid.New().String(),
			UserID:  recipientID,
			Title:   "Rental overdue",
			Message: fmt.Sprintf("The rental of %s was due back on %s", item.Title, req.TimeFrame.EndDate),
			Attributes: map[string]string{
				"type":       "RENTAL_OVERDUE",
				"request_id": req.ID,
			},
			CreatedOn: now,
		}
		if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
			logger.Warn("overdue notification failed", "user_id", recipientID, "error", err)
		}
	}
}

// ExpireLapsedRequests frees the booked days of accepted requests whose
// window passed without a handoff, so those days can be booked again.
func (jr *JobRunner) ExpireLapsedRequests() {
	jr.runWithRecovery("ExpireLapsedRequests", func() {
		ctx := context.Background()
		today := domain.DateOf(time.Now().UTC())

		released, err := jr.store.RequestRepository.ReleaseLapsedPeriods(ctx, today)
		if err != nil {
			logger.Error("Failed to release lapsed periods", "error", err)
			return
		}
		logger.Info("Lapsed rental periods released", "count", released)
	})
}
