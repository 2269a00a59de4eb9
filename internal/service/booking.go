package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lendly/internal/apperrors"
	"lendly/internal/availability"
	"lendly/internal/cache"
	"lendly/internal/domain"
	"lendly/internal/events"
	"lendly/internal/logger"
	"lendly/internal/repository"
)

type bookingService struct {
	requestRepo repository.RequestRepository
	itemRepo    repository.ItemRepository
	userRepo    repository.UserRepository
	noteRepo    repository.NotificationRepository
	emailSvc    EmailService
	publisher   events.Publisher
	cache       cache.Cache
	now         func() time.Time
}

func NewBookingService(
	requestRepo repository.RequestRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	publisher events.Publisher,
	itemCache cache.Cache,
) BookingService {
	return &bookingService{
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		noteRepo:    noteRepo,
		emailSvc:    emailSvc,
		publisher:   publisher,
		cache:       itemCache,
		now:         time.Now,
	}
}

func (s *bookingService) CreateRequest(ctx context.Context, requesterID, itemID string, timeFrame domain.DateRange) (*domain.RentalRequest, error) {
	if err := timeFrame.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error(), "timeFrame")
	}
	today := domain.DateOf(s.now().UTC())
	if timeFrame.StartDate.Before(today) {
		return nil, apperrors.NewValidation("start date is in the past", "startDate")
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == requesterID {
		return nil, apperrors.NewForbidden("cannot book your own item")
	}

	now := s.now().UTC()
	req := &domain.RentalRequest{
		ID:          uuid.New().String(),
		OwnerID:     item.OwnerID,
		RequesterID: requesterID,
		ItemID:      itemID,
		Price:       availability.PriceInterval(item.Price, timeFrame),
		TimeFrame:   timeFrame,
		Status:      domain.StatusOpen,
		CreatedOn:   now,
		UpdatedOn:   now,
	}
	req.Deposit = req.DefaultDeposit()

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	requester, _ := s.userRepo.GetByID(ctx, requesterID)
	if requester != nil {
		s.notify(ctx, item.OwnerID, "New rental request",
			fmt.Sprintf("%s wants to rent %s from %s to %s",
				requester.DisplayName(), item.Title, req.TimeFrame.StartDate, req.TimeFrame.EndDate),
			req.ID)
		if owner, _ := s.userRepo.GetByID(ctx, item.OwnerID); owner != nil {
			if err := s.emailSvc.SendRequestCreated(ctx, owner.Email, requester.DisplayName(), item.Title); err != nil {
				logger.Warn("request-created email failed", "request_id", req.ID, "error", err)
			}
		}
	}
	s.publish(ctx, events.TypeRequestCreated, req)

	return req, nil
}

func (s *bookingService) GetRequest(ctx context.Context, userID, requestID string) (*domain.FullRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != userID && req.RequesterID != userID {
		return nil, apperrors.NewForbidden("not a party to this request")
	}
	return s.expand(ctx, req), nil
}

func (s *bookingService) ListRequestsToUser(ctx context.Context, ownerID string, status domain.RequestStatus) ([]domain.FullRequest, error) {
	if status != "" && !domain.ValidStatus(string(status)) {
		return nil, apperrors.NewValidation("unknown status "+string(status), "status")
	}
	reqs, err := s.requestRepo.ListByOwner(ctx, ownerID, status)
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, reqs), nil
}

func (s *bookingService) ListRequestsFromUser(ctx context.Context, requesterID string, status domain.RequestStatus) ([]domain.FullRequest, error) {
	if status != "" && !domain.ValidStatus(string(status)) {
		return nil, apperrors.NewValidation("unknown status "+string(status), "status")
	}
	reqs, err := s.requestRepo.ListByRequester(ctx, requesterID, status)
	if err != nil {
		return nil, err
	}
	return s.expandAll(ctx, reqs), nil
}

func (s *bookingService) ApproveRequest(ctx context.Context, ownerID, requestID string, deposit *domain.Price) (*domain.RentalRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != ownerID {
		return nil, apperrors.NewForbidden("only the owner may accept a request")
	}
	if err := req.TransitionTo(domain.StatusAccepted, s.now()); err != nil {
		return nil, apperrors.NewValidation(fmt.Sprintf("cannot accept a %s request", req.Status), "status")
	}
	if deposit != nil {
		if *deposit < 0 {
			return nil, apperrors.NewValidation("deposit cannot be negative", "deposit")
		}
		req.Deposit = *deposit
	}

	if err := s.requestRepo.Approve(ctx, req); err != nil {
		return nil, err
	}
	s.invalidateItem(ctx, req.ItemID)

	s.notifyTransition(ctx, req, req.RequesterID, "Request accepted",
		func(item *domain.Item, email string) error {
			return s.emailSvc.SendRequestAccepted(ctx, email, item.Title, req.Deposit.String())
		})
	s.publish(ctx, events.TypeRequestAccepted, req)

	return req, nil
}

func (s *bookingService) DenyRequest(ctx context.Context, ownerID, requestID string) (*domain.RentalRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != ownerID {
		return nil, apperrors.NewForbidden("only the owner may deny a request")
	}
	if !req.Status.CanTransitionTo(domain.StatusDenied) {
		return nil, apperrors.NewValidation(fmt.Sprintf("cannot deny a %s request", req.Status), "status")
	}

	updated, err := s.requestRepo.UpdateStatus(ctx, requestID, domain.StatusOpen, domain.StatusDenied)
	if err != nil {
		return nil, err
	}

	s.notifyTransition(ctx, updated, updated.RequesterID, "Request denied",
		func(item *domain.Item, email string) error {
			return s.emailSvc.SendRequestDenied(ctx, email, item.Title)
		})
	s.publish(ctx, events.TypeRequestDenied, updated)

	return updated, nil
}

// ConfirmHandoff is triggered by scanning the request's QR code. A scan
// for a request that does not exist in accepted state looks the same as
// a scan for no request at all.
func (s *bookingService) ConfirmHandoff(ctx context.Context, actorID, requestID string) (*domain.RentalRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != actorID && req.RequesterID != actorID {
		return nil, apperrors.NewNotFound("request", requestID)
	}
	if req.Status != domain.StatusAccepted {
		return nil, apperrors.NewNotFound("request", requestID)
	}
	// A lapsed acceptance loses its days to the nightly release; its QR
	// code must not activate a rental over days someone else may hold.
	if req.TimeFrame.EndDate.Before(domain.DateOf(s.now().UTC())) {
		return nil, apperrors.NewNotFound("request", requestID)
	}

	updated, err := s.requestRepo.Activate(ctx, requestID)
	if err != nil {
		return nil, err
	}
	s.invalidateItem(ctx, updated.ItemID)

	s.notifyTransition(ctx, updated, updated.OwnerID, "Item handed over",
		func(item *domain.Item, email string) error {
			return s.emailSvc.SendHandoffConfirmed(ctx, email, item.Title)
		})
	s.publish(ctx, events.TypeRentalActivated, updated)

	return updated, nil
}

func (s *bookingService) ConfirmReturn(ctx context.Context, ownerID, requestID string) (*domain.RentalRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.OwnerID != ownerID {
		return nil, apperrors.NewForbidden("only the owner may confirm a return")
	}
	if !req.Status.CanTransitionTo(domain.StatusClosed) {
		return nil, apperrors.NewValidation(fmt.Sprintf("cannot close a %s request", req.Status), "status")
	}

	updated, err := s.requestRepo.Close(ctx, requestID)
	if err != nil {
		return nil, err
	}
	s.invalidateItem(ctx, updated.ItemID)

	s.notifyTransition(ctx, updated, updated.RequesterID, "Return confirmed",
		func(item *domain.Item, email string) error {
			return s.emailSvc.SendReturnConfirmed(ctx, email, item.Title)
		})
	s.publish(ctx, events.TypeRentalClosed, updated)

	return updated, nil
}

func (s *bookingService) expand(ctx context.Context, req *domain.RentalRequest) *domain.FullRequest {
	full := &domain.FullRequest{RentalRequest: *req}
	full.Requester, _ = s.userRepo.GetByID(ctx, req.RequesterID)
	full.Item, _ = s.itemRepo.GetByID(ctx, req.ItemID)
	return full
}

func (s *bookingService) expandAll(ctx context.Context, reqs []domain.RentalRequest) []domain.FullRequest {
	full := make([]domain.FullRequest, 0, len(reqs))
	for i := range reqs {
		full = append(full, *s.expand(ctx, &reqs[i]))
	}
	return full
}

// notifyTransition creates the in-app notification and emails the given
// counterparty. Best effort: failures are logged, the transition stands.
func (s *bookingService) notifyTransition(ctx context.Context, req *domain.RentalRequest, recipientID, title string, send func(*domain.Item, string) error) {
	item, err := s.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		logger.Warn("transition notification skipped", "request_id", req.ID, "error", err)
		return
	}
	s.notify(ctx, recipientID, title, fmt.Sprintf("%s: %s", title, item.Title), req.ID)
	if recipient, _ := s.userRepo.GetByID(ctx, recipientID); recipient != nil {
		if err := send(item, recipient.Email); err != nil {
			logger.Warn("transition email failed", "request_id", req.ID, "error", err)
		}
	}
}

func (s *bookingService) notify(ctx context.Context, userID, title, message, requestID string) {
	note := &domain.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Title:   title,
		Message: message,
		Attributes: map[string]string{
			"type":       "RENTAL_REQUEST",
			"request_id": requestID,
		},
		CreatedOn: s.now().UTC(),
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("notification create failed", "user_id", userID, "error", err)
	}
}

func (s *bookingService) publish(ctx context.Context, eventType string, req *domain.RentalRequest) {
	if err := s.publisher.Publish(ctx, eventType, req.ItemID, req); err != nil {
		logger.Warn("event publish failed", "type", eventType, "request_id", req.ID, "error", err)
	}
}

func (s *bookingService) invalidateItem(ctx context.Context, itemID string) {
	if err := s.cache.Delete(ctx, cache.ItemKey(itemID), cache.ItemsListKey()); err != nil {
		logger.Warn("cache invalidation failed", "item_id", itemID, "error", err)
	}
}
