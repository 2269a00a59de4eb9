package repository

import (
	"context"

	"lendly/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetBulk(ctx context.Context, ids []string) ([]domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type ItemRepository interface {
	// GetByID returns the item with its committed rental periods loaded.
	GetByID(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
	// ListRentedBy returns items a user currently holds as renter.
	ListRentedBy(ctx context.Context, userID string) ([]domain.Item, error)
	// ListRentedOut returns an owner's items that are currently lent out.
	ListRentedOut(ctx context.Context, ownerID string) ([]domain.Item, error)
}

type RequestRepository interface {
	// Create persists a new request after re-checking availability under
	// a per-item row lease, making check-then-book atomic per item. A
	// losing race returns a conflict.
	Create(ctx context.Context, req *domain.RentalRequest) error
	GetByID(ctx context.Context, id string) (*domain.RentalRequest, error)
	// Approve transitions open → accepted, stamps the deposit and commits
	// the request's time frame as a rental period, in one transaction.
	Approve(ctx context.Context, req *domain.RentalRequest) error
	// UpdateStatus performs a guarded single-row status update (deny).
	UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus) (*domain.RentalRequest, error)
	// Activate is the handoff commit: accepted → active plus the item's
	// currently-rented-by stamp, in one transaction.
	Activate(ctx context.Context, requestID string) (*domain.RentalRequest, error)
	// Close is the return commit: active → closed plus clearing the
	// item's currently-rented-by flag, in one transaction.
	Close(ctx context.Context, requestID string) (*domain.RentalRequest, error)
	ListByOwner(ctx context.Context, ownerID string, status domain.RequestStatus) ([]domain.RentalRequest, error)
	ListByRequester(ctx context.Context, requesterID string, status domain.RequestStatus) ([]domain.RentalRequest, error)
	// ListOverdue returns active requests whose end date is before the
	// given day.
	ListOverdue(ctx context.Context, before domain.Date) ([]domain.RentalRequest, error)
	// ReleaseLapsedPeriods deletes rental periods held by requests that
	// stayed in accepted past their end date without a handoff. Returns
	// the number of periods released.
	ReleaseLapsedPeriods(ctx context.Context, before domain.Date) (int64, error)
}

type ChatRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Chat, error)
	ListByUser(ctx context.Context, userID string) ([]domain.ChatPreview, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, chatID string) ([]domain.Message, error)
	// MarkRead stamps all unread messages in a chat not authored by the
	// reader; returns the number updated.
	MarkRead(ctx context.Context, chatID, readerID string) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}
