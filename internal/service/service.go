package service

import (
	"context"

	"lendly/internal/availability"
	"lendly/internal/domain"
)

// BookingService drives the rental request lifecycle.
type BookingService interface {
	// CreateRequest validates the proposed time frame, prices it and
	// persists an open request. A time frame overlapping a committed
	// rental period is a conflict.
	CreateRequest(ctx context.Context, requesterID, itemID string, timeFrame domain.DateRange) (*domain.RentalRequest, error)
	GetRequest(ctx context.Context, userID, requestID string) (*domain.FullRequest, error)
	ListRequestsToUser(ctx context.Context, ownerID string, status domain.RequestStatus) ([]domain.FullRequest, error)
	ListRequestsFromUser(ctx context.Context, requesterID string, status domain.RequestStatus) ([]domain.FullRequest, error)
	// ApproveRequest moves open → accepted and commits the time frame as
	// a rental period. A non-nil deposit overrides the default; the
	// deposit is frozen from this point on.
	ApproveRequest(ctx context.Context, ownerID, requestID string, deposit *domain.Price) (*domain.RentalRequest, error)
	DenyRequest(ctx context.Context, ownerID, requestID string) (*domain.RentalRequest, error)
	// ConfirmHandoff is the QR scan: accepted → active plus the item's
	// rented-by stamp. Either party to the request may scan.
	ConfirmHandoff(ctx context.Context, actorID, requestID string) (*domain.RentalRequest, error)
	// ConfirmReturn is owner-only: active → closed, clearing the item's
	// rented-by flag.
	ConfirmReturn(ctx context.Context, ownerID, requestID string) (*domain.RentalRequest, error)
}

type ItemService interface {
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID string) ([]domain.Item, error)
	ListItemsRentedBy(ctx context.Context, userID string) ([]domain.Item, error)
	ListItemsRentedOut(ctx context.Context, ownerID string) ([]domain.Item, error)
	// GetRates returns the informational daily/weekly/monthly card for
	// an item. Display only; the persisted charge always uses the daily
	// rate.
	GetRates(ctx context.Context, itemID string) (*availability.RateCard, error)
}

type UserService interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUsersBulk(ctx context.Context, ids []string) ([]domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type ChatService interface {
	GetChat(ctx context.Context, userID, chatID string) (*domain.Chat, error)
	ListChats(ctx context.Context, userID string) ([]domain.ChatPreview, error)
	ListMessages(ctx context.Context, userID, chatID string) ([]domain.Message, error)
	SendMessage(ctx context.Context, senderID, chatID, text string) (*domain.Message, error)
	MarkMessagesRead(ctx context.Context, readerID, chatID string) (int64, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

// EmailService notifies the counterparty on lifecycle transitions.
// Failures are logged and never block the transition.
type EmailService interface {
	SendRequestCreated(ctx context.Context, to, requesterName, itemTitle string) error
	SendRequestAccepted(ctx context.Context, to, itemTitle, deposit string) error
	SendRequestDenied(ctx context.Context, to, itemTitle string) error
	SendHandoffConfirmed(ctx context.Context, to, itemTitle string) error
	SendReturnConfirmed(ctx context.Context, to, itemTitle string) error
	SendRentalOverdue(ctx context.Context, to, itemTitle, dueDate string) error
}
