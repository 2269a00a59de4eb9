package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendly/internal/config"
	"lendly/internal/domain"
	"lendly/internal/events"
	"lendly/internal/repository"
	"lendly/internal/repository/postgres"
)

// The stubs embed the repository interfaces so only the methods a job
// touches need an implementation.

type stubRequestRepo struct {
	repository.RequestRepository
	overdue  []domain.RentalRequest
	released int64
	gotDay   domain.Date
}

func (s *stubRequestRepo) ListOverdue(_ context.Context, before domain.Date) ([]domain.RentalRequest, error) {
	s.gotDay = before
	return s.overdue, nil
}

func (s *stubRequestRepo) ReleaseLapsedPeriods(_ context.Context, before domain.Date) (int64, error) {
	s.gotDay = before
	return s.released, nil
}

type stubItemRepo struct {
	repository.ItemRepository
	item *domain.Item
}

func (s *stubItemRepo) GetByID(context.Context, string) (*domain.Item, error) {
	return s.item, nil
}

type stubUserRepo struct {
	repository.UserRepository
	user *domain.User
}

func (s *stubUserRepo) GetByID(context.Context, string) (*domain.User, error) {
	return s.user, nil
}

type stubNotificationRepo struct {
	repository.NotificationRepository
	created []domain.Notification
}

func (s *stubNotificationRepo) Create(_ context.Context, note *domain.Notification) error {
	s.created = append(s.created, *note)
	return nil
}

type stubEmail struct {
	overdueTo []string
}

func (s *stubEmail) SendRequestCreated(context.Context, string, string, string) error { return nil }
func (s *stubEmail) SendRequestAccepted(context.Context, string, string, string) error {
	return nil
}
func (s *stubEmail) SendRequestDenied(context.Context, string, string) error    { return nil }
func (s *stubEmail) SendHandoffConfirmed(context.Context, string, string) error { return nil }
func (s *stubEmail) SendReturnConfirmed(context.Context, string, string) error  { return nil }
func (s *stubEmail) SendRentalOverdue(_ context.Context, to, _, _ string) error {
	s.overdueTo = append(s.overdueTo, to)
	return nil
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestMarkOverdueRentals(t *testing.T) {
	start := mustDate(t, "2024-06-11")
	end := mustDate(t, "2024-06-15")
	requests := &stubRequestRepo{
		overdue: []domain.RentalRequest{{
			ID:          "req-1",
			OwnerID:     "owner-1",
			RequesterID: "renter-1",
			ItemID:      "item-1",
			Status:      domain.StatusActive,
			TimeFrame:   domain.DateRange{StartDate: start, EndDate: end},
		}},
	}
	notes := &stubNotificationRepo{}
	email := &stubEmail{}

	runner := NewJobRunner(&postgres.Store{
		RequestRepository:      requests,
		ItemRepository:         &stubItemRepo{item: &domain.Item{ID: "item-1", Title: "Drill"}},
		UserRepository:         &stubUserRepo{user: &domain.User{ID: "renter-1", Email: "renter@example.com"}},
		NotificationRepository: notes,
	}, email, events.NewNoop(), &config.Config{})

	runner.MarkOverdueRentals()

	assert.Equal(t, domain.DateOf(time.Now().UTC()), requests.gotDay)
	assert.Equal(t, []string{"renter@example.com"}, email.overdueTo)

	require.Len(t, notes.created, 2)
	recipients := []string{notes.created[0].UserID, notes.created[1].UserID}
	assert.ElementsMatch(t, []string{"renter-1", "owner-1"}, recipients)
	assert.Equal(t, "Rental overdue", notes.created[0].Title)
	assert.Contains(t, notes.created[0].Message, "Drill")
	assert.Contains(t, notes.created[0].Message, "2024-06-15")
}

func TestMarkOverdueRentals_NothingDue(t *testing.T) {
	requests := &stubRequestRepo{}
	notes := &stubNotificationRepo{}
	email := &stubEmail{}

	runner := NewJobRunner(&postgres.Store{
		RequestRepository:      requests,
		NotificationRepository: notes,
	}, email, events.NewNoop(), &config.Config{})

	runner.MarkOverdueRentals()

	assert.Empty(t, notes.created)
	assert.Empty(t, email.overdueTo)
}

func TestExpireLapsedRequests(t *testing.T) {
	requests := &stubRequestRepo{released: 3}

	runner := NewJobRunner(&postgres.Store{
		RequestRepository: requests,
	}, &stubEmail{}, events.NewNoop(), &config.Config{})

	runner.ExpireLapsedRequests()

	assert.Equal(t, domain.DateOf(time.Now().UTC()), requests.gotDay)
}
