package postgres

import (
	"database/sql"

	"lendly/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ItemRepository
	repository.RequestRepository
	repository.ChatRepository
	repository.NotificationRepository
}

// Ping reports whether the backing database is reachable.
func (s *Store) Ping() error {
	return s.db.Ping()
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ItemRepository:         NewItemRepository(db),
		RequestRepository:      NewRequestRepository(db),
		ChatRepository:         NewChatRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
