package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendly/internal/apperrors"
)

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET read").
			WithArgs("note-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkAsRead(ctx, "note-1", "user-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown or foreign notification", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET read").
			WithArgs("note-9", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkAsRead(ctx, "note-9", "user-1")
		assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
