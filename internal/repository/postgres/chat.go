package postgres

import (
	"context"
	"database/sql"

	"lendly/internal/apperrors"
	"lendly/internal/domain"
	"lendly/internal/repository"
)

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*domain.Chat, error) {
	chat := &domain.Chat{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, user_id, created_at FROM chats WHERE id = $1`, id).
		Scan(&chat.ID, &chat.OwnerID, &chat.UserID, &chat.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFound("chat", id)
	}
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// ListByUser returns every chat the user is a party to, each joined with
// its latest message, newest conversation first.
func (r *chatRepository) ListByUser(ctx context.Context, userID string) ([]domain.ChatPreview, error) {
	query := `
		SELECT c.id, c.owner_id, c.user_id, c.created_at,
		       m.id, m.chat_id, m.owner_id, m.text, m.timestamp, m.read
		FROM chats c
		LEFT JOIN LATERAL (
			SELECT id, chat_id, owner_id, text, timestamp, read
			FROM messages WHERE chat_id = c.id
			ORDER BY timestamp DESC LIMIT 1
		) m ON true
		WHERE c.owner_id = $1 OR c.user_id = $1
		ORDER BY COALESCE(m.timestamp, c.created_at) DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var previews []domain.ChatPreview
	for rows.Next() {
		var p domain.ChatPreview
		var msgID, msgChatID, msgOwnerID, msgText sql.NullString
		var msgTimestamp, msgRead sql.NullTime
		err := rows.Scan(&p.ID, &p.OwnerID, &p.UserID, &p.CreatedAt,
			&msgID, &msgChatID, &msgOwnerID, &msgText, &msgTimestamp, &msgRead)
		if err != nil {
			return nil, err
		}
		if msgID.Valid {
			msg := &domain.Message{
				ID:        msgID.String,
				ChatID:    msgChatID.String,
				OwnerID:   msgOwnerID.String,
				Text:      msgText.String,
				Timestamp: msgTimestamp.Time,
			}
			if msgRead.Valid {
				t := msgRead.Time
				msg.Read = &t
			}
			p.LastMessage = msg
		}
		previews = append(previews, p)
	}
	return previews, rows.Err()
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (id, chat_id, owner_id, text, timestamp, read) VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.ChatID, msg.OwnerID, msg.Text, msg.Timestamp, msg.Read)
	return err
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID string) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, chat_id, owner_id, text, timestamp, read FROM messages WHERE chat_id = $1 ORDER BY timestamp`,
		chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var read sql.NullTime
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.OwnerID, &msg.Text, &msg.Timestamp, &read); err != nil {
			return nil, err
		}
		if read.Valid {
			t := read.Time
			msg.Read = &t
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *chatRepository) MarkRead(ctx context.Context, chatID, readerID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE messages SET read = NOW() WHERE chat_id = $1 AND owner_id <> $2 AND read IS NULL`,
		chatID, readerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
