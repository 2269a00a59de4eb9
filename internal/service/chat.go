package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"lendly/internal/apperrors"
	"lendly/internal/domain"
	"lendly/internal/repository"
)

type chatService struct {
	chatRepo repository.ChatRepository
	now      func() time.Time
}

func NewChatService(chatRepo repository.ChatRepository) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		now:      time.Now,
	}
}

func (s *chatService) GetChat(ctx context.Context, userID, chatID string) (*domain.Chat, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.Involves(userID) {
		return nil, apperrors.NewForbidden("not a party to this chat")
	}
	return chat, nil
}

func (s *chatService) ListChats(ctx context.Context, userID string) ([]domain.ChatPreview, error) {
	return s.chatRepo.ListByUser(ctx, userID)
}

func (s *chatService) ListMessages(ctx context.Context, userID, chatID string) ([]domain.Message, error) {
	if _, err := s.GetChat(ctx, userID, chatID); err != nil {
		return nil, err
	}
	return s.chatRepo.ListMessages(ctx, chatID)
}

func (s *chatService) SendMessage(ctx context.Context, senderID, chatID, text string) (*domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidation("message text is empty", "text")
	}
	if _, err := s.GetChat(ctx, senderID, chatID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		OwnerID:   senderID,
		Text:      text,
		Timestamp: s.now().UTC(),
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *chatService) MarkMessagesRead(ctx context.Context, readerID, chatID string) (int64, error) {
	if _, err := s.GetChat(ctx, readerID, chatID); err != nil {
		return 0, err
	}
	return s.chatRepo.MarkRead(ctx, chatID, readerID)
}
