package service

import (
	"context"
	"time"

	"lendly/internal/cache"
	"lendly/internal/domain"
	"lendly/internal/logger"
	"lendly/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	cache    cache.Cache
	ttl      time.Duration
}

func NewUserService(userRepo repository.UserRepository, userCache cache.Cache, ttl time.Duration) UserService {
	return &userService{
		userRepo: userRepo,
		cache:    userCache,
		ttl:      ttl,
	}
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var cached domain.User
	if err := s.cache.GetJSON(ctx, cache.UserKey(id), &cached); err == nil {
		return &cached, nil
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, cache.UserKey(id), user, s.ttl); err != nil {
		logger.Warn("user cache write failed", "user_id", id, "error", err)
	}
	return user, nil
}

func (s *userService) GetUsersBulk(ctx context.Context, ids []string) ([]domain.User, error) {
	return s.userRepo.GetBulk(ctx, ids)
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}
