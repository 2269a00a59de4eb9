package service

import (
	"context"
	"time"

	"lendly/internal/availability"
	"lendly/internal/cache"
	"lendly/internal/domain"
	"lendly/internal/logger"
	"lendly/internal/repository"
)

type itemService struct {
	itemRepo repository.ItemRepository
	cache    cache.Cache
	ttl      time.Duration
}

func NewItemService(itemRepo repository.ItemRepository, itemCache cache.Cache, ttl time.Duration) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		cache:    itemCache,
		ttl:      ttl,
	}
}

// GetItem is read-through cached. Booking mutations invalidate the
// item's key, so a hit is never staler than the last committed period.
func (s *itemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	var cached domain.Item
	if err := s.cache.GetJSON(ctx, cache.ItemKey(id), &cached); err == nil {
		return &cached, nil
	} else if err != cache.ErrMiss {
		logger.Warn("item cache read failed", "item_id", id, "error", err)
	}

	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, cache.ItemKey(id), item, s.ttl); err != nil {
		logger.Warn("item cache write failed", "item_id", id, "error", err)
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context) ([]domain.Item, error) {
	var cached []domain.Item
	if err := s.cache.GetJSON(ctx, cache.ItemsListKey(), &cached); err == nil {
		return cached, nil
	}

	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, cache.ItemsListKey(), items, s.ttl); err != nil {
		logger.Warn("item list cache write failed", "error", err)
	}
	return items, nil
}

func (s *itemService) ListItemsByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	return s.itemRepo.ListByOwner(ctx, ownerID)
}

func (s *itemService) ListItemsRentedBy(ctx context.Context, userID string) ([]domain.Item, error) {
	return s.itemRepo.ListRentedBy(ctx, userID)
}

func (s *itemService) ListItemsRentedOut(ctx context.Context, ownerID string) ([]domain.Item, error) {
	return s.itemRepo.ListRentedOut(ctx, ownerID)
}

func (s *itemService) GetRates(ctx context.Context, itemID string) (*availability.RateCard, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	card := availability.Rates(item.Price)
	return &card, nil
}
