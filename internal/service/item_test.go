package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendly/internal/cache"
	"lendly/internal/domain"
)

// fakeCache is an in-memory cache.Cache for exercising the read-through
// path without redis.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dest any) error {
	raw, ok := c.data[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func TestItemService_GetItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Miss then hit", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		fc := newFakeCache()
		svc := NewItemService(itemRepo, fc, time.Minute)

		itemRepo.On("GetByID", ctx, "item-1").Return(testItem(), nil).Once()

		first, err := svc.GetItem(ctx, "item-1")
		require.NoError(t, err)
		assert.Equal(t, "Drill", first.Title)

		// Second fetch is served from the cache; the repo is not hit again.
		second, err := svc.GetItem(ctx, "item-1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		itemRepo.AssertNumberOfCalls(t, "GetByID", 1)
	})

	t.Run("Invalidation forces a reload", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		fc := newFakeCache()
		svc := NewItemService(itemRepo, fc, time.Minute)

		itemRepo.On("GetByID", ctx, "item-1").Return(testItem(), nil)

		_, err := svc.GetItem(ctx, "item-1")
		require.NoError(t, err)
		require.NoError(t, fc.Delete(ctx, cache.ItemKey("item-1")))
		_, err = svc.GetItem(ctx, "item-1")
		require.NoError(t, err)
		itemRepo.AssertNumberOfCalls(t, "GetByID", 2)
	})
}

func TestItemService_GetRates(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepo)
	svc := NewItemService(itemRepo, cache.NewNoop(), time.Minute)

	itemRepo.On("GetByID", ctx, "item-1").Return(testItem(), nil)

	card, err := svc.GetRates(ctx, "item-1")
	require.NoError(t, err)
	// €20/day: weekly is 7 days less 10%, monthly 30 days less 30%.
	assert.Equal(t, domain.Price(2000), card.Daily)
	assert.Equal(t, domain.Price(12600), card.Weekly)
	assert.Equal(t, domain.Price(42000), card.Monthly)
}
