package services

import (
	"context"
	"errors"
	"time"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/pkg/cache"
)

const (
	menuCacheKey = "menu:catalog"
	menuCacheTTL = 5 * time.Minute
)

// MenuStore is the persistence contract for the catalog.
type MenuStore interface {
	All(ctx context.Context) ([]models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// MenuService serves the catalog. Listings go through a short-lived Redis
// cache that admin mutations invalidate; reports never read this cache.
type MenuService struct {
	menu MenuStore
}

func NewMenuService(menu MenuStore) *MenuService {
	return &MenuService{menu: menu}
}

// List returns the full catalog, cached.
func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if cache.Get(ctx, menuCacheKey, &items) {
		return items, nil
	}

	items, err := s.menu.All(ctx)
	if err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}

	_ = cache.Set(ctx, menuCacheKey, items, menuCacheTTL)
	return items, nil
}

// Add inserts a catalog entry and drops the cached listing.
func (s *MenuService) Add(ctx context.Context, item *models.MenuItem) (string, error) {
	id, err := s.menu.Create(ctx, item)
	if err != nil {
		return "", errors.Join(ErrPersistence, err)
	}
	_ = cache.Del(ctx, menuCacheKey)
	return id, nil
}

// Delete removes a catalog entry and drops the cached listing.
func (s *MenuService) Delete(ctx context.Context, id string) (int64, error) {
	removed, err := s.menu.Delete(ctx, id)
	if err != nil {
		return 0, errors.Join(ErrPersistence, err)
	}
	_ = cache.Del(ctx, menuCacheKey)
	return removed, nil
}
