package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistrohq/bistro/app/models"
)

// CartStore is the persistence contract the cart ledger needs.
type CartStore interface {
	FindByOwner(ctx context.Context, owner string) ([]models.CartItem, error)
	Insert(ctx context.Context, item *models.CartItem) (string, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// CartService owns per-owner cart entries and enforces ownership on read.
type CartService struct {
	carts CartStore
}

func NewCartService(carts CartStore) *CartService {
	return &CartService{carts: carts}
}

// List returns the cart items belonging to owner. The caller's verified
// email must match owner; anything else is forbidden. An empty owner yields
// an empty sequence rather than an error.
func (s *CartService) List(ctx context.Context, owner, principalEmail string) ([]models.CartItem, error) {
	if owner == "" {
		return []models.CartItem{}, nil
	}
	if owner != principalEmail {
		return nil, ErrForbidden
	}

	items, err := s.carts.FindByOwner(ctx, owner)
	if err != nil {
		return nil, errors.Join(ErrPersistence, err)
	}
	return items, nil
}

// Add inserts a cart item and returns its id.
func (s *CartService) Add(ctx context.Context, item *models.CartItem) (string, error) {
	id, err := s.carts.Insert(ctx, item)
	if err != nil {
		return "", errors.Join(ErrPersistence, err)
	}
	return id, nil
}

// Remove deletes a cart item by id. Ownership is not checked here; listing
// is the only owner-gated cart operation.
func (s *CartService) Remove(ctx context.Context, id string) (int64, error) {
	removed, err := s.carts.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("remove cart item: %w", errors.Join(ErrPersistence, err))
	}
	return removed, nil
}
