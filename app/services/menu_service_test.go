package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/app/services"
)

type fakeMenuStore struct {
	items   []models.MenuItem
	deleted string
	err     error
}

func (f *fakeMenuStore) All(_ context.Context) ([]models.MenuItem, error) {
	return f.items, f.err
}

func (f *fakeMenuStore) Create(_ context.Context, _ *models.MenuItem) (string, error) {
	return "menu-1", f.err
}

func (f *fakeMenuStore) Delete(_ context.Context, id string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deleted = id
	return 1, nil
}

func TestMenuList(t *testing.T) {
	store := &fakeMenuStore{items: []models.MenuItem{{Name: "Margherita", Category: "pizza", Price: 12.5}}}
	svc := services.NewMenuService(store)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Margherita", items[0].Name)
}

func TestMenuAddAndDelete(t *testing.T) {
	store := &fakeMenuStore{}
	svc := services.NewMenuService(store)

	id, err := svc.Add(context.Background(), &models.MenuItem{Name: "Tiramisu", Category: "dessert", Price: 6.5})
	require.NoError(t, err)
	assert.Equal(t, "menu-1", id)

	removed, err := svc.Delete(context.Background(), "64f1c0ffee64f1c0ffee64f1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.Equal(t, "64f1c0ffee64f1c0ffee64f1", store.deleted)
}

func TestMenuList_StoreError(t *testing.T) {
	svc := services.NewMenuService(&fakeMenuStore{err: errors.New("cursor timeout")})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, services.ErrPersistence)
}
