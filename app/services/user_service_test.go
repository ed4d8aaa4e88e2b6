package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/pkg/auth"
)

type fakeUserStore struct {
	byEmail  map[string]*models.User
	created  *models.User
	promoted string
	lookups  int
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.lookups++
	return f.byEmail[email], nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) (string, error) {
	f.created = user
	return primitive.NewObjectID().Hex(), nil
}

func (f *fakeUserStore) All(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) Promote(_ context.Context, id string) error {
	f.promoted = id
	return nil
}

func (f *fakeUserStore) DeleteByEmail(_ context.Context, email string) (int64, error) {
	if _, ok := f.byEmail[email]; !ok {
		return 0, nil
	}
	delete(f.byEmail, email)
	return 1, nil
}

func TestRegister_NewUserHashesPassword(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{}}
	svc := services.NewUserService(store)

	created, id, err := svc.Register(context.Background(), &models.User{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "plain-text",
	})
	require.NoError(t, err)

	assert.True(t, created)
	assert.NotEmpty(t, id)
	require.NotNil(t, store.created)
	assert.NotEqual(t, "plain-text", store.created.Password)
	assert.True(t, auth.CheckPassword(store.created.Password, "plain-text"))
}

func TestRegister_ExistingEmailIsNoOp(t *testing.T) {
	existing := &models.User{ID: primitive.NewObjectID(), Email: "jane@example.com"}
	store := &fakeUserStore{byEmail: map[string]*models.User{"jane@example.com": existing}}
	svc := services.NewUserService(store)

	created, id, err := svc.Register(context.Background(), &models.User{Email: "jane@example.com"})
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, existing.ID.Hex(), id)
	assert.Nil(t, store.created, "no second record for an already-registered email")
}

func TestIsAdminFor_ForeignEmailAnsweredFalseWithoutLookup(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{}}
	svc := services.NewUserService(store)

	admin, err := svc.IsAdminFor(context.Background(), "other@example.com", "jane@example.com")
	require.NoError(t, err)
	assert.False(t, admin)
	assert.Zero(t, store.lookups, "foreign lookups never reach the directory")
}

func TestIsAdminFor_OwnEmail(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{
		"boss@example.com": {Email: "boss@example.com", Role: models.RoleAdmin},
		"jane@example.com": {Email: "jane@example.com"},
	}}
	svc := services.NewUserService(store)

	admin, err := svc.IsAdminFor(context.Background(), "boss@example.com", "boss@example.com")
	require.NoError(t, err)
	assert.True(t, admin)

	admin, err = svc.IsAdminFor(context.Background(), "jane@example.com", "jane@example.com")
	require.NoError(t, err)
	assert.False(t, admin)
}

func TestIsAdminFor_UnknownUser(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{}}
	svc := services.NewUserService(store)

	admin, err := svc.IsAdminFor(context.Background(), "ghost@example.com", "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, admin)
}

func TestPromote(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{}}
	svc := services.NewUserService(store)

	require.NoError(t, svc.Promote(context.Background(), "64f1c0ffee64f1c0ffee64f1"))
	assert.Equal(t, "64f1c0ffee64f1c0ffee64f1", store.promoted)
}

func TestDeleteByEmail(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{
		"jane@example.com": {Email: "jane@example.com"},
	}}
	svc := services.NewUserService(store)

	removed, err := svc.Delete(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = svc.Delete(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)
}
