package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/app/services"
	"github.com/bistrohq/bistro/pkg/event"
	"github.com/bistrohq/bistro/pkg/gateway"
)

type fakePaymentStore struct {
	inserted *models.Payment
	id       string
	err      error
}

func (f *fakePaymentStore) Insert(_ context.Context, p *models.Payment) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.inserted = p
	return f.id, nil
}

type fakeCartSweeper struct {
	got []primitive.ObjectID
	err error
}

func (f *fakeCartSweeper) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.got = ids
	return int64(len(ids)), nil
}

type fakeIntentCreator struct {
	gotAmount   int64
	gotCurrency string
	gotMethods  []string
	intent      *gateway.Intent
	err         error
}

func (f *fakeIntentCreator) CreateIntent(_ context.Context, amount int64, currency string, methods []string) (*gateway.Intent, error) {
	f.gotAmount = amount
	f.gotCurrency = currency
	f.gotMethods = methods
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{19.99, 1999},
		{12.5, 1250},
		{0.1, 10},
		{2.50, 250},
		{0, 0},
		{100, 10000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, services.MinorUnits(tc.price), "price %v", tc.price)
	}
}

func TestCreateIntent_AmountInCents(t *testing.T) {
	intents := &fakeIntentCreator{intent: &gateway.Intent{ClientSecret: "pi_secret"}}
	svc := services.NewPaymentService(&fakePaymentStore{}, &fakeCartSweeper{}, intents)

	secret, err := svc.CreateIntent(context.Background(), 19.99)
	require.NoError(t, err)

	assert.Equal(t, "pi_secret", secret)
	assert.EqualValues(t, 1999, intents.gotAmount)
	assert.Equal(t, "usd", intents.gotCurrency)
	assert.Equal(t, []string{"card"}, intents.gotMethods)
}

func TestCreateIntent_GatewayFailure(t *testing.T) {
	intents := &fakeIntentCreator{err: errors.New("upstream timeout")}
	svc := services.NewPaymentService(&fakePaymentStore{}, &fakeCartSweeper{}, intents)

	_, err := svc.CreateIntent(context.Background(), 19.99)
	assert.ErrorIs(t, err, services.ErrGateway)
}

func TestFinalize_InsertThenSweep(t *testing.T) {
	event.Flush()
	defer event.Flush()

	recorded := make(chan services.PaymentRecorded, 1)
	event.Listen(services.EventPaymentRecorded, func(payload interface{}) {
		if rec, ok := payload.(services.PaymentRecorded); ok {
			recorded <- rec
		}
	})

	cartIDs := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}
	store := &fakePaymentStore{id: "pay-1"}
	sweeper := &fakeCartSweeper{}
	svc := services.NewPaymentService(store, sweeper, &fakeIntentCreator{})

	result, err := svc.Finalize(context.Background(), &models.Payment{
		Email:         "jane@example.com",
		TransactionID: "pi_123",
		Price:         19.99,
		CartItems:     cartIDs,
	})
	require.NoError(t, err)

	assert.Equal(t, "pay-1", result.PaymentID)
	assert.EqualValues(t, 2, result.Removed)
	assert.False(t, result.PartialFailure())
	assert.Equal(t, cartIDs, sweeper.got, "sweep must target exactly the referenced cart items")
	assert.False(t, store.inserted.Date.IsZero(), "finalize stamps the payment date")

	select {
	case rec := <-recorded:
		assert.Equal(t, "pay-1", rec.PaymentID)
		assert.Equal(t, "jane@example.com", rec.Email)
	case <-time.After(2 * time.Second):
		t.Fatal("payment.recorded event was not fired")
	}
}

func TestFinalize_InsertFailure(t *testing.T) {
	store := &fakePaymentStore{err: errors.New("write concern failed")}
	sweeper := &fakeCartSweeper{}
	svc := services.NewPaymentService(store, sweeper, &fakeIntentCreator{})

	_, err := svc.Finalize(context.Background(), &models.Payment{Email: "jane@example.com"})
	assert.ErrorIs(t, err, services.ErrPersistence)
	assert.Nil(t, sweeper.got, "cart must stay untouched when the insert fails")
}

func TestFinalize_PartialFailure(t *testing.T) {
	store := &fakePaymentStore{id: "pay-2"}
	sweeper := &fakeCartSweeper{err: errors.New("deleteMany failed")}
	svc := services.NewPaymentService(store, sweeper, &fakeIntentCreator{})

	result, err := svc.Finalize(context.Background(), &models.Payment{
		Email:     "jane@example.com",
		CartItems: []primitive.ObjectID{primitive.NewObjectID()},
	})
	require.NoError(t, err, "a recorded payment with failed cleanup is not a finalize error")

	assert.Equal(t, "pay-2", result.PaymentID)
	assert.True(t, result.PartialFailure())
	assert.EqualValues(t, 0, result.Removed)
}
