package services

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/pkg/event"
	"github.com/bistrohq/bistro/pkg/gateway"
	"github.com/bistrohq/bistro/pkg/metrics"
)

const (
	intentCurrency = "usd"

	// EventPaymentRecorded fires after a payment document is durably
	// inserted, whether or not the cart cleanup succeeded.
	EventPaymentRecorded = "payment.recorded"
)

var intentMethods = []string{"card"}

// PaymentStore records immutable payment documents.
type PaymentStore interface {
	Insert(ctx context.Context, payment *models.Payment) (string, error)
}

// CartSweeper clears the cart items a finalized payment references.
type CartSweeper interface {
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// PaymentService orchestrates the two-phase purchase workflow: intent
// creation against the gateway, then payment recording with cart
// reconciliation.
type PaymentService struct {
	payments PaymentStore
	carts    CartSweeper
	intents  gateway.IntentCreator
}

func NewPaymentService(payments PaymentStore, carts CartSweeper, intents gateway.IntentCreator) *PaymentService {
	return &PaymentService{payments: payments, carts: carts, intents: intents}
}

// MinorUnits converts a price into integer minor currency units, rounding
// at cent precision so binary float noise never shifts the amount: 19.99
// yields 1999, not 1998.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent asks the gateway for a card payment intent over the given
// price and returns the client secret the end caller needs to complete the
// charge out-of-band.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	intent, err := s.intents.CreateIntent(ctx, MinorUnits(price), intentCurrency, intentMethods)
	if err != nil {
		return "", errors.Join(ErrGateway, err)
	}
	return intent.ClientSecret, nil
}

// FinalizeResult reports both halves of the finalize workflow. The insert
// and the delete are independent operations: a recorded payment with a
// failed cleanup is a real state and is reported as such, never collapsed
// into a single boolean.
type FinalizeResult struct {
	PaymentID string
	Removed   int64
	// CleanupErr is non-nil when the payment was recorded but the
	// referenced cart items could not be deleted. Recovery is left to the
	// caller; nothing is retried here.
	CleanupErr error
}

// PartialFailure reports whether the payment is durable but the cart still
// holds the items it settled.
func (r *FinalizeResult) PartialFailure() bool {
	return r.CleanupErr != nil
}

// PaymentRecorded is the payload fired on EventPaymentRecorded.
type PaymentRecorded struct {
	PaymentID string    `json:"paymentId"`
	Email     string    `json:"email"`
	Price     float64   `json:"price"`
	Date      time.Time `json:"date"`
}

// Finalize inserts the payment, then deletes every cart item it references.
// The two writes are not wrapped in a transaction: when the insert succeeds
// and the delete fails the payment stays recorded and the result carries the
// cleanup error separately.
func (s *PaymentService) Finalize(ctx context.Context, payment *models.Payment) (*FinalizeResult, error) {
	if payment.Date.IsZero() {
		payment.Date = time.Now().UTC()
	}

	id, err := s.payments.Insert(ctx, payment)
	if err != nil {
		metrics.PaymentsFinalized.WithLabelValues("failed").Inc()
		return nil, errors.Join(ErrPersistence, err)
	}

	event.FireAsync(EventPaymentRecorded, PaymentRecorded{
		PaymentID: id,
		Email:     payment.Email,
		Price:     payment.Price,
		Date:      payment.Date,
	})

	result := &FinalizeResult{PaymentID: id}
	result.Removed, result.CleanupErr = s.carts.DeleteByIDs(ctx, payment.CartItems)

	if result.PartialFailure() {
		metrics.PaymentsFinalized.WithLabelValues("partial").Inc()
	} else {
		metrics.PaymentsFinalized.WithLabelValues("ok").Inc()
	}
	return result, nil
}
