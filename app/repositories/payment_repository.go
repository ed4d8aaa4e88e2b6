package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/pkg/database"
	"github.com/bistrohq/bistro/pkg/metrics"
)

// PaymentRepository handles the payments collection. Payments are
// create-only: there is no update or delete path.
type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(database.ColPayments)}
}

// Insert records a payment and returns its hex id.
func (r *PaymentRepository) Insert(ctx context.Context, payment *models.Payment) (string, error) {
	defer metrics.ObserveStoreOp("payments.insert_one", time.Now())

	res, err := r.col.InsertOne(ctx, payment)
	if err != nil {
		return "", fmt.Errorf("payments: insert: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}
