package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/pkg/database"
	"github.com/bistrohq/bistro/pkg/metrics"
)

// StatsRepository computes aggregate reports store-side. Counts are the
// store's fast estimates, not exact under concurrent writes; revenue and the
// category breakdown run as aggregation pipelines so no payment set is ever
// loaded into application memory.
type StatsRepository struct {
	users    *mongo.Collection
	menu     *mongo.Collection
	payments *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		users:    db.Collection(database.ColUsers),
		menu:     db.Collection(database.ColMenu),
		payments: db.Collection(database.ColPayments),
	}
}

// Overview returns estimated cardinalities plus total revenue.
func (r *StatsRepository) Overview(ctx context.Context) (*models.OrderStats, error) {
	defer metrics.ObserveStoreOp("stats.overview", time.Now())

	users, err := r.users.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: count users: %w", err)
	}
	products, err := r.menu.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: count menu: %w", err)
	}
	orders, err := r.payments.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: count payments: %w", err)
	}

	revenue, err := r.revenue(ctx)
	if err != nil {
		return nil, err
	}

	return &models.OrderStats{
		Users:    users,
		Products: products,
		Orders:   orders,
		Revenue:  revenue,
	}, nil
}

// revenue sums every payment's price with a $group stage.
func (r *StatsRepository) revenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}

	cur, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("stats: revenue: %w", err)
	}
	defer cur.Close(ctx)

	var row struct {
		Total float64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("stats: revenue decode: %w", err)
		}
	}
	if err := cur.Err(); err != nil {
		return 0, fmt.Errorf("stats: revenue cursor: %w", err)
	}
	return row.Total, nil
}

// CategoryBreakdown resolves every payment's menu item references against
// the catalog, flattens them into line items and groups them per category
// with a count and a 2-decimal-rounded total. Bucket order is whatever the
// store emits; callers sort if they need an ordering.
func (r *StatsRepository) CategoryBreakdown(ctx context.Context) ([]models.CategoryBucket, error) {
	defer metrics.ObserveStoreOp("stats.category_breakdown", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.ColMenu},
			{Key: "localField", Value: "menuItems"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItemsData"},
		}}},
		{{Key: "$unwind", Value: "$menuItemsData"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItemsData.category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$menuItemsData.price"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "category", Value: "$_id"},
			{Key: "count", Value: 1},
			{Key: "total", Value: bson.D{{Key: "$round", Value: bson.A{"$total", 2}}}},
			{Key: "_id", Value: 0},
		}}},
	}

	cur, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("stats: breakdown: %w", err)
	}

	buckets := []models.CategoryBucket{}
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("stats: breakdown decode: %w", err)
	}
	return buckets, nil
}
