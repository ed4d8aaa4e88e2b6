package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/pkg/database"
	"github.com/bistrohq/bistro/pkg/metrics"
)

// MenuRepository handles the menu catalog collection.
type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{col: db.Collection(database.ColMenu)}
}

// All returns the full catalog.
func (r *MenuRepository) All(ctx context.Context) ([]models.MenuItem, error) {
	defer metrics.ObserveStoreOp("menu.find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("menu: find: %w", err)
	}
	items := []models.MenuItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("menu: decode: %w", err)
	}
	return items, nil
}

// Create inserts a new catalog entry and returns its hex id.
func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) (string, error) {
	defer metrics.ObserveStoreOp("menu.insert_one", time.Now())

	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return "", fmt.Errorf("menu: insert: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Delete removes a catalog entry by hex id.
func (r *MenuRepository) Delete(ctx context.Context, id string) (int64, error) {
	defer metrics.ObserveStoreOp("menu.delete_one", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("menu: delete: bad id %q: %w", id, err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("menu: delete: %w", err)
	}
	return res.DeletedCount, nil
}

// ReviewRepository handles the read-only reviews collection.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(database.ColReviews)}
}

// All returns every review.
func (r *ReviewRepository) All(ctx context.Context) ([]models.Review, error) {
	defer metrics.ObserveStoreOp("reviews.find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("reviews: find: %w", err)
	}
	reviews := []models.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("reviews: decode: %w", err)
	}
	return reviews, nil
}
