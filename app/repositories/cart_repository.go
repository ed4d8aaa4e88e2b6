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

// CartRepository handles the per-owner cart ledger collection.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(database.ColCarts)}
}

// FindByOwner returns every cart item belonging to owner.
func (r *CartRepository) FindByOwner(ctx context.Context, owner string) ([]models.CartItem, error) {
	defer metrics.ObserveStoreOp("carts.find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"email": owner})
	if err != nil {
		return nil, fmt.Errorf("carts: find: %w", err)
	}
	items := []models.CartItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("carts: decode: %w", err)
	}
	return items, nil
}

// Insert adds a cart item and returns its hex id.
func (r *CartRepository) Insert(ctx context.Context, item *models.CartItem) (string, error) {
	defer metrics.ObserveStoreOp("carts.insert_one", time.Now())

	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return "", fmt.Errorf("carts: insert: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Delete removes a single cart item by hex id.
func (r *CartRepository) Delete(ctx context.Context, id string) (int64, error) {
	defer metrics.ObserveStoreOp("carts.delete_one", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("carts: delete: bad id %q: %w", id, err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("carts: delete: %w", err)
	}
	return res.DeletedCount, nil
}

// DeleteByIDs removes every cart item whose id is in ids, in a single
// multi-document delete. Consistency across the set is whatever the store
// natively guarantees for deleteMany.
func (r *CartRepository) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	defer metrics.ObserveStoreOp("carts.delete_many", time.Now())

	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("carts: delete many: %w", err)
	}
	return res.DeletedCount, nil
}
