package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/pkg/database"
	"github.com/bistrohq/bistro/pkg/metrics"
)

// UserRepository handles the user directory collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(database.ColUsers)}
}

// FindByEmail looks up a user by email. Returns (nil, nil) when no record exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveStoreOp("users.find_one", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: find by email: %w", err)
	}
	return &user, nil
}

// IsAdmin reports whether the directory holds an admin record for email.
// An absent record is not an error; it simply maps to the non-admin role.
func (r *UserRepository) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return user.Role.Admin(), nil
}

// Create persists a new user record and returns its hex id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (string, error) {
	defer metrics.ObserveStoreOp("users.insert_one", time.Now())

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return "", fmt.Errorf("users: insert: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// All returns every user record.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveStoreOp("users.find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("users: find: %w", err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("users: decode: %w", err)
	}
	return users, nil
}

// Promote sets the role of the user with the given hex id to admin.
// Roles are never auto-demoted; this is the only role mutation.
func (r *UserRepository) Promote(ctx context.Context, id string) error {
	defer metrics.ObserveStoreOp("users.update_one", time.Now())

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("users: promote: bad id %q: %w", id, err)
	}

	update := bson.M{"$set": bson.M{"role": models.RoleAdmin}}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("users: promote: %w", err)
	}
	return nil
}

// DeleteByEmail removes the user record for email.
func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	defer metrics.ObserveStoreOp("users.delete_one", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return 0, fmt.Errorf("users: delete: %w", err)
	}
	return res.DeletedCount, nil
}
