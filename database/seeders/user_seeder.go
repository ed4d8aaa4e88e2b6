package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/config"
	"github.com/bistrohq/bistro/pkg/auth"
	"github.com/bistrohq/bistro/pkg/database"
)

func init() {
	Register("admin-user", SeedAdminUser)
}

// SeedAdminUser upserts the bootstrap admin account so a fresh deployment
// can reach the admin endpoints. Credentials come from SEED_ADMIN_EMAIL
// and SEED_ADMIN_PASSWORD.
func SeedAdminUser(ctx context.Context, db *mongo.Database) error {
	email := config.Get("SEED_ADMIN_EMAIL", "admin@bistro.local")
	password := config.Get("SEED_ADMIN_PASSWORD", "changeme")

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.Collection(database.ColUsers).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"name":     "Admin",
			"email":    email,
			"password": hash,
			"role":     models.RoleAdmin,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}
