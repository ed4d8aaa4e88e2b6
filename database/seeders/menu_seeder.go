package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bistrohq/bistro/app/models"
	"github.com/bistrohq/bistro/pkg/database"
)

func init() {
	Register("menu", SeedMenu)
}

// SeedMenu inserts a starter menu. It is a no-op when the collection
// already has documents, so reruns are safe.
func SeedMenu(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.ColMenu)

	n, err := col.EstimatedDocumentCount(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	items := []interface{}{
		models.MenuItem{Name: "Margherita Pizza", Recipe: "Tomato, mozzarella, basil", Category: "pizza", Price: 12.50},
		models.MenuItem{Name: "Pepperoni Pizza", Recipe: "Tomato, mozzarella, pepperoni", Category: "pizza", Price: 14.00},
		models.MenuItem{Name: "Caesar Salad", Recipe: "Romaine, parmesan, croutons", Category: "salad", Price: 8.00},
		models.MenuItem{Name: "Tiramisu", Recipe: "Mascarpone, espresso, cocoa", Category: "dessert", Price: 6.50},
		models.MenuItem{Name: "Espresso", Recipe: "Double shot", Category: "drinks", Price: 2.50},
	}
	_, err = col.InsertMany(ctx, items)
	return err
}
