package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a pending, unpurchased line entry owned by exactly one user.
// It is destroyed either by an explicit removal or as a side effect of a
// successful payment finalization that references it.
type CartItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email      string             `bson:"email" json:"email"`
	MenuItemID primitive.ObjectID `bson:"menuItemId" json:"menuItemId"`
	Name       string             `bson:"name" json:"name"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Price      float64            `bson:"price" json:"price"` // price snapshot at add time
}

// Payment is an immutable record of a completed purchase. There is no update
// or state transition after insertion.
type Payment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Email         string               `bson:"email" json:"email"`
	TransactionID string               `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Price         float64              `bson:"price" json:"price"`
	CartItems     []primitive.ObjectID `bson:"cartItems" json:"cartItems"`
	MenuItems     []primitive.ObjectID `bson:"menuItems" json:"menuItems"`
	Date          time.Time            `bson:"date" json:"date"`
}

// OrderStats is the admin overview report, recomputed on every call.
type OrderStats struct {
	Users    int64   `json:"users"`
	Products int64   `json:"products"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// CategoryBucket is one row of the category breakdown: every menu item
// referenced by every payment, partitioned by catalog category.
type CategoryBucket struct {
	Category string  `bson:"category" json:"category"`
	Count    int64   `bson:"count" json:"count"`
	Total    float64 `bson:"total" json:"total"`
}
