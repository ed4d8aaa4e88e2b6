package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MenuItem is a catalog entry. Read-only from the ordering core's
// perspective; mutated only through the admin menu endpoints.
type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Recipe   string             `bson:"recipe,omitempty" json:"recipe,omitempty"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
	Category string             `bson:"category" json:"category"`
	Price    float64            `bson:"price" json:"price"`
}

// Review is a customer review, listed verbatim.
type Review struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name    string             `bson:"name" json:"name"`
	Details string             `bson:"details" json:"details"`
	Rating  float64            `bson:"rating" json:"rating"`
}
