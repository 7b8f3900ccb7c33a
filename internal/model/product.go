package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is one catalog document. The collection is read-mostly and is
// referenced from carts and wishlists by ID.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Price        float64            `bson:"price" json:"price"`
	Image        string             `bson:"image" json:"image"`
	Brand        string             `bson:"brand" json:"brand"`
	Category     string             `bson:"category" json:"category"`
	CountInStock int                `bson:"count_in_stock" json:"countInStock"`
	Description  string             `bson:"description" json:"description"`
	Rating       float64            `bson:"rating" json:"rating"`
	NumReviews   int                `bson:"num_reviews" json:"numReviews"`
}
