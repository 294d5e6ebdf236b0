// Package store provides an interface for product storage operations.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a product document in the products collection.
// ID is assigned by the store on insert and immutable afterwards.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Quantity    int32              `bson:"quantity"`
	Category    string             `bson:"category,omitempty"`
	Description string             `bson:"description,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty"`
}

// UpdateFields carries the fields of a partial update. Nil fields are left
// untouched by the store.
type UpdateFields struct {
	Name        *string
	Price       *float64
	Quantity    *int32
	Category    *string
	Description *string
	ImageURL    *string
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)

	// FindAll returns all products in store-native order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Create inserts a new product document and returns it with the
	// store-assigned ID.
	Create(ctx context.Context, name string, price float64, quantity int32, category, description, imageURL string) (*Product, error)

	// Update merges the given fields into the document matching id.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}
