package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/yolomy/catalog/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionName is the single collection holding product documents.
const collectionName = "products"

// MongoStore implements ProductStore using a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a new instance of ProductStore backed by the
// products collection of the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coll: db.Collection(collectionName),
	}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var product Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &product, nil
}

// FindAll retrieves all products in natural (insertion) order.
// It returns a slice of products, which may be empty if no products exist.
func (s *MongoStore) FindAll(ctx context.Context) ([]Product, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	products := make([]Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// Create inserts a new product document and returns it with the assigned ID.
func (s *MongoStore) Create(ctx context.Context, name string, price float64, quantity int32, category, description, imageURL string) (*Product, error) {
	product := Product{
		Name:        name,
		Price:       price,
		Quantity:    quantity,
		Category:    category,
		Description: description,
		ImageURL:    imageURL,
	}
	result, err := s.coll.InsertOne(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	product.ID = id
	return &product, nil
}

// Update merges the given fields into the document matching id and returns
// the updated document. Returns ErrProductNotFound if no product exists
// with the given ID. Concurrent updates race with last-write-wins semantics.
func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) (*Product, error) {
	set := bson.M{}
	if fields.Name != nil {
		set["name"] = *fields.Name
	}
	if fields.Price != nil {
		set["price"] = *fields.Price
	}
	if fields.Quantity != nil {
		set["quantity"] = *fields.Quantity
	}
	if fields.Category != nil {
		set["category"] = *fields.Category
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.ImageURL != nil {
		set["image_url"] = *fields.ImageURL
	}
	if len(set) == 0 {
		// Nothing to merge; behave like a read.
		return s.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product Product
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *MongoStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if result.DeletedCount == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}
