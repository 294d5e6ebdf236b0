package store

import (
	"context"
	"sync"

	perrors "github.com/yolomy/catalog/internal/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// inMemory implements ProductStore using an in-memory map.
// Listing preserves insertion order, matching the natural order a
// collection scan returns.
type inMemory struct {
	mu       sync.RWMutex
	products map[primitive.ObjectID]Product
	order    []primitive.ObjectID
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[primitive.ObjectID]Product),
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id primitive.ObjectID) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

// FindAll retrieves all products in insertion order.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.products[id])
	}
	return list, nil
}

// Create creates a new product and returns it.
func (s *inMemory) Create(_ context.Context, name string, price float64, quantity int32, category, description, imageURL string) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Price:       price,
		Quantity:    quantity,
		Category:    category,
		Description: description,
		ImageURL:    imageURL,
	}
	s.products[product.ID] = product
	s.order = append(s.order, product.ID)

	return &product, nil
}

// Update merges the given fields into the stored product.
func (s *inMemory) Update(_ context.Context, id primitive.ObjectID, fields UpdateFields) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Price != nil {
		p.Price = *fields.Price
	}
	if fields.Quantity != nil {
		p.Quantity = *fields.Quantity
	}
	if fields.Category != nil {
		p.Category = *fields.Category
	}
	if fields.Description != nil {
		p.Description = *fields.Description
	}
	if fields.ImageURL != nil {
		p.ImageURL = *fields.ImageURL
	}
	s.products[id] = p
	return &p, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return perrors.ErrProductNotFound
	}
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
