// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"

	"github.com/yolomy/catalog/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id primitive.ObjectID) (*ProductDto, error)

	// FindAll returns all products in store-native order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Create adds a new product to the catalog.
	// Returns error if the product cannot be created.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update merges the given fields into an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id primitive.ObjectID, fields ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Quantity    int32   `json:"quantity"    validate:"required,min=0"`
	Category    string  `json:"category"    validate:"max=100"`
	Description string  `json:"description" validate:"max=1000"`
	ImageURL    string  `json:"image_url"   validate:"omitempty,url"`
}

// ProductUpdateDto represents a partial update. Nil fields are not written,
// so a PUT merges rather than replaces the stored document.
type ProductUpdateDto struct {
	Name        *string  `json:"name"        validate:"omitempty,max=100"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0"`
	Quantity    *int32   `json:"quantity"    validate:"omitempty,min=0"`
	Category    *string  `json:"category"    validate:"omitempty,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string  `json:"image_url"   validate:"omitempty,url"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int32   `json:"quantity"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id primitive.ObjectID) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id.Hex(), err)
	}

	return toDto(product), nil
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
// Returns an empty slice if no products exist or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create creates a new product and returns it as a ProductDto.
// Returns an error if the product cannot be created.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	p, err := s.repository.Create(ctx,
		product.Name,
		product.Price,
		product.Quantity,
		product.Category,
		product.Description,
		product.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// Update merges the given fields into an existing product and returns the
// updated product as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, fields ProductUpdateDto) (*ProductDto, error) {
	updated, err := s.repository.Update(ctx, id, store.UpdateFields{
		Name:        fields.Name,
		Price:       fields.Price,
		Quantity:    fields.Quantity,
		Category:    fields.Category,
		Description: fields.Description,
		ImageURL:    fields.ImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id.Hex(), err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return s.repository.DeleteByID(ctx, id)
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID.Hex(),
		Name:        product.Name,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
		Description: product.Description,
		ImageURL:    product.ImageURL,
	}
}
