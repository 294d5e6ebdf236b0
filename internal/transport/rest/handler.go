// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	producterrors "github.com/yolomy/catalog/internal/errors"
	"github.com/yolomy/catalog/internal/service"
	"github.com/yolomy/catalog/pkg/web"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of ProductAPI with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product catalog.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id.Hex())
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id.Hex())
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id.Hex()))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id.Hex(), "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %s", id.Hex()))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAll retrieves the full product list in store-native order.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productCreateDto, err := decodeCreateDto(r)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)
	if !h.validateStruct(w, r, mLogger, productCreateDto) {
		return
	}

	newProduct, err := h.service.Create(r.Context(), productCreateDto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, newProduct)
}

// Update merges the submitted fields into the product with the given ID.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id.Hex())
	productUpdateDto, err := decodeUpdateDto(r)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !h.validateStruct(w, r, mLogger, productUpdateDto) {
		return
	}

	updated, err := h.service.Update(r.Context(), id, productUpdateDto)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id.Hex())
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id.Hex()))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id.Hex(), "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with ID %s", id.Hex()))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id.Hex())
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for deletion", "ID", id.Hex())
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %s not found", id.Hex()))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id.Hex(), "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with ID %s", id.Hex()))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id.Hex())
	web.RespondJSON(w, mLogger, http.StatusOK, map[string]any{"id": id.Hex(), "deleted": true})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// validateStruct validates the DTO and writes a field error map on failure.
// Returns false if a response has been written.
func (h *Handler) validateStruct(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, dto any) bool {
	err := h.validate.Struct(dto)
	if err == nil {
		return true
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		// If the error is a validation error, we can extract field-specific errors.
		errorResponse := make(map[string]string)
		for _, fieldErr := range validationErrors {
			// fieldErr.Tag() returns "required", "max", etc.
			errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
		}
		mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
		web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
		return false
	}
	mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
	// If it's not a validation error, we can return a generic error.
	web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
	return false
}

// decodeCreateDto reads a creation payload from either a JSON body or a
// multipart form submission (the form is parsed upstream by middleware).
func decodeCreateDto(r *http.Request) (service.ProductCreateDto, error) {
	var dto service.ProductCreateDto
	if r.MultipartForm != nil {
		price, err := parseFormFloat(r, "price")
		if err != nil {
			return dto, err
		}
		quantity, err := parseFormInt(r, "quantity")
		if err != nil {
			return dto, err
		}
		dto.Name = r.FormValue("name")
		dto.Price = price
		dto.Quantity = quantity
		dto.Category = r.FormValue("category")
		dto.Description = r.FormValue("description")
		dto.ImageURL = r.FormValue("image_url")
		return dto, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return dto, err
	}
	return dto, nil
}

// decodeUpdateDto reads a partial update payload from either a JSON body or
// a multipart form submission. Absent form fields stay nil so the update
// merges instead of zeroing fields.
func decodeUpdateDto(r *http.Request) (service.ProductUpdateDto, error) {
	var dto service.ProductUpdateDto
	if r.MultipartForm != nil {
		if v := r.FormValue("name"); v != "" {
			dto.Name = &v
		}
		if v := r.FormValue("price"); v != "" {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return dto, fmt.Errorf("invalid price: %w", err)
			}
			dto.Price = &price
		}
		if v := r.FormValue("quantity"); v != "" {
			quantity, err := strconv.ParseInt(v, 10, 32)
			if err != nil {
				return dto, fmt.Errorf("invalid quantity: %w", err)
			}
			q := int32(quantity)
			dto.Quantity = &q
		}
		if v := r.FormValue("category"); v != "" {
			dto.Category = &v
		}
		if v := r.FormValue("description"); v != "" {
			dto.Description = &v
		}
		if v := r.FormValue("image_url"); v != "" {
			dto.ImageURL = &v
		}
		return dto, nil
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return dto, err
	}
	return dto, nil
}

func parseFormFloat(r *http.Request, key string) (float64, error) {
	value, err := strconv.ParseFloat(r.FormValue(key), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func parseFormInt(r *http.Request, key string) (int32, error) {
	value, err := strconv.ParseInt(r.FormValue(key), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return int32(value), nil
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
