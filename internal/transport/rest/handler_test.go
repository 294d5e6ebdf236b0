package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	producterrors "github.com/yolomy/catalog/internal/errors"
	"github.com/yolomy/catalog/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product  *service.ProductDto
	products []service.ProductDto
	error    error
}

func (m *mockProductService) FindByID(_ context.Context, _ primitive.ObjectID) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) FindAll(_ context.Context) ([]service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, _ primitive.ObjectID, _ service.ProductUpdateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, _ primitive.ObjectID) error {
	return m.error
}

// toJSON is a helper function to convert a struct to JSON string
func toJSON(t *testing.T, v interface{}) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func newTestRouter(svc service.ProductService) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := chi.NewRouter()
	NewHandler(svc, logger).RegisterRoutes(mux)
	return mux
}

const mockIDHex = "64b64c3f2f8fb814c8ef6c01"

func Test_ProductAPI_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name: "Success - products found",
			mockService: &mockProductService{
				products: []service.ProductDto{{ID: mockIDHex, Name: "Widget", Price: 9.99, Quantity: 3}},
			},
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, []service.ProductDto{{ID: mockIDHex, Name: "Widget", Price: 9.99, Quantity: 3}}),
		},
		{
			name:         "Success - empty list",
			mockService:  &mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusOK,
			expectedBody: "[]",
		},
		{
			name:         "Error - store failure",
			mockService:  &mockProductService{error: assert.AnError},
			expectedCode: http.StatusInternalServerError,
			expectedBody: toJSON(t, map[string]string{"error": "Failed to fetch products"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			rec := httptest.NewRecorder()
			// when
			mux.ServeHTTP(rec, req)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func Test_ProductAPI_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		productID    string
		expectedCode int
	}{
		{
			name: "Success - product found",
			mockService: &mockProductService{
				product: &service.ProductDto{ID: mockIDHex, Name: "Widget", Price: 9.99, Quantity: 3},
			},
			productID:    mockIDHex,
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - product not found",
			mockService:  &mockProductService{error: producterrors.ErrProductNotFound},
			productID:    mockIDHex,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - invalid ID",
			mockService:  &mockProductService{},
			productID:    "not-an-object-id",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - store failure",
			mockService:  &mockProductService{error: assert.AnError},
			productID:    mockIDHex,
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tc.productID, nil)
			rec := httptest.NewRecorder()
			// when
			mux.ServeHTTP(rec, req)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedCode == http.StatusOK {
				assert.JSONEq(t, toJSON(t, tc.mockService.product), rec.Body.String())
			}
		})
	}
}

func Test_ProductAPI_Create(t *testing.T) {
	created := &service.ProductDto{ID: mockIDHex, Name: "Widget", Price: 9.99, Quantity: 3}
	testCases := []struct {
		name         string
		mockService  *mockProductService
		body         string
		expectedCode int
	}{
		{
			name:         "Success - product created",
			mockService:  &mockProductService{product: created},
			body:         `{"name":"Widget","price":9.99,"quantity":3}`,
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Error - malformed body",
			mockService:  &mockProductService{product: created},
			body:         `{"name":`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - missing required fields",
			mockService:  &mockProductService{product: created},
			body:         `{"price":9.99}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - store failure",
			mockService:  &mockProductService{error: assert.AnError},
			body:         `{"name":"Widget","price":9.99,"quantity":3}`,
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			// when
			mux.ServeHTTP(rec, req)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedCode == http.StatusCreated {
				assert.JSONEq(t, toJSON(t, created), rec.Body.String())
			}
		})
	}
}

func Test_ProductAPI_Create_MultipartForm(t *testing.T) {
	// given
	created := &service.ProductDto{ID: mockIDHex, Name: "Widget", Price: 9.99, Quantity: 3}
	mux := newTestRouter(&mockProductService{product: created})

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("name", "Widget"))
	require.NoError(t, writer.WriteField("price", "9.99"))
	require.NoError(t, writer.WriteField("quantity", "3"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	rec := httptest.NewRecorder()
	// when
	mux.ServeHTTP(rec, req)
	// then
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, toJSON(t, created), rec.Body.String())
}

func Test_ProductAPI_Update(t *testing.T) {
	updated := &service.ProductDto{ID: mockIDHex, Name: "Gadget", Price: 19.99, Quantity: 5}
	testCases := []struct {
		name         string
		mockService  *mockProductService
		productID    string
		body         string
		expectedCode int
	}{
		{
			name:         "Success - product updated",
			mockService:  &mockProductService{product: updated},
			productID:    mockIDHex,
			body:         `{"name":"Gadget","price":19.99,"quantity":5}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "Success - partial update",
			mockService:  &mockProductService{product: updated},
			productID:    mockIDHex,
			body:         `{"quantity":5}`,
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - product not found",
			mockService:  &mockProductService{error: producterrors.ErrProductNotFound},
			productID:    mockIDHex,
			body:         `{"quantity":5}`,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - invalid ID",
			mockService:  &mockProductService{},
			productID:    "nope",
			body:         `{"quantity":5}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - malformed body",
			mockService:  &mockProductService{product: updated},
			productID:    mockIDHex,
			body:         `{"quantity":`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			req := httptest.NewRequest(http.MethodPut, "/api/products/"+tc.productID, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			// when
			mux.ServeHTTP(rec, req)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedCode == http.StatusOK {
				assert.JSONEq(t, toJSON(t, updated), rec.Body.String())
			}
		})
	}
}

func Test_ProductAPI_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product deleted",
			mockService:  &mockProductService{},
			productID:    mockIDHex,
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, map[string]any{"id": mockIDHex, "deleted": true}),
		},
		{
			name:         "Error - product not found",
			mockService:  &mockProductService{error: producterrors.ErrProductNotFound},
			productID:    mockIDHex,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "Error - invalid ID",
			mockService:  &mockProductService{},
			productID:    "nope",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			mux := newTestRouter(tc.mockService)
			req := httptest.NewRequest(http.MethodDelete, "/api/products/"+tc.productID, nil)
			rec := httptest.NewRecorder()
			// when
			mux.ServeHTTP(rec, req)
			// then
			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			}
		})
	}
}

func Test_ProductAPI_HealthCheck(t *testing.T) {
	mux := newTestRouter(&mockProductService{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
