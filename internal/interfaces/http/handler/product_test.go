package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func setupProductHandler(productRepo *MockProductRepository) *ProductHandler {
	service := catalogapp.NewProductService(productRepo, nil, nil, nil, zap.NewNop())
	return NewProductHandler(service, zap.NewNop())
}

func makeProduct(t *testing.T, title, code string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(title, "A test product", code, "misc", decimal.NewFromInt(10), 5)
	require.NoError(t, err)
	return product
}

func productPrice(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func decodeResponse(t *testing.T, body *bytes.Buffer) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp
}

func TestProductHandler_Create_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	productRepo.On("ExistsByCode", mock.Anything, "SKU-001").Return(false, nil)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	router := setupTestRouter()
	router.POST("/api/products", handler.Create)

	reqBody := catalogapp.CreateProductRequest{
		Title:       "Widget",
		Description: "A fine widget",
		Code:        "SKU-001",
		Price:       productPrice(15),
		Stock:       10,
		Category:    "tools",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w.Body)
	assert.Equal(t, dto.StatusSuccess, resp.Status)
	assert.NotNil(t, resp.Payload)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Create_DuplicateCode(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	productRepo.On("ExistsByCode", mock.Anything, "SKU-001").Return(true, nil)

	router := setupTestRouter()
	router.POST("/api/products", handler.Create)

	reqBody := catalogapp.CreateProductRequest{
		Title:       "Widget",
		Description: "A fine widget",
		Code:        "SKU-001",
		Price:       productPrice(15),
		Stock:       10,
		Category:    "tools",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w.Body)
	assert.Equal(t, dto.StatusError, resp.Status)
	assert.NotEmpty(t, resp.Message)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Create_MissingPrice(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	router := setupTestRouter()
	router.POST("/api/products", handler.Create)

	body := []byte(`{"title":"Widget","description":"A fine widget","code":"SKU-001","stock":10,"category":"tools"}`)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w.Body)
	assert.Equal(t, dto.StatusError, resp.Status)
	productRepo.AssertNotCalled(t, "Save")
}

func TestProductHandler_Create_InvalidJSON(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	router := setupTestRouter()
	router.POST("/api/products", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Get_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	product := makeProduct(t, "Widget", "SKU-001")
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	router := setupTestRouter()
	router.GET("/api/products/:pid", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+product.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w.Body)
	assert.Equal(t, dto.StatusSuccess, resp.Status)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	productID := uuid.New()
	productRepo.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.GET("/api/products/:pid", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+productID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w.Body)
	assert.Equal(t, dto.StatusError, resp.Status)
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	router := setupTestRouter()
	router.GET("/api/products/:pid", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_List_EchoesPagination(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	products := []catalog.Product{*makeProduct(t, "Widget", "SKU-001")}
	productRepo.On("FindAll", mock.Anything, mock.Anything).Return(products, nil)
	productRepo.On("Count", mock.Anything, mock.Anything).Return(int64(25), nil)

	router := setupTestRouter()
	router.GET("/api/products", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=10&page=2", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status  string                     `json:"status"`
		Payload catalogapp.ProductListPage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.StatusSuccess, resp.Status)
	assert.Equal(t, 2, resp.Payload.Page)
	assert.Equal(t, 3, resp.Payload.TotalPages)
	assert.True(t, resp.Payload.HasPrevPage)
	assert.True(t, resp.Payload.HasNextPage)
	require.NotNil(t, resp.Payload.PrevLink)
	assert.Equal(t, "/api/products?limit=10&page=1", *resp.Payload.PrevLink)
}

func TestProductHandler_List_InvalidLimit(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	router := setupTestRouter()
	router.GET("/api/products", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=zero", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Update_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	productID := uuid.New()
	productRepo.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.PUT("/api/products/:pid", handler.Update)

	body, _ := json.Marshal(map[string]any{"title": "Renamed"})
	req := httptest.NewRequest(http.MethodPut, "/api/products/"+productID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_Delete_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	product := makeProduct(t, "Widget", "SKU-001")
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Delete", mock.Anything, product.ID).Return(nil)

	router := setupTestRouter()
	router.DELETE("/api/products/:pid", handler.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/"+product.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	productRepo.AssertExpectations(t)
}
