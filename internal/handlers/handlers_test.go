package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SivakumaranJathurshan/CourseWork/internal/database"
	"github.com/SivakumaranJathurshan/CourseWork/internal/middleware"
	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"github.com/SivakumaranJathurshan/CourseWork/internal/repository"
	"github.com/SivakumaranJathurshan/CourseWork/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

type testServer struct {
	t     *testing.T
	e     *echo.Echo
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.Open(database.Config{DatabaseURL: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))
	t.Cleanup(func() { _ = database.Close(db) })

	log := zerolog.Nop()
	jwt := services.JWTSettings{Key: testKey, Issuer: "inventory-api", Audience: "inventory-clients"}

	inventoryService := services.NewInventoryService(repository.NewInventoryRepository(db), nil, log)
	h := Handlers{
		Health:     NewHealthHandler(db, ""),
		Auth:       NewAuthHandler(services.NewAuthService(repository.NewUserRepository(db), jwt, log)),
		Categories: NewCategoryHandler(services.NewCategoryService(repository.NewCategoryRepository(db), log)),
		Suppliers:  NewSupplierHandler(services.NewSupplierService(repository.NewSupplierRepository(db), log)),
		Products:   NewProductHandler(services.NewProductService(repository.NewProductRepository(db), log)),
		Inventory:  NewInventoryHandler(inventoryService),
		Orders:     NewOrderHandler(services.NewOrderService(repository.NewOrderRepository(db), inventoryService, log)),
	}

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()
	Register(e, h,
		middleware.JWTAuth(jwt.Key, jwt.Issuer, jwt.Audience),
		middleware.NewConcurrencyLimiter(10, 2).Middleware("api"),
	)

	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if s.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) signin() {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":            "ada@example.com",
		"first_name":       "Ada",
		"last_name":        "Lovelace",
		"password":         "s3cret-pass",
		"confirm_password": "s3cret-pass",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	s.token = decode[services.SigninResult](s.t, rec).Token
	require.NotEmpty(s.t, s.token)
}

func (s *testServer) createProduct(sku string) models.Product {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Laptop",
		"sku":         sku,
		"price":       "999.99",
		"category_id": 1,
		"supplier_id": 1,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.Product](s.t, rec)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"healthy","redis":"disabled"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":            "ada@example.com",
		"first_name":       "Ada",
		"last_name":        "Lovelace",
		"password":         "one",
		"confirm_password": "two",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.signin()

	rec = s.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"ada@example.com"`)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":            "ada@example.com",
		"first_name":       "Ada",
		"last_name":        "Lovelace",
		"password":         "s3cret-pass",
		"confirm_password": "s3cret-pass",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/products", "/api/inventory", "/api/orders", "/api/auth/me"} {
		rec := s.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Category](t, rec), 3)
}

func TestCategoryEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/categories", map[string]string{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/categories", map[string]string{"name": "Toys"})
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decode[models.Category](t, rec)
	assert.Equal(t, "/api/categories/4", rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodPut, "/api/categories/4", map[string]string{"name": "Games"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Games", decode[models.Category](t, rec).Name)

	rec = s.do(http.MethodGet, "/api/categories/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPut, "/api/categories/99", map[string]string{"name": "Missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/categories/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/categories/4", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodDelete, "/api/categories/4", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotZero(t, category.ID)
}

func TestReferencedCategoryCannotBeDeleted(t *testing.T) {
	s := newTestServer(t)
	s.signin()
	s.createProduct("LAP-001")

	rec := s.do(http.MethodDelete, "/api/categories/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodDelete, "/api/suppliers/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/api/categories/with-products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decode[[]models.Category](t, rec)
	require.Len(t, categories, 3)
	assert.Len(t, categories[0].Products, 1)
}

func TestProductEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.signin()

	product := s.createProduct("LAP-001")
	assert.True(t, decimal.RequireFromString("999.99").Equal(product.Price))

	rec := s.do(http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Clone", "sku": "LAP-001", "price": "1", "category_id": 1, "supplier_id": 1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Orphan", "sku": "ORP-001", "price": "1", "category_id": 42, "supplier_id": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/products/sku/LAP-001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bySKU := decode[models.Product](t, rec)
	assert.Equal(t, product.ID, bySKU.ID)
	require.NotNil(t, bySKU.Category)
	assert.Equal(t, "Electronics", bySKU.Category.Name)

	rec = s.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]models.Product](t, rec)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].Category)
	require.NotNil(t, listed[0].Supplier)

	rec = s.do(http.MethodGet, "/api/products?details=false", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed = decode[[]models.Product](t, rec)
	require.Len(t, listed, 1)
	assert.Nil(t, listed[0].Category)
	assert.Nil(t, listed[0].Supplier)

	rec = s.do(http.MethodGet, "/api/products?details=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/products/category/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Product](t, rec), 1)

	rec = s.do(http.MethodGet, "/api/products/sku/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInventoryAndOrderFlow(t *testing.T) {
	s := newTestServer(t)
	s.signin()
	product := s.createProduct("LAP-001")

	rec := s.do(http.MethodPost, "/api/inventory", map[string]interface{}{
		"product_id":    product.ID,
		"quantity":      10,
		"minimum_stock": 5,
		"maximum_stock": 50,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, "/api/inventory/update-stock/99", map[string]int{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPut, "/api/inventory/update-stock/1", map[string]int{"quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_name": "Grace Hopper",
		"order_items": []map[string]interface{}{
			{"product_id": product.ID, "quantity": 12, "unit_price": "2.50"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[models.Order](t, rec)
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, order.OrderNumber)
	assert.True(t, decimal.NewFromInt(30).Equal(order.TotalAmount), order.TotalAmount.String())
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodGet, "/api/inventory/product/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[models.InventoryItem](t, rec).Quantity)

	rec = s.do(http.MethodGet, "/api/inventory?details=false", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	plainItems := decode[[]models.InventoryItem](t, rec)
	require.Len(t, plainItems, 1)
	assert.Nil(t, plainItems[0].Product)

	rec = s.do(http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	withItems := decode[[]models.Order](t, rec)
	require.Len(t, withItems, 1)
	assert.Len(t, withItems[0].Items, 1)

	rec = s.do(http.MethodGet, "/api/orders?details=false", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	plainOrders := decode[[]models.Order](t, rec)
	require.Len(t, plainOrders, 1)
	assert.Empty(t, plainOrders[0].Items)

	rec = s.do(http.MethodGet, "/api/inventory/low-stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.InventoryItem](t, rec), 1)

	rec = s.do(http.MethodPut, "/api/orders/1/status", map[string]string{"status": "shipped"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, "/api/orders/1/status", map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/orders/99/status", map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/orders/status/shipped", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Order](t, rec), 1)

	rec = s.do(http.MethodGet, "/api/orders/number/"+order.OrderNumber, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	byNumber := decode[models.Order](t, rec)
	require.Len(t, byNumber.Items, 1)
	require.NotNil(t, byNumber.Items[0].Product)
	assert.Equal(t, "LAP-001", byNumber.Items[0].Product.SKU)

	rec = s.do(http.MethodDelete, "/api/products/1", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_name": "Nobody",
		"order_items":   []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/orders/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
