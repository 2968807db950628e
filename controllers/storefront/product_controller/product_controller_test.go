package product_controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"github.com/LuizVictorr/Achadoos-Amazon/config"
	"github.com/LuizVictorr/Achadoos-Amazon/docstore"
	"github.com/LuizVictorr/Achadoos-Amazon/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response[T any] struct {
	Message string             `json:"message"`
	Data    T                  `json:"data"`
	Error   bool               `json:"error"`
	Meta    *models.Pagination `json:"meta"`
}

type brokenReader struct{}

func (brokenReader) FetchCollection(context.Context, string) (map[string]docstore.Record, error) {
	return nil, &docstore.FetchError{Op: "fetch collection", Path: "products", Err: errors.New("unreachable")}
}

func (brokenReader) FetchRecord(_ context.Context, path string) (docstore.Record, error) {
	return nil, &docstore.FetchError{Op: "fetch record", Path: path, Err: errors.New("unreachable")}
}

func seededStore(t *testing.T, n int) *docstore.MemoryStore {
	t.Helper()
	store := docstore.NewMemoryStore()
	for i := 0; i < n; i++ {
		category := "Casa"
		if i%2 == 1 {
			category = "Eletrônicos"
		}
		rec := docstore.Record{"name": fmt.Sprintf("Produto %02d", i), "category": category, "photo": fmt.Sprintf("%d.png", i)}
		require.NoError(t, store.PutRecord(context.Background(), docstore.Join(catalog.ProductsPath, fmt.Sprintf("p%02d", i)), rec))
	}
	return store
}

func newRouter(reader docstore.Reader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := New(catalog.NewLoader(reader, nil), nil, Options{PageSize: 40})
	r := gin.New()
	r.GET("/store/products", ctrl.GetStorefrontProducts)
	r.GET("/store/products/filters", ctrl.GetProductFilters)
	r.GET("/store/products/:id", ctrl.GetStorefrontProductByID)
	return r
}

func get[T any](t *testing.T, r *gin.Engine, target string) (int, response[T]) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	var body response[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func TestGetStorefrontProductsPaginates(t *testing.T) {
	r := newRouter(seededStore(t, 45))

	code, body := get[[]models.StorefrontProductResponse](t, r, "/store/products")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body.Data, 40)
	require.NotNil(t, body.Meta)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 40, Total: 45, TotalPages: 2}, *body.Meta)

	code, body = get[[]models.StorefrontProductResponse](t, r, "/store/products?page=2")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body.Data, 5)
	assert.Equal(t, "p40", body.Data[0].ID)
	assert.Equal(t, "40.png", body.Data[0].Image)
}

func TestGetStorefrontProductsFilters(t *testing.T) {
	r := newRouter(seededStore(t, 45))

	_, body := get[[]models.StorefrontProductResponse](t, r, "/store/products?category=Eletr%C3%B4nicos")
	assert.Len(t, body.Data, 22)
	assert.Equal(t, 1, body.Meta.TotalPages)

	_, body = get[[]models.StorefrontProductResponse](t, r, "/store/products?q=produto%2004")
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Produto 04", body.Data[0].Name)
}

func TestGetStorefrontProductsClampsPage(t *testing.T) {
	r := newRouter(seededStore(t, 45))

	_, body := get[[]models.StorefrontProductResponse](t, r, "/store/products?page=9")
	assert.Equal(t, 2, body.Meta.Page)
	assert.Len(t, body.Data, 5)

	_, body = get[[]models.StorefrontProductResponse](t, r, "/store/products?page=abc")
	assert.Equal(t, 1, body.Meta.Page)
}

func TestGetStorefrontProductsEmptyCatalog(t *testing.T) {
	r := newRouter(docstore.NewMemoryStore())

	code, body := get[[]models.StorefrontProductResponse](t, r, "/store/products")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body.Data)
	assert.Equal(t, 0, body.Meta.TotalPages)
}

func TestGetStorefrontProductsStoreFailure(t *testing.T) {
	code, body := get[any](t, newRouter(brokenReader{}), "/store/products")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.True(t, body.Error)
}

func TestGetStorefrontProductByID(t *testing.T) {
	r := newRouter(seededStore(t, 3))

	code, body := get[models.Product](t, r, "/store/products/p01")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.Product{ID: "p01", Name: "Produto 01", Category: "Eletrônicos", Photo: "1.png"}, body.Data)

	code, _ = get[any](t, r, "/store/products/nope")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get[any](t, r, "/store/products/bad$key")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get[any](t, newRouter(brokenReader{}), "/store/products/p01")
	assert.Equal(t, http.StatusBadGateway, code)
}

func TestGetProductFilters(t *testing.T) {
	code, body := get[models.ProductFilters](t, newRouter(seededStore(t, 5)), "/store/products/filters")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5, body.Data.Total)
	assert.Equal(t, []models.FilterOption{
		{Label: "Casa", Value: "Casa", Count: 3},
		{Label: "Eletrônicos", Value: "Eletrônicos", Count: 2},
	}, body.Data.Categories)
}

type stalledReader struct{}

func (stalledReader) FetchCollection(ctx context.Context, _ string) (map[string]docstore.Record, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledReader) FetchRecord(ctx context.Context, _ string) (docstore.Record, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStoreContextBoundsStalledFetch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{StoreTimeout: 20 * time.Millisecond}
	ctrl := New(catalog.NewLoader(stalledReader{}, nil), nil, Options{StoreContext: cfg.WithTimeout})
	r := gin.New()
	r.GET("/store/products", ctrl.GetStorefrontProducts)
	r.GET("/store/products/:id", ctrl.GetStorefrontProductByID)

	start := time.Now()
	code, _ := get[any](t, r, "/store/products")
	assert.Equal(t, http.StatusBadGateway, code)
	code, _ = get[any](t, r, "/store/products/p1")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Less(t, time.Since(start), 2*time.Second)
}
