package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/catalog/application"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

type fakeRepo struct {
	products map[string]domain.Product
}

func (r *fakeRepo) Save(_ context.Context, p *domain.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *fakeRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, id := range ids {
		if p, err := r.GetByID(ctx, id); err == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) List(_ context.Context, _ string, _, _ int) ([]*domain.Product, int, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, &p)
	}
	return out, len(out), nil
}

func (r *fakeRepo) DecrementStock(context.Context, string, int) error { return nil }
func (r *fakeRepo) IncrementStock(context.Context, string, int) error { return nil }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, string, any) error { return nil }

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := &fakeRepo{products: map[string]domain.Product{}}
	svc := application.NewCatalogApplicationService(
		application.NewCatalogCommandService(repo, nopPublisher{}),
		application.NewCatalogQueryService(repo),
	)
	router := gin.New()
	NewCatalogHandler(svc).RegisterRoutes(router)
	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProductLifecycle(t *testing.T) {
	router := setupRouter()

	w := do(t, router, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Beurre", "price": "2.8", "promo_price": "2.5", "tax_rate": "5.5", "stock": 10, "active": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created application.ProductDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "2.80", created.Price)
	assert.Equal(t, "2.50", created.PromoPrice)

	w = do(t, router, http.MethodPut, "/api/v1/products/"+created.ProductID+"/stock", map[string]any{"stock": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, router, http.MethodPut, "/api/v1/products/"+created.ProductID+"/active", map[string]any{"active": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/products/"+created.ProductID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got application.ProductDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 0, got.Stock)
	assert.False(t, got.Active)

	w = do(t, router, http.MethodGet, "/api/v1/products?page=1&size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page application.ProductPageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
}

func TestProductErrors(t *testing.T) {
	router := setupRouter()

	w := do(t, router, http.MethodGet, "/api/v1/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/products", map[string]any{"name": "X", "price": "abc", "tax_rate": "20"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/products", map[string]any{"name": "X", "price": "1", "tax_rate": "120"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPut, "/api/v1/products/missing/stock", map[string]any{"stock": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPut, "/api/v1/products/missing/stock", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
