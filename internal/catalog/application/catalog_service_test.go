package application

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/catalog/domain"
)

type memoryProductRepo struct {
	products map[string]domain.Product
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{products: map[string]domain.Product{}}
}

func (r *memoryProductRepo) Save(_ context.Context, p *domain.Product) error {
	r.products[p.ID] = *p
	return nil
}

func (r *memoryProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *memoryProductRepo) GetByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *memoryProductRepo) List(_ context.Context, category string, offset, limit int) ([]*domain.Product, int, error) {
	var all []*domain.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			all = append(all, &p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	if offset >= total {
		return []*domain.Product{}, total, nil
	}
	return all[offset:min(offset+limit, total)], total, nil
}

func (r *memoryProductRepo) DecrementStock(_ context.Context, id string, qty int) error {
	p, ok := r.products[id]
	if !ok || !p.Active || p.Stock < qty {
		return domain.ErrInsufficientStock
	}
	p.Stock -= qty
	r.products[id] = p
	return nil
}

func (r *memoryProductRepo) IncrementStock(_ context.Context, id string, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock += qty
	r.products[id] = p
	return nil
}

type recordingPublisher struct {
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic, _ string, _ any) error {
	p.topics = append(p.topics, topic)
	return nil
}

func newService() (*CatalogApplicationService, *memoryProductRepo, *recordingPublisher) {
	repo := newMemoryProductRepo()
	pub := &recordingPublisher{}
	svc := NewCatalogApplicationService(NewCatalogCommandService(repo, pub), NewCatalogQueryService(repo))
	return svc, repo, pub
}

func fields(name, price string) ProductFields {
	return ProductFields{
		Name:     name,
		Category: "fruits",
		Unit:     "kg",
		Price:    decimal.RequireFromString(price),
		TaxRate:  decimal.RequireFromString("5.5"),
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	svc, _, pub := newService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductCommand{ProductFields: fields("Pommes", "2.5"), Stock: 40, Active: true})
	require.NoError(t, err)
	assert.Equal(t, "2.50", created.Price)
	assert.Equal(t, []string{domain.TopicProductCreated}, pub.topics)

	got, err := svc.GetProduct(ctx, created.ProductID)
	require.NoError(t, err)
	assert.Equal(t, "Pommes", got.Name)
	assert.Equal(t, 40, got.Stock)

	_, err = svc.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.CreateProduct(ctx, CreateProductCommand{ProductFields: fields("", "1")})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}

func TestUpdateStockAndActive(t *testing.T) {
	svc, repo, pub := newService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductCommand{ProductFields: fields("Poires", "3"), Stock: 5, Active: true})
	require.NoError(t, err)

	f := fields("Poires bio", "3.40")
	f.PromoPrice = decimal.NewNullDecimal(decimal.RequireFromString("2.99"))
	updated, err := svc.UpdateProduct(ctx, UpdateProductCommand{ID: created.ProductID, ProductFields: f})
	require.NoError(t, err)
	assert.Equal(t, "Poires bio", updated.Name)
	assert.Equal(t, "2.99", updated.PromoPrice)
	assert.Equal(t, 5, updated.Stock)

	_, err = svc.AdjustStock(ctx, created.ProductID, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, repo.products[created.ProductID].Stock)

	_, err = svc.AdjustStock(ctx, created.ProductID, -2)
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)

	off, err := svc.SetActive(ctx, created.ProductID, false)
	require.NoError(t, err)
	assert.False(t, off.Active)

	assert.Equal(t, []string{
		domain.TopicProductCreated,
		domain.TopicProductUpdated,
		domain.TopicProductStockChanged,
		domain.TopicProductUpdated,
	}, pub.topics)

	_, err = svc.SetActive(ctx, created.ProductID, false)
	require.NoError(t, err)
	assert.Len(t, pub.topics, 4, "no event when nothing changed")
}

func TestListProducts(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.CreateProduct(ctx, CreateProductCommand{ProductFields: fields(name, "1"), Active: true})
		require.NoError(t, err)
	}

	page, err := svc.ListProducts(ctx, "fruits", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "C", page.Items[0].Name)

	page, err = svc.ListProducts(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Size)
	assert.Len(t, page.Items, 3)
}

func TestSnapshot(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := now.Add(24 * time.Hour)

	f := fields("Fraises", "6")
	f.PromoPrice = decimal.NewNullDecimal(decimal.RequireFromString("4.50"))
	f.PromoEndsAt = &end
	created, err := svc.CreateProduct(ctx, CreateProductCommand{ProductFields: f, Stock: 8, Active: true})
	require.NoError(t, err)

	snap, err := svc.Snapshot(ctx, []string{created.ProductID, "gone"}, now)
	require.NoError(t, err)
	require.Len(t, snap, 1)
	entry := snap[created.ProductID]
	assert.True(t, entry.PromoPrice.Valid)
	assert.Equal(t, 8, entry.Stock)

	snap, err = svc.Snapshot(ctx, []string{created.ProductID}, end)
	require.NoError(t, err)
	assert.False(t, snap[created.ProductID].PromoPrice.Valid, "promo expired")
}
