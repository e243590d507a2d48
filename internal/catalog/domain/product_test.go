package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() Product {
	return Product{
		Name:    "Tomates",
		Price:   decimal.RequireFromString("3.20"),
		TaxRate: decimal.RequireFromString("5.5"),
		Stock:   10,
		Active:  true,
	}
}

func TestNewProduct(t *testing.T) {
	p, err := NewProduct(validProduct())
	require.NoError(t, err)
	assert.Len(t, p.ID, 36)

	cases := map[string]func(p *Product){
		"name":     func(p *Product) { p.Name = "" },
		"price":    func(p *Product) { p.Price = decimal.NewFromInt(-1) },
		"tax":      func(p *Product) { p.TaxRate = decimal.NewFromInt(100) },
		"stock":    func(p *Product) { p.Stock = -1 },
		"promo":    func(p *Product) { p.PromoPrice = decimal.NewNullDecimal(decimal.NewFromInt(-1)) },
		"window": func(p *Product) {
			now := time.Now()
			p.PromoStartsAt, p.PromoEndsAt = &now, &now
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProduct()
			mutate(&p)
			_, err := NewProduct(p)
			assert.ErrorIs(t, err, ErrInvalidProduct)
		})
	}
}

func TestActivePromoPrice(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	start, end := now.Add(-time.Hour), now.Add(time.Hour)

	p := validProduct()
	assert.False(t, p.ActivePromoPrice(now).Valid)

	p.PromoPrice = decimal.NewNullDecimal(decimal.RequireFromString("2.50"))
	assert.True(t, p.ActivePromoPrice(now).Valid, "no window")

	p.PromoStartsAt, p.PromoEndsAt = &start, &end
	assert.True(t, p.ActivePromoPrice(now).Valid)
	assert.True(t, p.ActivePromoPrice(start).Valid, "start is inclusive")
	assert.False(t, p.ActivePromoPrice(end).Valid, "end is exclusive")
	assert.False(t, p.ActivePromoPrice(start.Add(-time.Second)).Valid)
}

func TestSetStock(t *testing.T) {
	p := validProduct()
	old, err := p.SetStock(3)
	require.NoError(t, err)
	assert.Equal(t, 10, old)
	assert.Equal(t, 3, p.Stock)

	_, err = p.SetStock(-1)
	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.Equal(t, 3, p.Stock)
}
