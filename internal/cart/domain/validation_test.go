package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedCart(t *testing.T) (*Cart, CatalogSnapshot) {
	t.Helper()
	inactive := entry("inactive", "5.00", "20", 10)
	inactive.Active = false
	snapshot := CatalogSnapshot{
		"ok":       entry("ok", "5.00", "20", 10),
		"inactive": inactive,
		"empty":    entry("empty", "5.00", "20", 0),
		"short":    entry("short", "5.00", "20", 2),
	}
	cart := NewCart("u")
	for _, p := range []struct {
		id  string
		qty int
	}{{"ok", 1}, {"gone", 1}, {"inactive", 1}, {"empty", 1}, {"short", 5}} {
		_, err := cart.AddItem(p.id, p.qty, decimal.NewFromInt(5))
		require.NoError(t, err)
	}
	return cart, snapshot
}

func TestValidateForCheckout(t *testing.T) {
	cart, snapshot := mixedCart(t)

	result := ValidateForCheckout(cart, snapshot)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 4)
	assert.Equal(t, []string{"PRODUCT_UNAVAILABLE", "PRODUCT_INACTIVE", "OUT_OF_STOCK", "INSUFFICIENT_STOCK"}, result.Codes())

	short := result.Errors[3]
	assert.Equal(t, "short", short.ProductID)
	assert.Equal(t, 5, short.Requested)
	assert.Equal(t, 2, short.Available)
	assert.Equal(t, Fix{Kind: FixClampQuantity, ItemID: short.ItemID, Quantity: 2}, short.Fix)

	for _, e := range result.Errors[:3] {
		assert.Equal(t, FixRemoveLine, e.Fix.Kind)
	}

	again := ValidateForCheckout(cart, snapshot)
	assert.Equal(t, result, again)
}

func TestValidateForCheckout_Empty(t *testing.T) {
	result := ValidateForCheckout(NewCart("u"), CatalogSnapshot{})
	assert.True(t, result.Valid)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Errors)
}

func TestValidateForCheckout_InactiveWinsOverStock(t *testing.T) {
	e := entry("p", "5.00", "20", 0)
	e.Active = false
	cart := NewCart("u")
	_, _ = cart.AddItem("p", 3, decimal.Zero)

	result := ValidateForCheckout(cart, CatalogSnapshot{"p": e})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrorProductInactive, result.Errors[0].Code)
}

func TestApplyFixes(t *testing.T) {
	cart, snapshot := mixedCart(t)
	result := ValidateForCheckout(cart, snapshot)

	changes := ApplyFixes(cart, result)
	require.Len(t, changes, 4)
	assert.Equal(t, FixClampQuantity, changes[3].Kind)
	assert.Equal(t, 5, changes[3].FromQuantity)
	assert.Equal(t, 2, changes[3].ToQuantity)

	assert.Equal(t, []string{"ok", "short"}, cart.ProductIDs())
	assert.True(t, ValidateForCheckout(cart, snapshot).Valid)

	t.Run("idempotent", func(t *testing.T) {
		assert.Empty(t, ApplyFixes(cart, result))
		assert.Equal(t, []string{"ok", "short"}, cart.ProductIDs())
	})
}

func TestApplyFixes_Valid(t *testing.T) {
	cart := NewCart("u")
	_, _ = cart.AddItem("ok", 1, decimal.Zero)
	snapshot := CatalogSnapshot{"ok": entry("ok", "1", "20", 5)}

	changes := ApplyFixes(cart, ValidateForCheckout(cart, snapshot))
	assert.NotNil(t, changes)
	assert.Empty(t, changes)
	assert.Len(t, cart.Items, 1)
}

func TestApplyFixes_StaleClampNeverRaisesQuantity(t *testing.T) {
	cart := NewCart("u")
	item, err := cart.AddItem("p", 5, decimal.Zero)
	require.NoError(t, err)
	snapshot := CatalogSnapshot{"p": entry("p", "3", "20", 2)}

	result := ValidateForCheckout(cart, snapshot)
	require.Len(t, result.Errors, 1)
	require.Equal(t, FixClampQuantity, result.Errors[0].Fix.Kind)

	_, err = cart.UpdateQuantity(item.ID, 1)
	require.NoError(t, err)

	changes := ApplyFixes(cart, result)
	assert.Empty(t, changes)
	got, ok := cart.Item(item.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.Quantity)
}
