package mysql

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/db/dbtest"
)

func TestCartRepository(t *testing.T) {
	gdb := dbtest.StartPostgres(t, &CartPO{}, &CartItemPO{})
	repo := NewCartRepository(gdb)
	ctx := context.Background()

	_, err := repo.GetByUserID(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)

	cart := domain.NewCart("u1")
	_, err = cart.AddItem("p2", 2, decimal.RequireFromString("3.50"))
	require.NoError(t, err)
	_, err = cart.AddItem("p1", 1, decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p1"}, got.ProductIDs())
	assert.Equal(t, cart.Items[0].ID, got.Items[0].ID)
	assert.True(t, got.Items[0].AcknowledgedPrice.Decimal.Equal(decimal.RequireFromString("3.5")))

	_, err = cart.RemoveItem(cart.Items[0].ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cart))

	got, err = repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, got.ProductIDs())

	cart.Clear()
	require.NoError(t, repo.Save(ctx, cart))
	got, err = repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.GetByUserID(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
	require.NoError(t, repo.Delete(ctx, "u1"))
}

func TestCartRepository_StaleSaveConflicts(t *testing.T) {
	gdb := dbtest.StartPostgres(t, &CartPO{}, &CartItemPO{})
	repo := NewCartRepository(gdb)
	ctx := context.Background()

	cart := domain.NewCart("u1")
	_, err := cart.AddItem("p1", 1, decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cart))
	assert.Equal(t, int64(1), cart.Version)

	// 旧副本：之后被结算清空的那一份之前的快照
	stale, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)

	fresh, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	fresh.Clear()
	require.NoError(t, repo.Save(ctx, fresh))
	assert.Equal(t, int64(2), fresh.Version)

	_, err = stale.AddItem("p2", 1, decimal.RequireFromString("3.00"))
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, stale), domain.ErrCartConflict)

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty(), "cleared lines not resurrected")

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.ErrorIs(t, repo.Save(ctx, stale), domain.ErrCartConflict, "saved copy of a deleted cart")
}
