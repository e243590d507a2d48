package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/internal/cart/domain"
)

type stubRepo struct {
	carts   map[string]*domain.Cart
	gets    int
	saveErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{carts: map[string]*domain.Cart{}}
}

func (r *stubRepo) GetByUserID(_ context.Context, userID string) (*domain.Cart, error) {
	r.gets++
	if c, ok := r.carts[userID]; ok {
		return c, nil
	}
	return nil, domain.ErrCartNotFound
}

func (r *stubRepo) Save(_ context.Context, cart *domain.Cart) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.carts[cart.UserID] = cart
	return nil
}

func (r *stubRepo) Delete(_ context.Context, userID string) error {
	delete(r.carts, userID)
	return nil
}

func TestComposite_ReadThrough(t *testing.T) {
	db, cache := newStubRepo(), newStubRepo()
	repo := NewCompositeCartRepository(db, cache)
	ctx := context.Background()

	db.carts["u1"] = domain.NewCart("u1")

	got, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Contains(t, cache.carts, "u1", "backfilled")

	_, err = repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, db.gets, "second read served from cache")

	_, err = repo.GetByUserID(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrCartNotFound)
}

func TestComposite_SaveAndDelete(t *testing.T) {
	db, cache := newStubRepo(), newStubRepo()
	repo := NewCompositeCartRepository(db, cache)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewCart("u1")))
	assert.Contains(t, db.carts, "u1")
	assert.Contains(t, cache.carts, "u1")

	require.NoError(t, repo.Delete(ctx, "u1"))
	assert.NotContains(t, db.carts, "u1")
	assert.NotContains(t, cache.carts, "u1")

	cache.carts["u2"] = domain.NewCart("u2")
	cache.saveErr = errors.New("redis down")
	require.NoError(t, repo.Save(ctx, domain.NewCart("u2")))
	assert.NotContains(t, cache.carts, "u2", "stale cache entry dropped")
}

func TestComposite_ConflictEvictsCache(t *testing.T) {
	db, cache := newStubRepo(), newStubRepo()
	repo := NewCompositeCartRepository(db, cache)
	ctx := context.Background()

	stale := domain.NewCart("u1")
	cache.carts["u1"] = stale
	db.saveErr = domain.ErrCartConflict

	assert.ErrorIs(t, repo.Save(ctx, stale), domain.ErrCartConflict)
	assert.NotContains(t, cache.carts, "u1")

	db.saveErr = nil
	db.carts["u1"] = domain.NewCart("u1")
	_, err := repo.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, db.gets, "next read goes to the database")
}
