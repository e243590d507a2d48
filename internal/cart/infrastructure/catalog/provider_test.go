package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
)

type stubSource struct {
	at  time.Time
	err error
}

func (s *stubSource) Snapshot(_ context.Context, ids []string, now time.Time) (map[string]catalogapp.SnapshotEntry, error) {
	s.at = now
	if s.err != nil {
		return nil, s.err
	}
	out := map[string]catalogapp.SnapshotEntry{}
	for _, id := range ids {
		if id == "gone" {
			continue
		}
		out[id] = catalogapp.SnapshotEntry{ProductID: id, Name: "N" + id, Price: decimal.NewFromInt(2), Stock: 4, Active: true}
	}
	return out, nil
}

func TestProvider(t *testing.T) {
	src := &stubSource{}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &provider{source: src, now: func() time.Time { return fixed }}

	snap, err := p.Snapshot(context.Background(), []string{"a", "gone"})
	require.NoError(t, err)
	assert.Equal(t, fixed, src.at)
	require.NotNil(t, snap.Lookup("a"))
	assert.Equal(t, "Na", snap.Lookup("a").Name)
	assert.Nil(t, snap.Lookup("gone"))

	src.err = errors.New("down")
	_, err = p.Snapshot(context.Background(), []string{"a"})
	assert.Error(t, err)
}
