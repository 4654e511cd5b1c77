package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func TestRecords(t *testing.T) {
	b, _ := attachTest(t, false)
	store := b.Records()
	ctx := context.Background()

	r1, err := store.Create(ctx, types.EntityDeals, map[string]any{"dealname": "Acme", "amount": 1200.5, "assigned_user_id": int64(2)})
	require.NoError(t, err)
	r2, err := store.Create(ctx, types.EntityDeals, map[string]any{"dealname": "Globex", "amount": float64(300)})
	require.NoError(t, err)
	assert.Greater(t, r2.ID, r1.ID, "ids increase")

	n, err := store.Import(ctx, types.EntityDeals, []map[string]any{{"dealname": "Hooli"}, {"dealname": "Wonka"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := store.List(ctx, types.EntityDeals)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, 1200.5, list[0].Values["amount"])
	assert.Equal(t, int64(2), list[0].Values["assigned_user_id"])
	assert.Equal(t, int64(300), list[1].Values["amount"], "whole numbers decode as int64")
	assert.Equal(t, "Wonka", list[3].Values["dealname"])

	require.NoError(t, store.SetFavorite(ctx, types.EntityDeals, r2.ID, true))
	list, err = store.List(ctx, types.EntityDeals)
	require.NoError(t, err)
	assert.True(t, list[1].Favorite)

	err = store.SetFavorite(ctx, types.EntityLeads, r2.ID, true)
	assert.ErrorIs(t, err, types.ErrRecordNotFound, "records belong to one entity")
}
