package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func TestSavedViews_Create(t *testing.T) {
	b, _ := attachTest(t, false)
	svc := b.SavedViews()
	ctx := context.Background()

	def := types.ViewDefinition{
		FreeText:       "acme",
		Filters:        map[string]string{"company": "ac"},
		Sort:           &types.SortState{ColumnID: "email", Direction: types.SortDesc},
		VisibleColumns: []string{"email", "company"},
		PageSize:       50,
	}
	v, err := svc.Create(ctx, types.CreateViewInput{Entity: types.EntityLeads, Name: "  Hot  ", Definition: def})
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "Hot", v.Name)
	assert.Equal(t, types.ScopePersonal, v.Scope)
	assert.Equal(t, 1, v.Version)

	views, err := svc.List(ctx, types.EntityLeads)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, def, views[0].Definition)

	others, err := svc.List(ctx, types.EntityDeals)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestSavedViews_CreateValidation(t *testing.T) {
	b, _ := attachTest(t, false)
	svc := b.SavedViews()
	ctx := context.Background()
	_, err := svc.Create(ctx, types.CreateViewInput{Entity: types.EntityLeads, Name: "Taken"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   types.CreateViewInput
		want error
	}{
		{"blank name", types.CreateViewInput{Entity: types.EntityLeads, Name: "  "}, types.ErrViewNameRequired},
		{"duplicate name any case", types.CreateViewInput{Entity: types.EntityLeads, Name: "tAKEN"}, types.ErrViewNameTaken},
		{"empty visible columns", types.CreateViewInput{Entity: types.EntityLeads, Name: "x",
			Definition: types.ViewDefinition{VisibleColumns: []string{}}}, types.ErrNoVisibleColumns},
		{"bad scope", types.CreateViewInput{Entity: types.EntityLeads, Name: "x", Scope: "team"}, types.ErrInvalidScope},
		{"unknown entity", types.CreateViewInput{Entity: "tickets", Name: "x"}, types.ErrUnknownEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = svc.Create(ctx, types.CreateViewInput{Entity: types.EntityContacts, Name: "Taken"})
	assert.NoError(t, err, "names are unique per entity")
}

func TestSavedViews_DefaultIsExclusive(t *testing.T) {
	b, _ := attachTest(t, false)
	svc := b.SavedViews()
	ctx := context.Background()

	a, err := svc.Create(ctx, types.CreateViewInput{Entity: types.EntityLeads, Name: "A", IsDefault: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, types.CreateViewInput{Entity: types.EntityLeads, Name: "B", IsDefault: true})
	require.NoError(t, err)

	views, err := svc.List(ctx, types.EntityLeads)
	require.NoError(t, err)
	assert.False(t, views[0].IsDefault)
	assert.True(t, views[1].IsDefault)

	yes := true
	_, err = svc.Update(ctx, a.ID, types.ViewPatch{IsDefault: &yes})
	require.NoError(t, err)
	views, err = svc.List(ctx, types.EntityLeads)
	require.NoError(t, err)
	assert.True(t, views[0].IsDefault)
	assert.False(t, views[1].IsDefault)
}

func TestSavedViews_Update(t *testing.T) {
	b, _ := attachTest(t, false)
	svc := b.SavedViews()
	ctx := context.Background()

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b.now = func() time.Time { return clock }
	v, err := svc.Create(ctx, types.CreateViewInput{Entity: types.EntityLeads, Name: "A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, types.CreateViewInput{Entity: types.EntityLeads, Name: "B"})
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	name := "Renamed"
	def := types.ViewDefinition{FreeText: "x"}
	got, err := svc.Update(ctx, v.ID, types.ViewPatch{Name: &name, Definition: &def})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "x", got.Definition.FreeText)
	assert.Equal(t, 2, got.Version)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	taken := "b"
	_, err = svc.Update(ctx, v.ID, types.ViewPatch{Name: &taken})
	assert.ErrorIs(t, err, types.ErrViewNameTaken)

	same := "RENAMED"
	got, err = svc.Update(ctx, v.ID, types.ViewPatch{Name: &same})
	require.NoError(t, err, "a view may change the case of its own name")
	assert.Equal(t, 3, got.Version)

	_, err = svc.Update(ctx, "missing", types.ViewPatch{Name: &name})
	assert.ErrorIs(t, err, types.ErrViewNotFound)
}

func TestSavedViews_Remove(t *testing.T) {
	b, _ := attachTest(t, false)
	svc := b.SavedViews()
	ctx := context.Background()

	v, err := svc.Create(ctx, types.CreateViewInput{Entity: types.EntityLeads, Name: "A"})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, v.ID))
	require.NoError(t, svc.Remove(ctx, v.ID), "removing an unknown id is a no-op")

	views, err := svc.List(ctx, types.EntityLeads)
	require.NoError(t, err)
	assert.Empty(t, views)
}
