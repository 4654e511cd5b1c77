package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func TestSaveAsNewSelectsCreatedView(t *testing.T) {
	s, fv, _, ft := newTestSession(t)
	ctx := context.Background()
	cb := s.Callbacks(tableview.Callbacks{})
	cb.OnQueryChange(tableview.Query{FreeText: "acme", Filters: map[string]string{"email": "@acme"}})

	v, err := s.SaveAsNew(ctx, "  Acme leads ", types.ScopePersonal, false)
	require.NoError(t, err)

	assert.Equal(t, "Acme leads", v.Name)
	require.NotNil(t, s.Active())
	assert.Equal(t, v.ID, s.Active().ID)
	assert.False(t, s.IsDirty())
	assert.Equal(t, "acme", fv.views[0].Definition.FreeText)
	assert.Equal(t, columns, fv.views[0].Definition.VisibleColumns)
	assert.Len(t, ft.resets, 1)
}

func TestSaveAsNewFailureLeavesStateUnchanged(t *testing.T) {
	s, fv, _, ft := newTestSession(t)
	ctx := context.Background()
	s.Callbacks(tableview.Callbacks{}).OnQueryChange(tableview.Query{FreeText: "x"})

	_, err := s.SaveAsNew(ctx, "", types.ScopePersonal, false)
	assert.ErrorIs(t, err, types.ErrViewNameRequired)

	fv.fail = errBoom
	_, err = s.SaveAsNew(ctx, "X", types.ScopePersonal, false)
	assert.ErrorIs(t, err, errBoom)

	assert.Nil(t, s.Active())
	assert.Equal(t, "x", s.Working().FreeText)
	assert.Zero(t, s.Revision())
	assert.Empty(t, ft.resets)
}

func TestSaveAsNewDuplicateName(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	ctx := context.Background()

	_, err := s.SaveAsNew(ctx, "Mine", types.ScopePersonal, false)
	require.NoError(t, err)
	_, err = s.SaveAsNew(ctx, "mine", types.ScopePersonal, false)
	assert.ErrorIs(t, err, types.ErrViewNameTaken)
}

func TestUpdateActive(t *testing.T) {
	s, fv, _, _ := newTestSession(t)
	ctx := context.Background()

	_, err := s.UpdateActive(ctx)
	assert.ErrorIs(t, err, ErrNoActiveView)

	_, err = s.SaveAsNew(ctx, "Mine", types.ScopePersonal, false)
	require.NoError(t, err)
	s.Callbacks(tableview.Callbacks{}).OnSortChange(types.SortState{ColumnID: "email", Direction: types.SortDesc})
	require.True(t, s.IsDirty())

	v, err := s.UpdateActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v.Version)
	assert.False(t, s.IsDirty())
	assert.Equal(t, types.SortDesc, fv.views[0].Definition.Sort.Direction)
}

func TestRenameActive(t *testing.T) {
	s, fv, _, ft := newTestSession(t)
	ctx := context.Background()
	_, err := s.SaveAsNew(ctx, "Mine", types.ScopePersonal, false)
	require.NoError(t, err)
	resets := len(ft.resets)

	v, err := s.RenameActive(ctx, "  ")
	require.NoError(t, err)
	assert.Equal(t, "Mine", v.Name)
	v, err = s.RenameActive(ctx, "Mine")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Version)
	assert.Len(t, ft.resets, resets, "no-op renames do not reset")

	v, err = s.RenameActive(ctx, "Ours")
	require.NoError(t, err)
	assert.Equal(t, "Ours", v.Name)
	assert.Equal(t, "Ours", s.Active().Name)
	assert.Equal(t, "Ours", fv.views[0].Name)
}

func TestDeleteActive(t *testing.T) {
	s, fv, fp, _ := newTestSession(t)
	ctx := context.Background()
	s.Callbacks(tableview.Callbacks{}).OnQueryChange(tableview.Query{FreeText: "before"})
	_, err := s.SaveAsNew(ctx, "Mine", types.ScopePersonal, false)
	require.NoError(t, err)

	fv.fail = errBoom
	assert.ErrorIs(t, s.DeleteActive(ctx), errBoom)
	assert.NotNil(t, s.Active())

	fv.fail = nil
	require.NoError(t, s.DeleteActive(ctx))
	assert.Nil(t, s.Active())
	assert.Empty(t, fv.views)
	assert.Equal(t, "before", s.Working().FreeText)
	assert.Equal(t, 1, fp.clears)

	assert.ErrorIs(t, s.DeleteActive(ctx), ErrNoActiveView)
}

func TestFindAndSelectDefaultView(t *testing.T) {
	s, fv, _, _ := newTestSession(t)
	ctx := context.Background()
	fv.views = []types.SavedView{
		savedView("a", "Hot leads", types.ViewDefinition{FreeText: "hot"}),
		savedView("b", "Cold leads", types.ViewDefinition{FreeText: "cold"}),
	}

	v, err := s.Find(ctx, "HOT LEADS")
	require.NoError(t, err)
	assert.Equal(t, "a", v.ID)
	v, err = s.Find(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Cold leads", v.Name)
	_, err = s.Find(ctx, "warm")
	assert.ErrorIs(t, err, types.ErrViewNotFound)

	ok, err := s.SelectDefaultView(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	fv.views[1].IsDefault = true
	ok, err = s.SelectDefaultView(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cold", s.Working().FreeText)
}

func TestMarkActiveDefault(t *testing.T) {
	s, _, _, ft := newTestSession(t)
	ctx := context.Background()
	_, err := s.SaveAsNew(ctx, "Mine", types.ScopePersonal, false)
	require.NoError(t, err)
	resets := len(ft.resets)

	v, err := s.MarkActiveDefault(ctx, true)
	require.NoError(t, err)
	assert.True(t, v.IsDefault)
	assert.True(t, s.Active().IsDefault)
	assert.Len(t, ft.resets, resets)
}
