package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func TestExportImportRoundTrip(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	ctx := context.Background()
	cb := s.Callbacks(tableview.Callbacks{})
	cb.OnQueryChange(tableview.Query{FreeText: "default"})
	view := savedView("a", "A", types.ViewDefinition{FreeText: "a", VisibleColumns: []string{"email"}})
	s.SelectView(ctx, view)
	cb.OnQueryChange(tableview.Query{FreeText: "a edited"})

	ws := s.Export()
	assert.Equal(t, "a", ws.ActiveViewID)
	require.NotNil(t, ws.DefaultSnapshot)
	assert.Equal(t, "default", ws.DefaultSnapshot.FreeText)

	restored, _, _, _ := newTestSession(t)
	restored.Import(ws, &view)

	require.NotNil(t, restored.Active())
	assert.Equal(t, "a edited", restored.Working().FreeText)
	assert.True(t, restored.IsDirty())
	assert.Equal(t, s.Revision(), restored.Revision())

	restored.ReturnToDefault(ctx)
	assert.Equal(t, "default", restored.Working().FreeText)
}

func TestImportMissingViewFallsBackToDefault(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	s.Import(types.Workspace{
		Entity:          types.EntityLeads,
		ActiveViewID:    "gone",
		Working:         types.ViewDefinition{FreeText: "kept"},
		DefaultSnapshot: &types.ViewDefinition{FreeText: "dropped"},
	}, nil)

	assert.Nil(t, s.Active())
	assert.False(t, s.HasSnapshot())
	assert.Equal(t, "kept", s.Working().FreeText)
}

func TestImportReconcilesAgainstNewSchema(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	s.Import(types.Workspace{
		Entity: types.EntityLeads,
		Working: types.ViewDefinition{
			VisibleColumns: []string{"firstname", "phone"},
			ColumnOrder:    []string{"phone", "firstname", "lastname", "company"},
		},
		KnownColumns: []string{"firstname", "lastname", "company", "phone"},
	}, nil)

	st := s.TableState()
	assert.Equal(t, []string{"firstname", "phone", "email"}, st.VisibleColumns)
	assert.Equal(t, []string{"firstname", "lastname", "company", "email"}, st.ColumnOrder)
	assert.Equal(t, columns, s.ColumnIDs())
}

func TestImportReconcilesDefaultSnapshot(t *testing.T) {
	s, _, _, _ := newTestSession(t)
	view := savedView("a", "A", types.ViewDefinition{VisibleColumns: []string{"company"}})
	s.Import(types.Workspace{
		Entity:       types.EntityLeads,
		ActiveViewID: "a",
		Working:      types.ViewDefinition{VisibleColumns: []string{"company"}},
		DefaultSnapshot: &types.ViewDefinition{
			VisibleColumns: []string{"firstname", "lastname", "company"},
			ColumnOrder:    []string{"firstname", "lastname", "company"},
		},
		KnownColumns: []string{"firstname", "lastname", "company"},
	}, &view)
	require.True(t, s.HasSnapshot())

	s.ReturnToDefault(context.Background())

	st := s.TableState()
	assert.Equal(t, columns, st.VisibleColumns, "email is new since the snapshot")
	assert.Equal(t, columns, st.ColumnOrder)
	assert.False(t, s.IsDirty())
}
