package views

import (
	"slices"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Export captures the session into a workspace. Page and selection are
// filled in by the owner of the table.
func (s *Session) Export() types.Workspace {
	ws := types.Workspace{
		Entity:   s.entity,
		Revision: s.revision,
		Working: types.ViewDefinition{
			FreeText:       s.freeText,
			Filters:        tableview.CompactFilters(s.filters),
			Sort:           sortPtr(s.sort),
			VisibleColumns: slices.Clone(s.tempVisible),
			ColumnOrder:    slices.Clone(s.tempOrder),
			HeaderLayout:   s.headerLayout,
			PageSize:       s.pageSize,
		},
		KnownColumns: slices.Clone(s.columnIDs),
	}
	if s.active != nil {
		ws.ActiveViewID = s.active.ID
	}
	if s.snapshot != nil {
		d := s.snapshot.ViewDefinition()
		d.PageSize = s.snapshotPageSize
		ws.DefaultSnapshot = &d
	}
	return ws
}

// Import restores a workspace captured by Export. active is the saved view
// named by ws.ActiveViewID; pass nil when it no longer exists, and the
// session resumes on Default with the stored working state. Column state is
// reconciled against the current schema. The table is not reset; build it
// from TableState.
func (s *Session) Import(ws types.Workspace, active *types.SavedView) {
	w := ws.Working
	s.freeText = w.FreeText
	s.filters = tableview.CompactFilters(w.Filters)
	s.sort = types.SortState{}
	if w.Sort != nil {
		s.sort = *w.Sort
	}
	if w.PageSize > 0 {
		s.pageSize = w.PageSize
	}
	if w.HeaderLayout.Valid() {
		s.headerLayout = w.HeaderLayout
	}
	s.revision = ws.Revision

	prev := s.columnIDs
	if ws.KnownColumns != nil {
		prev = ws.KnownColumns
	}
	current := s.columnIDs

	s.active = nil
	if active != nil && active.ID == ws.ActiveViewID {
		v := *active
		v.Definition = active.Definition.Clone()
		s.active = &v
	}

	// The snapshot was taken against the stored schema; SetColumns
	// reconciles it together with the working columns.
	s.snapshot = nil
	if ws.DefaultSnapshot != nil && s.active != nil {
		d := Normalize(*ws.DefaultSnapshot, prev)
		s.snapshot = &d
		s.snapshotPageSize = ws.DefaultSnapshot.PageSize
		if s.snapshotPageSize <= 0 {
			s.snapshotPageSize = s.pageSize
		}
	}

	s.columnIDs = slices.Clone(prev)
	s.tempVisible = slices.Clone(w.VisibleColumns)
	s.tempOrder = slices.Clone(w.ColumnOrder)
	s.SetColumns(current)
}
