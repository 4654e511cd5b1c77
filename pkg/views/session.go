package views

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// ErrNoActiveView is returned by operations that need a selected saved view.
var ErrNoActiveView = errors.New("no saved view is active")

// Resetter is the table a Session drives. tableview.TableView implements it.
type Resetter interface {
	Reset(revision uint64, st tableview.State)
}

// Options configures a Session.
type Options struct {
	Entity    types.EntityKey
	ColumnIDs []string
	Views     types.SavedViewService
	Prefs     types.ColumnPrefStore
	Logger    *slog.Logger

	// PageSize and HeaderLayout apply until a saved view overrides them.
	PageSize     int
	HeaderLayout types.HeaderLayout
}

// Session holds the view state of one entity directory.
type Session struct {
	entity    types.EntityKey
	columnIDs []string
	views     types.SavedViewService
	prefs     types.ColumnPrefStore
	logger    *slog.Logger

	active *types.SavedView

	freeText string
	filters  map[string]string
	sort     types.SortState

	// Column state that lives only in this session; nil falls back to the
	// persisted prefs and then to every column.
	tempVisible []string
	tempOrder   []string
	persisted   types.ColumnPrefs

	pageSize     int
	headerLayout types.HeaderLayout

	snapshot         *Definition
	snapshotPageSize int
	revision         uint64

	table     Resetter
	resetting bool
}

// NewSession builds a Session on the Default view. Persisted column prefs
// are loaded from opts.Prefs; a failure to load them is logged and ignored.
func NewSession(ctx context.Context, opts Options) *Session {
	s := &Session{
		entity:       opts.Entity,
		columnIDs:    slices.Clone(opts.ColumnIDs),
		views:        opts.Views,
		prefs:        opts.Prefs,
		logger:       opts.Logger,
		pageSize:     opts.PageSize,
		headerLayout: opts.HeaderLayout,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.pageSize <= 0 {
		s.pageSize = tableview.DefaultPageSize
	}
	if !s.headerLayout.Valid() {
		s.headerLayout = types.HeaderPopover
	}
	if s.prefs != nil {
		p, err := s.prefs.Get(ctx, s.entity)
		if err != nil {
			s.logger.Warn("load column prefs", "entity", s.entity, "error", err)
		} else if p != nil {
			s.persisted = *p
			if p.HeaderLayout.Valid() {
				s.headerLayout = p.HeaderLayout
			}
		}
	}
	return s
}

// Bind attaches the table the Session resets on every transition.
func (s *Session) Bind(t Resetter) { s.table = t }

// Entity returns the entity key of the session.
func (s *Session) Entity() types.EntityKey { return s.entity }

// Active returns the selected saved view, or nil on the Default view.
func (s *Session) Active() *types.SavedView {
	if s.active == nil {
		return nil
	}
	v := *s.active
	v.Definition = v.Definition.Clone()
	return &v
}

// Revision counts the transitions that reset the table.
func (s *Session) Revision() uint64 { return s.revision }

// HeaderLayout returns the current header layout.
func (s *Session) HeaderLayout() types.HeaderLayout { return s.headerLayout }

// PageSize returns the current page size.
func (s *Session) PageSize() int { return s.pageSize }

// HasSnapshot reports whether a Default working state is waiting to be
// restored.
func (s *Session) HasSnapshot() bool { return s.snapshot != nil }

// ColumnIDs returns the column schema the session reconciles against.
func (s *Session) ColumnIDs() []string { return slices.Clone(s.columnIDs) }

// Working returns the normalized working definition.
func (s *Session) Working() Definition {
	return Normalize(types.ViewDefinition{
		FreeText:       s.freeText,
		Filters:        s.filters,
		Sort:           sortPtr(s.sort),
		VisibleColumns: s.visibleColumns(),
		ColumnOrder:    s.columnOrder(),
	}, s.columnIDs)
}

// Baseline returns what the working state is compared against: the active
// view's definition, or the neutral state on Default.
func (s *Session) Baseline() Definition {
	if s.active != nil {
		return Normalize(s.active.Definition, s.columnIDs)
	}
	return Neutral(s.columnIDs)
}

// IsDirty reports whether the working state differs from the baseline.
func (s *Session) IsDirty() bool {
	return !s.Working().Equal(s.Baseline())
}

// CurrentDefinition returns the working state as a storable definition.
func (s *Session) CurrentDefinition() types.ViewDefinition {
	d := types.ViewDefinition{
		FreeText:       s.freeText,
		Filters:        tableview.CompactFilters(s.filters),
		Sort:           sortPtr(s.sort),
		VisibleColumns: s.visibleColumns(),
		ColumnOrder:    s.columnOrder(),
		HeaderLayout:   s.headerLayout,
		PageSize:       s.pageSize,
	}
	if d.VisibleColumns == nil {
		d.VisibleColumns = slices.Clone(s.columnIDs)
	}
	if d.ColumnOrder == nil {
		d.ColumnOrder = slices.Clone(s.columnIDs)
	}
	return d
}

// TableState returns the state a table should be built or reset with.
func (s *Session) TableState() tableview.State {
	return tableview.State{
		Query:          tableview.Query{FreeText: s.freeText, Filters: maps.Clone(s.filters)},
		Sort:           s.sort,
		VisibleColumns: s.visibleColumns(),
		ColumnOrder:    s.columnOrder(),
		PageSize:       s.pageSize,
	}
}

func (s *Session) visibleColumns() []string {
	if s.tempVisible != nil {
		return slices.Clone(s.tempVisible)
	}
	return slices.Clone(s.persisted.VisibleColumns)
}

func (s *Session) columnOrder() []string {
	if s.tempOrder != nil {
		return slices.Clone(s.tempOrder)
	}
	return slices.Clone(s.persisted.ColumnOrder)
}

// SelectView adopts v's definition. Leaving Default first snapshots the
// working state; hopping between saved views does not.
func (s *Session) SelectView(ctx context.Context, v types.SavedView) {
	if s.active == nil {
		w := s.Working()
		s.snapshot = &w
		s.snapshotPageSize = s.pageSize
	}
	def := v.Definition.Clone()
	s.active = &types.SavedView{}
	*s.active = v
	s.active.Definition = def

	n := Normalize(def, s.columnIDs)
	s.freeText = n.FreeText
	s.filters = n.Filters
	s.sort = n.Sort
	s.tempVisible = n.VisibleColumns
	s.tempOrder = n.ColumnOrder
	if def.PageSize > 0 {
		s.pageSize = def.PageSize
	}

	patch := types.ColumnPrefsPatch{
		VisibleColumns: slices.Clone(n.VisibleColumns),
		ColumnOrder:    slices.Clone(n.ColumnOrder),
	}
	if def.HeaderLayout.Valid() {
		s.headerLayout = def.HeaderLayout
		patch.HeaderLayout = def.HeaderLayout
	}
	s.persistPrefs(ctx, patch)

	s.logger.Debug("select view", "entity", s.entity, "view", v.Name, "id", v.ID)
	s.bump()
}

// ReturnToDefault leaves the active saved view. The Default snapshot is
// restored if one exists, otherwise the neutral state is used. Persisted
// column overrides are cleared.
func (s *Session) ReturnToDefault(ctx context.Context) {
	s.active = nil
	w := Neutral(s.columnIDs)
	if s.snapshot != nil {
		w = *s.snapshot
		s.pageSize = s.snapshotPageSize
		s.snapshot = nil
	}
	s.adopt(w)
	s.clearPrefs(ctx)

	s.logger.Debug("return to default view", "entity", s.entity)
	s.bump()
}

// ResetToDefault discards every customization: neutral query and sort,
// every column in schema order, no snapshot and no persisted overrides.
func (s *Session) ResetToDefault(ctx context.Context) {
	s.active = nil
	s.snapshot = nil
	s.adopt(Neutral(s.columnIDs))
	s.clearPrefs(ctx)

	s.logger.Debug("reset to default view", "entity", s.entity)
	s.bump()
}

// SetHeaderLayout changes and persists the header layout. It does not
// reset the table.
func (s *Session) SetHeaderLayout(ctx context.Context, h types.HeaderLayout) error {
	if !h.Valid() {
		return types.ErrInvalidHeaderLayout
	}
	s.headerLayout = h
	s.persistPrefs(ctx, types.ColumnPrefsPatch{HeaderLayout: h})
	return nil
}

// SetColumns replaces the column schema, e.g. after a field was added or
// removed. Session column state and the Default snapshot are reconciled
// the way the table does it.
func (s *Session) SetColumns(columnIDs []string) {
	prev := s.columnIDs
	s.columnIDs = slices.Clone(columnIDs)
	if s.tempVisible != nil || s.tempOrder != nil {
		l := tableview.NewLayout(prev, s.tempVisible, s.tempOrder)
		l.Reconcile(s.columnIDs)
		if s.tempVisible != nil {
			s.tempVisible = l.Visible()
		}
		if s.tempOrder != nil {
			s.tempOrder = l.Order()
		}
	}
	if s.snapshot != nil {
		s.snapshot.reconcile(prev, s.columnIDs)
	}
}

// Callbacks returns the table callbacks that keep the Session in sync with
// user edits. extra callbacks, if set, run after the Session's own.
func (s *Session) Callbacks(extra tableview.Callbacks) tableview.Callbacks {
	return tableview.Callbacks{
		OnQueryChange: func(q tableview.Query) {
			s.onQueryChange(q)
			if extra.OnQueryChange != nil {
				extra.OnQueryChange(q)
			}
		},
		OnSortChange: func(st types.SortState) {
			s.onSortChange(st)
			if extra.OnSortChange != nil {
				extra.OnSortChange(st)
			}
		},
		OnSelectionChange: extra.OnSelectionChange,
		OnVisibleColumnsChange: func(ids []string) {
			s.onVisibleColumnsChange(ids)
			if extra.OnVisibleColumnsChange != nil {
				extra.OnVisibleColumnsChange(ids)
			}
		},
		OnColumnOrderChange: func(ids []string) {
			s.onColumnOrderChange(ids)
			if extra.OnColumnOrderChange != nil {
				extra.OnColumnOrderChange(ids)
			}
		},
		OnPageChange: func(p tableview.Page) {
			if !s.resetting {
				s.pageSize = p.Size
			}
			if extra.OnPageChange != nil {
				extra.OnPageChange(p)
			}
		},
	}
}

func (s *Session) onQueryChange(q tableview.Query) {
	if s.resetting {
		return
	}
	s.freeText = q.FreeText
	s.filters = tableview.CompactFilters(q.Filters)
}

func (s *Session) onSortChange(st types.SortState) {
	if s.resetting {
		return
	}
	s.sort = st
}

// Column edits are session-only on Default and persisted while viewing.
func (s *Session) onVisibleColumnsChange(ids []string) {
	if s.resetting {
		return
	}
	s.tempVisible = slices.Clone(ids)
	if s.active != nil {
		s.persistPrefs(context.Background(), types.ColumnPrefsPatch{VisibleColumns: slices.Clone(ids)})
	}
}

func (s *Session) onColumnOrderChange(ids []string) {
	if s.resetting {
		return
	}
	s.tempOrder = slices.Clone(ids)
	if s.active != nil {
		s.persistPrefs(context.Background(), types.ColumnPrefsPatch{ColumnOrder: slices.Clone(ids)})
	}
}

func (s *Session) adopt(d Definition) {
	s.freeText = d.FreeText
	s.filters = maps.Clone(d.Filters)
	s.sort = d.Sort
	s.tempVisible = slices.Clone(d.VisibleColumns)
	s.tempOrder = slices.Clone(d.ColumnOrder)
}

func (s *Session) bump() {
	s.revision++
	if s.table == nil {
		return
	}
	s.resetting = true
	defer func() { s.resetting = false }()
	s.table.Reset(s.revision, s.TableState())
}

func (s *Session) persistPrefs(ctx context.Context, patch types.ColumnPrefsPatch) {
	if patch.VisibleColumns != nil {
		s.persisted.VisibleColumns = slices.Clone(patch.VisibleColumns)
	}
	if patch.ColumnOrder != nil {
		s.persisted.ColumnOrder = slices.Clone(patch.ColumnOrder)
	}
	if patch.HeaderLayout != "" {
		s.persisted.HeaderLayout = patch.HeaderLayout
	}
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Set(ctx, s.entity, patch); err != nil {
		s.logger.Warn("save column prefs", "entity", s.entity, "error", err)
	}
}

func (s *Session) clearPrefs(ctx context.Context) {
	s.persisted.VisibleColumns = nil
	s.persisted.ColumnOrder = nil
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Clear(ctx, s.entity); err != nil {
		s.logger.Warn("clear column prefs", "entity", s.entity, "error", err)
	}
}

func sortPtr(st types.SortState) *types.SortState {
	if st.IsZero() {
		return nil
	}
	return &st
}
