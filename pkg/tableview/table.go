package tableview

import (
	"maps"
	"slices"

	"golang.org/x/text/language"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// State is the restorable part of a table. Nil VisibleColumns and
// ColumnOrder mean every column in schema order.
type State struct {
	Query          Query
	Sort           types.SortState
	VisibleColumns []string
	ColumnOrder    []string
	PageSize       int
	PageIndex      int
	Selected       []RowID
}

// Callbacks are invoked synchronously after the matching state changes.
// Any of them may be nil.
type Callbacks struct {
	OnQueryChange          func(Query)
	OnSortChange           func(types.SortState)
	OnSelectionChange      func([]RowID)
	OnVisibleColumnsChange func([]string)
	OnColumnOrderChange    func([]string)
	OnPageChange           func(Page)
}

// Options configures a TableView.
type Options[T any] struct {
	Columns  []Column[T]
	Rows     []T
	GetRowID func(T) RowID
	Locale   language.Tag
	Initial  State

	// KnownColumnIDs is the schema the initial layout was saved against.
	// Columns outside it are treated as new and become visible. Nil means
	// the current schema.
	KnownColumnIDs []string
	Callbacks      Callbacks
}

// TableView combines filtering, sorting, paging, selection and column
// layout over one row set.
type TableView[T any] struct {
	cols     []Column[T]
	rows     []T
	getRowID func(T) RowID
	sorter   *Sorter
	cb       Callbacks

	query     Query
	sort      types.SortState
	pageSize  int
	pageIndex int
	revision  uint64

	layout    *Layout
	selection *Selection

	matching []T
	page     Page
}

// New builds a TableView from opts.
func New[T any](opts Options[T]) *TableView[T] {
	t := &TableView[T]{
		cols:     slices.Clone(opts.Columns),
		rows:     opts.Rows,
		getRowID: opts.GetRowID,
		sorter:   NewSorter(opts.Locale),
		cb:       opts.Callbacks,
	}
	t.apply(opts.Initial)

	schema := ColumnIDs(t.cols)
	known := opts.KnownColumnIDs
	if known == nil {
		known = schema
	}
	t.layout = NewLayout(known, opts.Initial.VisibleColumns, opts.Initial.ColumnOrder)
	t.layout.Reconcile(schema)
	t.layout.OnChange(t.cb.OnVisibleColumnsChange, t.cb.OnColumnOrderChange)
	t.selection = NewSelection(opts.Initial.Selected, t.cb.OnSelectionChange)
	t.recompute()
	return t
}

func (t *TableView[T]) apply(st State) {
	t.query = Query{FreeText: st.Query.FreeText, Filters: CompactFilters(st.Query.Filters)}
	t.sort = st.Sort
	t.pageSize = st.PageSize
	if t.pageSize <= 0 {
		t.pageSize = DefaultPageSize
	}
	t.pageIndex = st.PageIndex
}

// Revision returns the revision passed to the last Reset.
func (t *TableView[T]) Revision() uint64 { return t.revision }

// Reset replaces the whole table state with st and records revision. The
// selection is cleared unless st carries one. Every callback fires.
func (t *TableView[T]) Reset(revision uint64, st State) {
	t.revision = revision
	t.apply(st)
	t.layout.OnChange(nil, nil)
	t.layout.Reset(st.VisibleColumns, st.ColumnOrder)
	t.layout.OnChange(t.cb.OnVisibleColumnsChange, t.cb.OnColumnOrderChange)
	t.recompute()

	if t.cb.OnQueryChange != nil {
		t.cb.OnQueryChange(t.Query())
	}
	if t.cb.OnSortChange != nil {
		t.cb.OnSortChange(t.sort)
	}
	if t.cb.OnVisibleColumnsChange != nil {
		t.cb.OnVisibleColumnsChange(t.layout.Visible())
	}
	if t.cb.OnColumnOrderChange != nil {
		t.cb.OnColumnOrderChange(t.layout.Order())
	}
	t.selection.Replace(st.Selected)
	t.firePage()
}

// State returns a snapshot of the restorable state.
func (t *TableView[T]) State() State {
	return State{
		Query:          t.Query(),
		Sort:           t.sort,
		VisibleColumns: t.layout.Visible(),
		ColumnOrder:    t.layout.Order(),
		PageSize:       t.pageSize,
		PageIndex:      t.page.Index,
		Selected:       t.selection.IDs(),
	}
}

// SetRows replaces the row set and keeps the page index in range.
func (t *TableView[T]) SetRows(rows []T) {
	t.rows = rows
	prev := t.page
	t.recompute()
	if prev != t.page {
		t.firePage()
	}
}

// SetColumns replaces the column schema and reconciles the layout.
func (t *TableView[T]) SetColumns(cols []Column[T]) {
	t.cols = slices.Clone(cols)
	t.layout.Reconcile(ColumnIDs(t.cols))
	t.recompute()
}

// Columns returns every column of the schema.
func (t *TableView[T]) Columns() []Column[T] { return slices.Clone(t.cols) }

// Query returns the current query.
func (t *TableView[T]) Query() Query { return t.query.Clone() }

// SetFreeText changes the free-text search and returns to the first page.
func (t *TableView[T]) SetFreeText(q string) {
	if q == t.query.FreeText {
		return
	}
	t.query.FreeText = q
	t.queryChanged()
}

// SetFilter sets the filter of one column; an empty value removes it.
// Unknown columns are ignored.
func (t *TableView[T]) SetFilter(columnID, value string) {
	if _, ok := columnByID(t.cols, columnID); !ok {
		return
	}
	if t.query.Filters[columnID] == value {
		return
	}
	if value == "" {
		delete(t.query.Filters, columnID)
	} else {
		if t.query.Filters == nil {
			t.query.Filters = make(map[string]string)
		}
		t.query.Filters[columnID] = value
	}
	t.queryChanged()
}

// SetQuery replaces the free text and every filter at once.
func (t *TableView[T]) SetQuery(q Query) {
	next := Query{FreeText: q.FreeText, Filters: CompactFilters(q.Filters)}
	if next.Equal(t.query) {
		return
	}
	t.query = next
	t.queryChanged()
}

// ClearFilters removes every column filter.
func (t *TableView[T]) ClearFilters() {
	if len(t.query.Filters) == 0 {
		return
	}
	t.query.Filters = nil
	t.queryChanged()
}

func (t *TableView[T]) queryChanged() {
	t.pageIndex = 0
	t.recompute()
	if t.cb.OnQueryChange != nil {
		t.cb.OnQueryChange(t.Query())
	}
	t.firePage()
}

// Sort returns the current sort state.
func (t *TableView[T]) Sort() types.SortState { return t.sort }

// ToggleSort advances the sort cycle of columnID. Unknown columns are
// ignored.
func (t *TableView[T]) ToggleSort(columnID string) {
	if _, ok := columnByID(t.cols, columnID); !ok {
		return
	}
	t.SetSort(NextSort(t.sort, columnID))
}

// SetSort replaces the sort state and returns to the first page.
func (t *TableView[T]) SetSort(st types.SortState) {
	if st == t.sort {
		return
	}
	t.sort = st
	t.pageIndex = 0
	t.recompute()
	if t.cb.OnSortChange != nil {
		t.cb.OnSortChange(t.sort)
	}
	t.firePage()
}

// Page returns the current page window.
func (t *TableView[T]) Page() Page { return t.page }

// SetPageIndex moves to a zero-based page, clamped to the valid range.
func (t *TableView[T]) SetPageIndex(index int) {
	prev := t.page
	t.pageIndex = index
	t.recompute()
	if prev != t.page {
		t.firePage()
	}
}

// GoToPage moves to a one-based page number, clamped to [1, pages].
func (t *TableView[T]) GoToPage(n int) {
	t.SetPageIndex(ClampPageNumber(n, t.page.Count) - 1)
}

// NextPage moves forward one page if possible.
func (t *TableView[T]) NextPage() { t.SetPageIndex(t.page.Index + 1) }

// PrevPage moves back one page if possible.
func (t *TableView[T]) PrevPage() { t.SetPageIndex(t.page.Index - 1) }

// SetPageSize changes the page size and returns to the first page.
// Non-positive sizes are ignored.
func (t *TableView[T]) SetPageSize(size int) {
	if size <= 0 || size == t.pageSize {
		return
	}
	t.pageSize = size
	t.pageIndex = 0
	t.recompute()
	t.firePage()
}

// Matching returns every row passing the query, in sort order.
func (t *TableView[T]) Matching() []T { return slices.Clone(t.matching) }

// PageRows returns the rows of the current page.
func (t *TableView[T]) PageRows() []T {
	return slices.Clone(t.matching[t.page.Start:t.page.End])
}

// RowID returns the identifier of row.
func (t *TableView[T]) RowID(row T) RowID { return t.getRowID(row) }

// PageRowIDs returns the IDs of the current page.
func (t *TableView[T]) PageRowIDs() []RowID {
	return t.ids(t.matching[t.page.Start:t.page.End])
}

// MatchingRowIDs returns the IDs of every matching row.
func (t *TableView[T]) MatchingRowIDs() []RowID { return t.ids(t.matching) }

func (t *TableView[T]) ids(rows []T) []RowID {
	out := make([]RowID, len(rows))
	for i, r := range rows {
		out[i] = t.getRowID(r)
	}
	return out
}

// Selection exposes the selected IDs.
func (t *TableView[T]) Selection() *Selection { return t.selection }

// ToggleOne flips the selection of one row.
func (t *TableView[T]) ToggleOne(id RowID) { t.selection.ToggleOne(id) }

// ToggleAllOnPage selects or deselects the current page.
func (t *TableView[T]) ToggleAllOnPage() { t.selection.ToggleAllOnPage(t.PageRowIDs()) }

// SelectAllMatching adds every matching row to the selection.
func (t *TableView[T]) SelectAllMatching() { t.selection.SelectAll(t.MatchingRowIDs()) }

// ClearSelection deselects every row.
func (t *TableView[T]) ClearSelection() { t.selection.Clear() }

// AllOnPageSelected reports whether the page is non-empty and fully selected.
func (t *TableView[T]) AllOnPageSelected() bool {
	return t.selection.AllSelected(t.PageRowIDs())
}

// SomeOnPageSelected reports the indeterminate page checkbox state.
func (t *TableView[T]) SomeOnPageSelected() bool {
	return t.selection.SomeSelected(t.PageRowIDs())
}

// SelectedOnPageCount returns how many rows of the page are selected.
func (t *TableView[T]) SelectedOnPageCount() int {
	return t.selection.CountIn(t.PageRowIDs())
}

// AllMatchingSelected reports whether every matching row is selected.
func (t *TableView[T]) AllMatchingSelected() bool {
	return t.selection.AllSelected(t.MatchingRowIDs())
}

// Layout exposes the column layout.
func (t *TableView[T]) Layout() *Layout { return t.layout }

// SetVisible shows or hides one column.
func (t *TableView[T]) SetVisible(columnID string, visible bool) bool {
	return t.layout.SetVisible(columnID, visible)
}

// MoveColumn shifts a column within the order.
func (t *TableView[T]) MoveColumn(columnID string, delta int) bool {
	return t.layout.Move(columnID, delta)
}

// EffectiveColumns returns the columns to render, in order.
func (t *TableView[T]) EffectiveColumns() []Column[T] {
	byID := make(map[string]Column[T], len(t.cols))
	for _, c := range t.cols {
		byID[c.ID] = c
	}
	var out []Column[T]
	for _, id := range t.layout.Effective() {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// FilterValue returns the filter set on a column.
func (t *TableView[T]) FilterValue(columnID string) string { return t.query.Filters[columnID] }

// ActiveFilters returns a copy of the non-empty filters.
func (t *TableView[T]) ActiveFilters() map[string]string { return maps.Clone(t.query.Filters) }

func (t *TableView[T]) recompute() {
	t.matching = Sort(t.sorter, Filter(t.rows, t.cols, t.query), t.cols, t.sort)
	t.page = Window(len(t.matching), t.pageIndex, t.pageSize)
	t.pageIndex = t.page.Index
}

func (t *TableView[T]) firePage() {
	if t.cb.OnPageChange != nil {
		t.cb.OnPageChange(t.page)
	}
}
