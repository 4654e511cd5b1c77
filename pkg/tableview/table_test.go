package tableview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

type recorder struct {
	queries   []Query
	sorts     []types.SortState
	selection [][]RowID
	visible   [][]string
	order     [][]string
	pages     []Page
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnQueryChange:          func(q Query) { r.queries = append(r.queries, q) },
		OnSortChange:           func(s types.SortState) { r.sorts = append(r.sorts, s) },
		OnSelectionChange:      func(ids []RowID) { r.selection = append(r.selection, ids) },
		OnVisibleColumnsChange: func(v []string) { r.visible = append(r.visible, v) },
		OnColumnOrderChange:    func(o []string) { r.order = append(r.order, o) },
		OnPageChange:           func(p Page) { r.pages = append(r.pages, p) },
	}
}

func newPeopleTable(t *testing.T, rows []person, st State) (*TableView[person], *recorder) {
	t.Helper()
	rec := &recorder{}
	tv := New(Options[person]{
		Columns:   personColumns(),
		Rows:      rows,
		GetRowID:  personID,
		Locale:    language.English,
		Initial:   st,
		Callbacks: rec.callbacks(),
	})
	return tv, rec
}

func TestTableViewPagination(t *testing.T) {
	tv, _ := newPeopleTable(t, people(25), State{})

	p := tv.Page()
	assert.Equal(t, 2, p.Count)
	assert.Len(t, tv.PageRows(), 20)

	tv.NextPage()
	p = tv.Page()
	assert.Equal(t, 1, p.Index)
	assert.Equal(t, 20, p.Start)
	assert.Equal(t, 25, p.End)
	assert.Len(t, tv.PageRows(), 5)

	tv.GoToPage(99)
	assert.Equal(t, 1, tv.Page().Index)
	tv.GoToPage(-4)
	assert.Equal(t, 0, tv.Page().Index)
}

func TestTableViewQueryAndSortResetPage(t *testing.T) {
	tv, rec := newPeopleTable(t, people(45), State{})

	tv.SetPageIndex(2)
	require.Equal(t, 2, tv.Page().Index)
	tv.SetFreeText("person")
	assert.Equal(t, 0, tv.Page().Index)

	tv.SetPageIndex(1)
	tv.ToggleSort("name")
	assert.Equal(t, 0, tv.Page().Index)

	tv.SetPageIndex(1)
	tv.SetPageSize(10)
	assert.Equal(t, 0, tv.Page().Index)
	assert.Equal(t, 5, tv.Page().Count)

	require.Len(t, rec.queries, 1)
	assert.Equal(t, "person", rec.queries[0].FreeText)
	require.Len(t, rec.sorts, 1)
	assert.Equal(t, types.SortAsc, rec.sorts[0].Direction)
}

func TestTableViewSetFilter(t *testing.T) {
	rows := []person{
		{ID: 1, Name: "Alice", Company: "Acme"},
		{ID: 2, Name: "Bob", Company: "Globex"},
	}
	tv, rec := newPeopleTable(t, rows, State{})

	tv.SetFilter("company", "glo")
	assert.Equal(t, []int{2}, ids(tv.Matching()))
	assert.Equal(t, map[string]string{"company": "glo"}, tv.ActiveFilters())

	tv.SetFilter("company", "")
	assert.Equal(t, []int{1, 2}, ids(tv.Matching()))
	assert.Empty(t, tv.ActiveFilters(), "empty value removes the key")

	tv.SetFilter("phone", "555")
	assert.Empty(t, tv.ActiveFilters(), "unknown column ignored")
	assert.Len(t, rec.queries, 2)
}

func TestTableViewToggleSortUnknownColumn(t *testing.T) {
	tv, rec := newPeopleTable(t, people(3), State{})
	tv.ToggleSort("phone")
	assert.True(t, tv.Sort().IsZero())
	assert.Empty(t, rec.sorts)
}

func TestTableViewSelectionSurvivesPagingAndFiltering(t *testing.T) {
	tv, rec := newPeopleTable(t, people(25), State{})

	tv.ToggleOne("5")
	tv.NextPage()
	assert.False(t, tv.Selection().Has("21"))
	tv.PrevPage()
	assert.True(t, tv.Selection().Has("5"))
	assert.Equal(t, 1, tv.SelectedOnPageCount())
	assert.True(t, tv.SomeOnPageSelected())

	tv.SetFreeText("person 1")
	assert.NotContains(t, tv.MatchingRowIDs(), "5")
	tv.SetFreeText("")
	assert.True(t, tv.Selection().Has("5"))
	assert.NotEmpty(t, rec.selection)
}

func TestTableViewSelectAllMatching(t *testing.T) {
	tv, _ := newPeopleTable(t, people(25), State{})

	tv.SetFreeText("person 1")
	tv.SelectAllMatching()
	assert.True(t, tv.AllMatchingSelected())
	assert.Equal(t, 10, tv.Selection().Len())

	tv.SetFreeText("person 2")
	assert.False(t, tv.AllMatchingSelected())
	tv.SelectAllMatching()
	assert.Equal(t, 16, tv.Selection().Len(), "earlier ids are never pruned")
}

func TestTableViewToggleAllOnPage(t *testing.T) {
	tv, _ := newPeopleTable(t, people(25), State{})

	tv.ToggleAllOnPage()
	assert.True(t, tv.AllOnPageSelected())
	assert.Equal(t, 20, tv.Selection().Len())

	tv.ToggleAllOnPage()
	assert.Zero(t, tv.Selection().Len())
}

func TestTableViewAllMatchingSelectedEmpty(t *testing.T) {
	tv, _ := newPeopleTable(t, nil, State{})
	tv.SelectAllMatching()
	assert.False(t, tv.AllMatchingSelected())
	assert.False(t, tv.AllOnPageSelected())
}

func TestTableViewSetColumnsReconciles(t *testing.T) {
	tv, rec := newPeopleTable(t, people(3), State{})

	cols := personColumns()
	cols = append(cols[:1], Column[person]{ID: "email", Accessor: func(person) any { return "" }})
	tv.SetColumns(cols)

	var got []string
	for _, c := range tv.EffectiveColumns() {
		got = append(got, c.ID)
	}
	assert.Equal(t, []string{"name", "email"}, got)
	assert.Equal(t, []string{"name", "email"}, tv.Layout().Order())
	assert.NotEmpty(t, rec.order)
}

func TestTableViewKnownColumnIDsMarksNewColumns(t *testing.T) {
	tv := New(Options[person]{
		Columns:        personColumns(),
		GetRowID:       personID,
		KnownColumnIDs: []string{"name", "company"},
		Initial:        State{VisibleColumns: []string{"name"}},
	})
	assert.Equal(t, []string{"name", "age"}, tv.Layout().Effective())
}

func TestTableViewReset(t *testing.T) {
	tv, rec := newPeopleTable(t, people(45), State{})
	tv.ToggleOne("1")
	tv.SetPageIndex(2)

	tv.Reset(7, State{
		Query:          Query{FreeText: "person"},
		Sort:           types.SortState{ColumnID: "name", Direction: types.SortDesc},
		VisibleColumns: []string{"company"},
		ColumnOrder:    []string{"company", "name", "age"},
	})

	assert.Equal(t, uint64(7), tv.Revision())
	assert.Equal(t, 0, tv.Page().Index)
	assert.Zero(t, tv.Selection().Len())
	assert.Equal(t, "person", tv.Query().FreeText)
	assert.Equal(t, []string{"company"}, tv.Layout().Effective())
	assert.Equal(t, 45, ids(tv.Matching())[0])

	require.NotEmpty(t, rec.visible)
	assert.Equal(t, []string{"company"}, rec.visible[len(rec.visible)-1])
	assert.Equal(t, []string{"company", "name", "age"}, rec.order[len(rec.order)-1])
}

func TestTableViewStateRoundTrip(t *testing.T) {
	st := State{
		Query:          Query{FreeText: "x", Filters: map[string]string{"company": "acme"}},
		Sort:           types.SortState{ColumnID: "age", Direction: types.SortAsc},
		VisibleColumns: []string{"name", "age"},
		ColumnOrder:    []string{"age", "name", "company"},
		PageSize:       10,
		Selected:       []RowID{"2", "3"},
	}
	tv, _ := newPeopleTable(t, people(5), st)

	got := tv.State()
	assert.Equal(t, st, got)
}

func TestTableViewSetRowsClampsPage(t *testing.T) {
	tv, rec := newPeopleTable(t, people(45), State{})
	tv.SetPageIndex(2)
	tv.SetRows(people(10))
	assert.Equal(t, 0, tv.Page().Index)
	assert.Equal(t, 0, rec.pages[len(rec.pages)-1].Index)
}
