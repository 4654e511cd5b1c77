package tableview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	rows := []person{
		{ID: 1, Name: "Alice", Company: "Acme"},
		{ID: 2, Name: "Bob", Company: "Globex"},
		{ID: 3, Name: "alice2", Company: "Initech"},
	}
	cols := personColumns()

	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{name: "zero query keeps every row", query: Query{}, want: []int{1, 2, 3}},
		{name: "free text is case-insensitive", query: Query{FreeText: "ali"}, want: []int{1, 3}},
		{name: "free text is trimmed", query: Query{FreeText: "  BOB "}, want: []int{2}},
		{name: "free text spans columns", query: Query{FreeText: "globex"}, want: []int{2}},
		{name: "whitespace-only free text matches all", query: Query{FreeText: "   "}, want: []int{1, 2, 3}},
		{
			name:  "column filter applies to that column only",
			query: Query{Filters: map[string]string{"company": "ac"}},
			want:  []int{1},
		},
		{
			name:  "free text and filters combine with AND",
			query: Query{FreeText: "ali", Filters: map[string]string{"company": "INI"}},
			want:  []int{3},
		},
		{
			name:  "empty filter imposes no constraint",
			query: Query{Filters: map[string]string{"company": ""}},
			want:  []int{1, 2, 3},
		},
		{
			name:  "unknown column filter is ignored",
			query: Query{Filters: map[string]string{"phone": "555"}},
			want:  []int{1, 2, 3},
		},
		{name: "no match", query: Query{FreeText: "zzz"}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(rows, cols, tt.query)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterUsesSortAccessor(t *testing.T) {
	cols := []Column[person]{{
		ID:           "owner",
		Accessor:     func(p person) any { return p.Company },
		SortAccessor: func(p person) any { return "owner:" + p.Name },
	}}
	rows := []person{{ID: 1, Name: "Ann", Company: "Acme"}}

	assert.Len(t, Filter(rows, cols, Query{FreeText: "owner:ann"}), 1)
	assert.Empty(t, Filter(rows, cols, Query{FreeText: "acme"}))
}

func TestFilterNilValuesMatchEmpty(t *testing.T) {
	cols := []Column[person]{{ID: "x", Accessor: func(person) any { return nil }}}
	rows := []person{{ID: 1}}

	assert.Empty(t, Filter(rows, cols, Query{FreeText: "nil"}))
	assert.Empty(t, Filter(rows, cols, Query{Filters: map[string]string{"x": "<nil>"}}))
}

func TestFilterIdempotent(t *testing.T) {
	rows := people(30)
	cols := personColumns()
	q := Query{FreeText: "1", Filters: map[string]string{"company": "acme"}}

	once := Filter(rows, cols, q)
	twice := Filter(once, cols, q)
	assert.Equal(t, ids(once), ids(twice))
}

func TestFilterEmptyRows(t *testing.T) {
	got := Filter(nil, personColumns(), Query{FreeText: "a"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	rows := people(3)
	_ = Filter(rows, personColumns(), Query{FreeText: "02"})
	assert.Equal(t, []int{1, 2, 3}, ids(rows))
}

func TestFiltersEqual(t *testing.T) {
	assert.True(t, FiltersEqual(nil, map[string]string{}))
	assert.True(t, FiltersEqual(map[string]string{"a": ""}, nil))
	assert.True(t, FiltersEqual(map[string]string{"a": "x"}, map[string]string{"a": "x", "b": ""}))
	assert.False(t, FiltersEqual(map[string]string{"a": "x"}, map[string]string{"a": "y"}))
	assert.False(t, FiltersEqual(map[string]string{"a": "x"}, map[string]string{"b": "x"}))
}
