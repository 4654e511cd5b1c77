package tableview

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// NextSort advances the sort of columnID through none, asc, desc and back
// to none. A different column always starts ascending.
func NextSort(cur types.SortState, columnID string) types.SortState {
	if cur.ColumnID != columnID {
		return types.SortState{ColumnID: columnID, Direction: types.SortAsc}
	}
	switch cur.Direction {
	case types.SortAsc:
		return types.SortState{ColumnID: columnID, Direction: types.SortDesc}
	case types.SortDesc:
		return types.SortState{}
	}
	return types.SortState{ColumnID: columnID, Direction: types.SortAsc}
}

// Sorter orders rows by a column's stringified key using a locale collator.
// Numbers compare as text unless the column's SortAccessor pads them.
type Sorter struct {
	collator *collate.Collator
}

// NewSorter returns a Sorter for the given locale. An undetermined tag
// falls back to the root collation order.
func NewSorter(tag language.Tag) *Sorter {
	return &Sorter{collator: collate.New(tag)}
}

// Sort returns a stably sorted copy of rows. A zero sort state or an unknown
// column returns the rows in input order.
func Sort[T any](s *Sorter, rows []T, cols []Column[T], st types.SortState) []T {
	out := append([]T(nil), rows...)
	if st.IsZero() {
		return out
	}
	col, ok := columnByID(cols, st.ColumnID)
	if !ok {
		return out
	}

	type keyed struct {
		key string
		row T
	}
	ks := make([]keyed, len(out))
	for i, row := range out {
		ks[i] = keyed{key: Stringify(col.Key(row)), row: row}
	}
	desc := st.Direction == types.SortDesc
	slices.SortStableFunc(ks, func(a, b keyed) int {
		if desc {
			return s.collator.CompareString(b.key, a.key)
		}
		return s.collator.CompareString(a.key, b.key)
	})
	for i := range ks {
		out[i] = ks[i].row
	}
	return out
}
