package tableview

// RowID identifies a row across pages, filters and sorts.
type RowID = string

// FilterKind is the closed set of per-column filter controls.
type FilterKind interface {
	filterKind()
}

// TextFilter is a free-form substring filter.
type TextFilter struct{}

// SelectFilter restricts a column to one of a fixed set of values.
type SelectFilter struct {
	Options []Option
}

// Option is one choice of a SelectFilter.
type Option struct {
	Value string
	Label string
}

func (TextFilter) filterKind()   {}
func (SelectFilter) filterKind() {}

// Column describes how a table reads, sorts and filters one field of T.
type Column[T any] struct {
	ID     string
	Header string

	// Accessor returns the cell value shown to the user.
	Accessor func(T) any

	// SortAccessor, when set, replaces Accessor for sorting and matching.
	SortAccessor func(T) any

	// Filter is nil when the column has no filter control.
	Filter FilterKind
	Width  int
}

// Key returns the value used to sort and match the column.
func (c Column[T]) Key(row T) any {
	if c.SortAccessor != nil {
		return c.SortAccessor(row)
	}
	if c.Accessor != nil {
		return c.Accessor(row)
	}
	return nil
}

// Value returns the display value of the column.
func (c Column[T]) Value(row T) any {
	if c.Accessor == nil {
		return nil
	}
	return c.Accessor(row)
}

// ColumnIDs returns the IDs of cols in schema order.
func ColumnIDs[T any](cols []Column[T]) []string {
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	return ids
}

func columnByID[T any](cols []Column[T], id string) (Column[T], bool) {
	for _, c := range cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}
