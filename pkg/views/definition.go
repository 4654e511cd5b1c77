package views

import (
	"slices"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Definition is a view definition with every default filled in, suitable
// for structural comparison.
type Definition struct {
	FreeText       string
	Filters        map[string]string
	Sort           types.SortState
	VisibleColumns []string
	ColumnOrder    []string
}

// Normalize fills the absent parts of d from the neutral state: no query,
// no sort and every column in schema order. Empty filter values are
// dropped and the columns are laid out exactly as a table built from d
// would lay them out.
func Normalize(d types.ViewDefinition, columnIDs []string) Definition {
	out := Definition{
		FreeText: d.FreeText,
		Filters:  tableview.CompactFilters(d.Filters),
	}
	if d.Sort != nil {
		out.Sort = *d.Sort
	}
	l := tableview.NewLayout(columnIDs, d.VisibleColumns, d.ColumnOrder)
	out.VisibleColumns = l.Visible()
	out.ColumnOrder = l.Order()
	return out
}

// reconcile adapts the column layout of d from schema prev to next. New
// columns become visible.
func (d *Definition) reconcile(prev, next []string) {
	l := tableview.NewLayout(prev, d.VisibleColumns, d.ColumnOrder)
	l.Reconcile(next)
	d.VisibleColumns = l.Visible()
	d.ColumnOrder = l.Order()
}

// Neutral returns the Default view baseline for columnIDs.
func Neutral(columnIDs []string) Definition {
	return Normalize(types.ViewDefinition{}, columnIDs)
}

// Equal compares free text, filters key by key, sort, and the visible
// columns and column order element by element.
func (d Definition) Equal(o Definition) bool {
	return d.FreeText == o.FreeText &&
		d.Sort == o.Sort &&
		tableview.FiltersEqual(d.Filters, o.Filters) &&
		slices.Equal(d.VisibleColumns, o.VisibleColumns) &&
		slices.Equal(d.ColumnOrder, o.ColumnOrder)
}

// ViewDefinition converts d back to its serializable form.
func (d Definition) ViewDefinition() types.ViewDefinition {
	out := types.ViewDefinition{
		FreeText:       d.FreeText,
		Filters:        tableview.CompactFilters(d.Filters),
		VisibleColumns: slices.Clone(d.VisibleColumns),
		ColumnOrder:    slices.Clone(d.ColumnOrder),
	}
	if !d.Sort.IsZero() {
		s := d.Sort
		out.Sort = &s
	}
	return out
}
