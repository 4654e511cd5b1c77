// Package directory assembles one entity directory: its field schema,
// records and owners, the table that pages through them and the view
// session that tracks saved views.
package directory

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Column widths per data type, in characters.
const (
	widthText   = 18
	widthEmail  = 28
	widthNumber = 10
	widthUser   = 16
)

// Columns builds the table columns of defs. User fields show the owner's
// display name and filter by a select of every owner.
func Columns(defs []types.FieldDefinition, users []types.User) []tableview.Column[types.Record] {
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}

	cols := make([]tableview.Column[types.Record], 0, len(defs))
	for _, d := range defs {
		id := d.ID
		col := tableview.Column[types.Record]{
			ID:       id,
			Header:   d.Label,
			Accessor: func(r types.Record) any { return r.Values[id] },
			Filter:   tableview.TextFilter{},
		}
		switch d.DataType {
		case types.DataText:
			col.Width = widthText
		case types.DataEmail:
			col.Width = widthEmail
		case types.DataNumber:
			col.Width = widthNumber
		case types.DataUser:
			col.Width = widthUser
			col.Accessor = func(r types.Record) any {
				uid, ok := userID(r.Values[id])
				if !ok {
					return nil
				}
				if name, ok := names[uid]; ok {
					return name
				}
				return "#" + strconv.FormatInt(uid, 10)
			}
			col.Filter = ownerFilter(users)
		}
		cols = append(cols, col)
	}
	return cols
}

func ownerFilter(users []types.User) tableview.SelectFilter {
	opts := make([]tableview.Option, 0, len(users))
	for _, u := range users {
		name := u.DisplayName()
		opts = append(opts, tableview.Option{Value: name, Label: name})
	}
	slices.SortFunc(opts, func(a, b tableview.Option) int { return cmp.Compare(a.Label, b.Label) })
	return tableview.SelectFilter{Options: opts}
}

func userID(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, x > 0
	case int:
		return int64(x), x > 0
	case float64:
		return int64(x), x > 0 && x == float64(int64(x))
	}
	return 0, false
}

// RowID identifies a record in the table.
func RowID(r types.Record) tableview.RowID {
	return strconv.FormatInt(r.ID, 10)
}
