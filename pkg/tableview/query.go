package tableview

import (
	"maps"
	"strings"
)

// Query is the free-text search plus the per-column filters.
type Query struct {
	FreeText string
	Filters  map[string]string
}

// IsZero reports whether the query matches every row.
func (q Query) IsZero() bool {
	if q.FreeText != "" {
		return false
	}
	for _, v := range q.Filters {
		if v != "" {
			return false
		}
	}
	return true
}

// Clone returns a copy of q that shares no map with it.
func (q Query) Clone() Query {
	return Query{FreeText: q.FreeText, Filters: maps.Clone(q.Filters)}
}

// Equal compares free text and filters key by key. Empty filter values
// count as absent.
func (q Query) Equal(o Query) bool {
	return q.FreeText == o.FreeText && FiltersEqual(q.Filters, o.Filters)
}

// FiltersEqual compares two filter maps ignoring empty values.
func FiltersEqual(a, b map[string]string) bool {
	a, b = CompactFilters(a), CompactFilters(b)
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// CompactFilters returns filters without its empty values. The result is
// nil when nothing remains.
func CompactFilters(filters map[string]string) map[string]string {
	var out map[string]string
	for k, v := range filters {
		if v == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string, len(filters))
		}
		out[k] = v
	}
	return out
}

// Filter returns the rows that contain the free text somewhere in their
// columns and satisfy every non-empty column filter. Matching is a
// case-insensitive substring test on Stringify(Column.Key(row)). Filters on
// columns that do not exist are ignored. The input is not modified.
func Filter[T any](rows []T, cols []Column[T], q Query) []T {
	if len(rows) == 0 {
		return []T{}
	}
	if q.IsZero() {
		return append([]T(nil), rows...)
	}

	needle := strings.ToLower(strings.TrimSpace(q.FreeText))
	type colFilter struct {
		col    Column[T]
		needle string
	}
	var active []colFilter
	for _, c := range cols {
		if f := q.Filters[c.ID]; f != "" {
			active = append(active, colFilter{col: c, needle: strings.ToLower(f)})
		}
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if needle != "" && !strings.Contains(haystack(row, cols), needle) {
			continue
		}
		ok := true
		for _, f := range active {
			if !strings.Contains(strings.ToLower(Stringify(f.col.Key(row))), f.needle) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, row)
		}
	}
	return out
}

func haystack[T any](row T, cols []Column[T]) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Stringify(c.Key(row)))
	}
	return strings.ToLower(b.String())
}
