// Package render prints directory pages, saved views and field lists as
// terminal tables or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Selection markers.
const (
	markSelected = "[x]"
	markClear    = "[ ]"
	markSome     = "[-]"
)

// Status describes the view state printed under a page.
type Status struct {
	ViewName     string
	Dirty        bool
	HeaderLayout types.HeaderLayout
}

// Page prints the current page of tv with a selection column, sort
// indicators and, for the split header layout, a row of active filters.
func Page[T any](w io.Writer, tv *tableview.TableView[T], st Status) error {
	cols := tv.EffectiveColumns()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	header := table.Row{pageMarker(tv)}
	for _, c := range cols {
		header = append(header, c.Header+sortIndicator(tv.Sort(), c.ID))
	}
	t.AppendHeader(header)

	if st.HeaderLayout == types.HeaderSplit {
		filters := table.Row{""}
		for _, c := range cols {
			filters = append(filters, filterCell(tv.FilterValue(c.ID)))
		}
		t.AppendHeader(filters)
	}

	sel := tv.Selection()
	rows := tv.PageRows()
	for _, r := range rows {
		mark := markClear
		if sel.Has(tv.RowID(r)) {
			mark = markSelected
		}
		row := table.Row{mark}
		for _, c := range cols {
			row = append(row, tableview.Stringify(c.Value(r)))
		}
		t.AppendRow(row)
	}
	if len(rows) == 0 {
		t.AppendRow(table.Row{"", "(no matching records)"})
	}

	cfg := make([]table.ColumnConfig, 0, len(cols)+1)
	cfg = append(cfg, table.ColumnConfig{Number: 1, WidthMax: len(markSelected)})
	for i, c := range cols {
		if c.Width > 0 {
			cfg = append(cfg, table.ColumnConfig{Number: i + 2, WidthMax: c.Width})
		}
	}
	t.SetColumnConfigs(cfg)

	t.Render()
	_, err := fmt.Fprintln(w, Summary(tv, st))
	return err
}

func pageMarker[T any](tv *tableview.TableView[T]) string {
	switch {
	case len(tv.PageRowIDs()) > 0 && tv.AllOnPageSelected():
		return markSelected
	case tv.SomeOnPageSelected():
		return markSome
	}
	return markClear
}

func sortIndicator(st types.SortState, id string) string {
	if st.ColumnID != id {
		return ""
	}
	if st.Direction == types.SortDesc {
		return " ▼"
	}
	return " ▲"
}

func filterCell(v string) string {
	if v == "" {
		return "·"
	}
	return "~" + v
}

// Summary returns the one-line status shown under a page, for example
// "21 to 25 of 1,234 · page 5 of 247 · 3 selected · view: Hot leads *".
func Summary[T any](tv *tableview.TableView[T], st Status) string {
	p := tv.Page()
	var parts []string
	if p.Total == 0 {
		parts = append(parts, "no records")
	} else {
		parts = append(parts, fmt.Sprintf("%s to %s of %s",
			humanize.Comma(int64(p.Start+1)), humanize.Comma(int64(p.End)), humanize.Comma(int64(p.Total))))
	}
	parts = append(parts, fmt.Sprintf("page %d of %d", p.Number(), p.Count))

	if n := tv.Selection().Len(); n > 0 {
		if tv.AllMatchingSelected() {
			parts = append(parts, fmt.Sprintf("all %s matching selected", humanize.Comma(int64(p.Total))))
		} else {
			parts = append(parts, humanize.Comma(int64(n))+" selected")
		}
	}

	name := st.ViewName
	if name == "" {
		name = "Default"
	}
	view := "view: " + name
	if st.Dirty {
		view += " *"
	}
	parts = append(parts, view)
	return strings.Join(parts, " · ")
}

// PageJSON is the JSON form of a page.
type PageJSON struct {
	View     string               `json:"view"`
	Dirty    bool                 `json:"dirty"`
	Query    types.ViewDefinition `json:"query"`
	Page     int                  `json:"page"`
	Pages    int                  `json:"pages"`
	PageSize int                  `json:"pageSize"`
	Total    int                  `json:"total"`
	Columns  []string             `json:"columns"`
	Selected []tableview.RowID    `json:"selected"`
	Rows     []map[string]any     `json:"rows"`
}

// JSON writes the current page of tv as indented JSON. Each row carries
// its ID under "id" and the display value of every effective column.
func JSON[T any](w io.Writer, tv *tableview.TableView[T], st Status) error {
	cols := tv.EffectiveColumns()
	p := tv.Page()
	q := tv.Query()
	out := PageJSON{
		View:     st.ViewName,
		Dirty:    st.Dirty,
		Query:    types.ViewDefinition{FreeText: q.FreeText, Filters: q.Filters},
		Page:     p.Number(),
		Pages:    p.Count,
		PageSize: p.Size,
		Total:    p.Total,
		Columns:  tableview.ColumnIDs(cols),
		Selected: tv.Selection().IDs(),
		Rows:     []map[string]any{},
	}
	if s := tv.Sort(); !s.IsZero() {
		out.Query.Sort = &s
	}
	for _, r := range tv.PageRows() {
		row := map[string]any{"id": tv.RowID(r)}
		for _, c := range cols {
			row[c.ID] = c.Value(r)
		}
		out.Rows = append(out.Rows, row)
	}
	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
