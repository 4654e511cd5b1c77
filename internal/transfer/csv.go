// Package transfer moves records in and out of CSV files.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/domonda/go-retable/csvtable"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// ErrNoHeader is returned for a file without a header row.
var ErrNoHeader = errors.New("csv has no header row")

// Parsed is the result of ParseCSV.
type Parsed struct {
	// Rows holds raw values keyed by field ID, ready for validation.
	Rows []map[string]any

	// Lines holds the one-based line number in the file of each entry of
	// Rows.
	Lines []int

	// Ignored lists header cells that match no field.
	Ignored []string

	Separator string
	Encoding  string
}

// ParseCSV reads CSV data whose separator and encoding are detected from
// the content. Header cells are matched to fields by ID or by label in any
// case. Values of user fields may name the owner by display name, email or
// numeric ID.
func ParseCSV(data []byte, defs []types.FieldDefinition, users []types.User) (*Parsed, error) {
	rows, format, err := csvtable.ParseDetectFormat(data, nil)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	rows, lines := dropBlankRows(rows)
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	out := &Parsed{Separator: format.Separator, Encoding: format.Encoding}
	header := make([]*types.FieldDefinition, len(rows[0]))
	for i, cell := range rows[0] {
		def := matchField(defs, cell)
		if def == nil {
			if name := strings.TrimSpace(cell); name != "" {
				out.Ignored = append(out.Ignored, name)
			}
			continue
		}
		header[i] = def
	}

	owners := ownerIndex(users)
	for n, row := range rows[1:] {
		values := make(map[string]any, len(header))
		for i, def := range header {
			if def == nil || i >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[i])
			if cell == "" {
				continue
			}
			if def.DataType == types.DataUser {
				values[def.ID] = resolveOwner(owners, cell)
				continue
			}
			values[def.ID] = cell
		}
		out.Rows = append(out.Rows, values)
		out.Lines = append(out.Lines, lines[n+1])
	}
	return out, nil
}

func matchField(defs []types.FieldDefinition, cell string) *types.FieldDefinition {
	cell = strings.TrimSpace(cell)
	for i := range defs {
		if defs[i].ID == cell {
			return &defs[i]
		}
	}
	for i := range defs {
		if strings.EqualFold(defs[i].Label, cell) {
			return &defs[i]
		}
	}
	return nil
}

func ownerIndex(users []types.User) map[string]int64 {
	idx := make(map[string]int64, len(users)*2)
	for _, u := range users {
		idx[strings.ToLower(u.DisplayName())] = u.ID
		if u.Email != "" {
			idx[strings.ToLower(u.Email)] = u.ID
		}
	}
	return idx
}

// resolveOwner returns the owner's ID, or the cell unchanged so that
// validation reports it.
func resolveOwner(owners map[string]int64, cell string) any {
	if id, ok := owners[strings.ToLower(cell)]; ok {
		return id
	}
	if id, err := strconv.ParseInt(strings.TrimPrefix(cell, "#"), 10, 64); err == nil {
		return id
	}
	return cell
}

// ResolveOwners replaces the values of user fields in raw that name an
// owner by display name, email or "#ID" with the owner's numeric ID.
func ResolveOwners(raw map[string]any, defs []types.FieldDefinition, users []types.User) {
	owners := ownerIndex(users)
	for _, d := range defs {
		if d.DataType != types.DataUser {
			continue
		}
		if cell, ok := raw[d.ID].(string); ok && strings.TrimSpace(cell) != "" {
			raw[d.ID] = resolveOwner(owners, strings.TrimSpace(cell))
		}
	}
}

// dropBlankRows removes rows without content and returns the line number
// of each kept row. csvtable keeps one entry per input line, blank or
// joined into a multi-line cell, so the index is the line.
func dropBlankRows(rows [][]string) ([][]string, []int) {
	out := rows[:0]
	var lines []int
	for i, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				lines = append(lines, i+1)
				break
			}
		}
	}
	return out, lines
}

// WriteCSV writes rows as CSV with one column per entry of cols, using
// the header text and display value of each column.
func WriteCSV[T any](w io.Writer, cols []tableview.Column[T], rows []T) error {
	t := table.NewWriter()
	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}
	t.AppendHeader(header)
	for _, r := range rows {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = tableview.Stringify(c.Value(r))
		}
		t.AppendRow(row)
	}
	if _, err := io.WriteString(w, t.RenderCSV()+"\n"); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
