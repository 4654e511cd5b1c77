package render

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Views prints saved views. The active view is marked with "*".
func Views(w io.Writer, vs []types.SavedView, activeID string, now time.Time) error {
	if len(vs) == 0 {
		_, err := fmt.Fprintln(w, "(no saved views)")
		return err
	}
	t := newList(w)
	t.AppendHeader(table.Row{"", "Name", "Scope", "Default", "Version", "Updated", "ID"})
	for _, v := range vs {
		active := ""
		if v.ID == activeID {
			active = "*"
		}
		t.AppendRow(table.Row{active, v.Name, v.Scope, yes(v.IsDefault), v.Version,
			humanize.RelTime(v.UpdatedAt, now, "ago", "from now"), v.ID})
	}
	t.Render()
	return nil
}

// Fields prints field definitions with their required flag.
func Fields(w io.Writer, defs []types.FieldDefinition, required []string) error {
	t := newList(w)
	t.AppendHeader(table.Row{"ID", "Label", "Type", "Kind", "Required", "Description"})
	for _, d := range defs {
		t.AppendRow(table.Row{d.ID, d.Label, d.DataType, d.Kind, yes(slices.Contains(required, d.ID)), d.Description})
	}
	t.Render()
	return nil
}

// Entity is one line of the entities listing.
type Entity struct {
	Key     types.EntityKey `json:"entity"`
	Records int             `json:"records"`
	Fields  int             `json:"fields"`
	Views   int             `json:"views"`
}

// Entities prints one line per entity directory.
func Entities(w io.Writer, es []Entity) error {
	t := newList(w)
	t.AppendHeader(table.Row{"Entity", "Records", "Fields", "Views"})
	for _, e := range es {
		t.AppendRow(table.Row{e.Key, humanize.Comma(int64(e.Records)), e.Fields, e.Views})
	}
	t.Render()
	return nil
}

// Value writes v as indented JSON.
func Value(w io.Writer, v any) error { return writeJSON(w, v) }

func newList(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	return t
}

func yes(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
