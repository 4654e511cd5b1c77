package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/rolodex/internal/render"
	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const defaultWidth = 14

func (m Model) View() string {
	tv := m.dir.Table()
	s := m.dir.Session()
	cols := tv.EffectiveColumns()

	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(string(m.dir.Entity()))))
	b.WriteString(dimStyle.Render("  " + viewLabel(s.Active(), s.IsDirty())))
	b.WriteString("\n\n")

	header := []string{markFor(tv.AllOnPageSelected() && len(tv.PageRowIDs()) > 0, tv.SomeOnPageSelected())}
	for i, c := range cols {
		text := cell(c.Header+sortArrow(tv.Sort(), c.ID), width(c))
		if i == m.colCursor {
			header = append(header, activeColStyle.Render(text))
			continue
		}
		header = append(header, headerStyle.Render(text))
	}
	b.WriteString(strings.Join(header, " ") + "\n")

	if s.HeaderLayout() == types.HeaderSplit {
		row := []string{"   "}
		for _, c := range cols {
			row = append(row, filterStyle.Render(cell(tv.FilterValue(c.ID), width(c))))
		}
		b.WriteString(strings.Join(row, " ") + "\n")
	}

	sel := tv.Selection()
	rows := tv.PageRows()
	for i, r := range rows {
		selected := sel.Has(tv.RowID(r))
		parts := []string{markFor(selected, false)}
		for _, c := range cols {
			parts = append(parts, cell(tableview.Stringify(c.Value(r)), width(c)))
		}
		line := strings.Join(parts, " ")
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case selected:
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  no matching records") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render(render.Summary(tv, render.Status{
		ViewName: viewName(s.Active()),
		Dirty:    s.IsDirty(),
	})) + "\n")

	if m.mode != modeNormal {
		b.WriteString(m.input.View() + "\n")
	} else if m.status != "" {
		style := infoStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(keys))

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func viewName(v *types.SavedView) string {
	if v == nil {
		return ""
	}
	return v.Name
}

func viewLabel(v *types.SavedView, dirty bool) string {
	name := "Default"
	if v != nil {
		name = v.Name
	}
	if dirty {
		name += " (unsaved changes)"
	}
	return name
}

func markFor(all, some bool) string {
	switch {
	case all:
		return "[x]"
	case some:
		return "[-]"
	}
	return "[ ]"
}

func sortArrow(st types.SortState, id string) string {
	if st.ColumnID != id {
		return ""
	}
	if st.Direction == types.SortDesc {
		return " ▼"
	}
	return " ▲"
}

func width[T any](c tableview.Column[T]) int {
	if c.Width > 0 {
		return c.Width
	}
	return defaultWidth
}

// cell fits s into exactly w display columns.
func cell(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) > w {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r))+1 > w {
			r = r[:len(r)-1]
		}
		s = string(r) + "…"
	}
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}
