// Package tui is the interactive directory browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/rolodex/internal/directory"
	"github.com/mesh-intelligence/rolodex/pkg/tableview"
	"github.com/mesh-intelligence/rolodex/pkg/types"
	"github.com/mesh-intelligence/rolodex/pkg/views"
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilter
	modeGoTo
	modeSaveName
)

// ReloadMsg asks the browser to reload fields and records from the store.
type ReloadMsg struct{}

// Model is the bubbletea model of one entity directory.
type Model struct {
	ctx    context.Context
	dir    *directory.Directory
	logger *slog.Logger

	cursor    int // row on the current page
	colCursor int // index into the effective columns
	mode      mode
	input     textinput.Model
	undo      string // query value restored when an edit is cancelled
	filterCol string

	status    string
	statusErr bool
	help      help.Model
	width     int
	height    int

	saveErr error
}

// New returns a browser over dir. ctx bounds every store call made while
// browsing.
func New(ctx context.Context, dir *directory.Directory, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 40
	return Model{ctx: ctx, dir: dir, logger: logger, input: ti, help: help.New()}
}

// Err returns the error of the workspace save made on quit, if any.
func (m Model) Err() error { return m.saveErr }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ReloadMsg:
		if err := m.dir.Refresh(m.ctx); err != nil {
			m.setError(err)
		}
		m.clampCursors()
		return m, nil

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tv := m.dir.Table()
	m.status = ""

	switch {
	case key.Matches(msg, keys.Quit):
		if err := m.dir.Save(m.ctx); err != nil {
			m.logger.Error("save workspace", "entity", m.dir.Entity(), "error", err)
			m.saveErr = err
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, keys.Down):
		m.cursor = min(m.cursor+1, max(len(tv.PageRowIDs())-1, 0))
	case key.Matches(msg, keys.Left):
		m.colCursor = max(m.colCursor-1, 0)
	case key.Matches(msg, keys.Right):
		m.colCursor = min(m.colCursor+1, max(len(tv.EffectiveColumns())-1, 0))

	case key.Matches(msg, keys.PrevPage):
		tv.PrevPage()
		m.cursor = 0
	case key.Matches(msg, keys.NextPage):
		tv.NextPage()
		m.cursor = 0

	case key.Matches(msg, keys.Search):
		m.undo = tv.Query().FreeText
		return m.prompt(modeSearch, "search", m.undo)
	case key.Matches(msg, keys.Filter):
		col, ok := m.currentColumn()
		if !ok {
			break
		}
		m.filterCol = col.ID
		m.undo = tv.FilterValue(col.ID)
		return m.prompt(modeFilter, "filter "+col.Header, m.undo)
	case key.Matches(msg, keys.GoToPage):
		return m.prompt(modeGoTo, "page", "")
	case key.Matches(msg, keys.SaveView):
		return m.prompt(modeSaveName, "view name", "")

	case key.Matches(msg, keys.Sort):
		if col, ok := m.currentColumn(); ok {
			tv.ToggleSort(col.ID)
			m.cursor = 0
		}

	case key.Matches(msg, keys.ToggleRow):
		ids := tv.PageRowIDs()
		if m.cursor < len(ids) {
			tv.ToggleOne(ids[m.cursor])
		}
	case key.Matches(msg, keys.TogglePage):
		tv.ToggleAllOnPage()
	case key.Matches(msg, keys.SelectAll):
		tv.SelectAllMatching()
		m.setInfo(fmt.Sprintf("selected all %d matching", tv.Page().Total))
	case key.Matches(msg, keys.Clear):
		tv.ClearSelection()

	case key.Matches(msg, keys.HideColumn):
		if col, ok := m.currentColumn(); ok && !tv.SetVisible(col.ID, false) {
			m.setError(types.ErrNoVisibleColumns)
		}
	case key.Matches(msg, keys.MoveLeft):
		if col, ok := m.currentColumn(); ok && tv.MoveColumn(col.ID, -1) {
			m.colCursor--
		}
	case key.Matches(msg, keys.MoveRight):
		if col, ok := m.currentColumn(); ok && tv.MoveColumn(col.ID, 1) {
			m.colCursor++
		}

	case key.Matches(msg, keys.CycleView):
		m.cycleView()
	case key.Matches(msg, keys.DefaultView):
		m.dir.Session().ReturnToDefault(m.ctx)
		m.cursor = 0
	case key.Matches(msg, keys.Reset):
		m.dir.Session().ResetToDefault(m.ctx)
		m.cursor = 0
	case key.Matches(msg, keys.UpdateView):
		v, err := m.dir.Session().UpdateActive(m.ctx)
		if err != nil {
			m.setError(err)
			break
		}
		m.setInfo(fmt.Sprintf("updated %q", v.Name))
	}

	m.clampCursors()
	return m, nil
}

func (m Model) prompt(md mode, label, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Prompt = label + ": "
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tv := m.dir.Table()
	switch msg.Type {
	case tea.KeyEsc:
		switch m.mode {
		case modeSearch:
			tv.SetFreeText(m.undo)
		case modeFilter:
			tv.SetFilter(m.filterCol, m.undo)
		}
		return m.endInput(), nil

	case tea.KeyEnter:
		value := m.input.Value()
		switch m.mode {
		case modeGoTo:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				m.setError(fmt.Errorf("not a page number: %q", value))
				break
			}
			tv.GoToPage(n)
		case modeSaveName:
			v, err := m.dir.Session().SaveAsNew(m.ctx, value, types.ScopePersonal, false)
			if err != nil {
				m.setError(err)
				break
			}
			m.setInfo(fmt.Sprintf("saved view %q", v.Name))
		}
		m.cursor = 0
		return m.endInput(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	switch m.mode {
	case modeSearch:
		tv.SetFreeText(m.input.Value())
		m.cursor = 0
	case modeFilter:
		tv.SetFilter(m.filterCol, m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) endInput() Model {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
	m.clampCursors()
	return m
}

// cycleView steps through the saved views in name order, then back to
// Default.
func (m *Model) cycleView() {
	s := m.dir.Session()
	vs, err := s.List(m.ctx)
	if err != nil {
		m.setError(err)
		return
	}
	if len(vs) == 0 {
		m.setInfo("no saved views")
		return
	}
	next := 0
	if a := s.Active(); a != nil {
		for i, v := range vs {
			if v.ID == a.ID {
				next = i + 1
			}
		}
	}
	m.cursor = 0
	if next >= len(vs) {
		s.ReturnToDefault(m.ctx)
		return
	}
	s.SelectView(m.ctx, vs[next])
}

func (m *Model) currentColumn() (tableview.Column[types.Record], bool) {
	cols := m.dir.Table().EffectiveColumns()
	if m.colCursor < 0 || m.colCursor >= len(cols) {
		return tableview.Column[types.Record]{}, false
	}
	return cols[m.colCursor], true
}

func (m *Model) clampCursors() {
	tv := m.dir.Table()
	m.cursor = min(max(m.cursor, 0), max(len(tv.PageRowIDs())-1, 0))
	m.colCursor = min(max(m.colCursor, 0), max(len(tv.EffectiveColumns())-1, 0))
}

func (m *Model) setError(err error) {
	if errors.Is(err, views.ErrNoActiveView) {
		m.status = "no saved view is active"
	} else {
		m.status = err.Error()
	}
	m.statusErr = true
}

func (m *Model) setInfo(s string) {
	m.status = s
	m.statusErr = false
}
