package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Search      key.Binding
	Filter      key.Binding
	Sort        key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding
	GoToPage    key.Binding
	ToggleRow   key.Binding
	TogglePage  key.Binding
	SelectAll   key.Binding
	Clear       key.Binding
	HideColumn  key.Binding
	MoveLeft    key.Binding
	MoveRight   key.Binding
	CycleView   key.Binding
	DefaultView key.Binding
	Reset       key.Binding
	SaveView    key.Binding
	UpdateView  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter column")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
	PrevPage:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
	NextPage:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
	GoToPage:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to page")),
	ToggleRow:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select row")),
	TogglePage:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
	SelectAll:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "select all matching")),
	Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear selection")),
	HideColumn:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hide column")),
	MoveLeft:    key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "move column left")),
	MoveRight:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "move column right")),
	CycleView:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "next view")),
	DefaultView: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "default view")),
	Reset:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
	SaveView:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "save as view")),
	UpdateView:  key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "update view")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.Sort, k.PrevPage, k.NextPage, k.ToggleRow, k.CycleView, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PrevPage, k.NextPage, k.GoToPage},
		{k.Search, k.Filter, k.Sort, k.HideColumn, k.MoveLeft, k.MoveRight},
		{k.ToggleRow, k.TogglePage, k.SelectAll, k.Clear},
		{k.CycleView, k.DefaultView, k.Reset, k.SaveView, k.UpdateView, k.Help, k.Quit},
	}
}
