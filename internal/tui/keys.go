package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	FirstPage  key.Binding
	LastPage   key.Binding
	Search     key.Binding
	NextFacet  key.Binding
	CycleValue key.Binding
	PageSize   key.Binding
	Select     key.Binding
	SelectPage key.Binding
	Details    key.Binding
	Copy       key.Binding
	Add        key.Binding
	Export     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Reload     key.Binding
	Logout     key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PrevPage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
	NextPage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
	FirstPage:  key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first page")),
	LastPage:   key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last page")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	NextFacet:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
	CycleValue: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter value")),
	PageSize:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "page size")),
	Select:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	SelectPage: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
	Details:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy selected")),
	Add:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add clients")),
	Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Logout:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logout")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
