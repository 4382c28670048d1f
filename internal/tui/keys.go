package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	PrevBoard  key.Binding
	NextBoard  key.Binding
	Enter      key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Priority   key.Binding
	AddColumn  key.Binding
	Rename     key.Binding
	DelColumn  key.Binding
	NewBoard   key.Binding
	Search     key.Binding
	Filter     key.Binding
	DarkMode   key.Binding
	Help       key.Binding
	Quit       key.Binding
	Escape     key.Binding
	ConfirmYes key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left column")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right column")),
	PrevBoard:  key.NewBinding(key.WithKeys("[", "shift+tab"), key.WithHelp("[", "previous board")),
	NextBoard:  key.NewBinding(key.WithKeys("]", "tab"), key.WithHelp("]", "next board")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
	MoveLeft:   key.NewBinding(key.WithKeys("H", "<"), key.WithHelp("H", "move task left")),
	MoveRight:  key.NewBinding(key.WithKeys("L", ">"), key.WithHelp("L", "move task right")),
	MoveUp:     key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move task up")),
	MoveDown:   key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move task down")),
	Priority:   key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "set priority")),
	AddColumn:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add column")),
	Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename column")),
	DelColumn:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete column")),
	NewBoard:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "new board")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "priority filter")),
	DarkMode:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "dark mode")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	ConfirmYes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
}

// priorityCycle is the order 'f' steps through
var priorityCycle = []string{"all", "high", "medium", "low"}
