package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
	"github.com/existflow/ironboard/internal/store"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeEditTask
	ModeAddColumn
	ModeRenameColumn
	ModeAddBoard
	ModeSearch
	ModeConfirm
	ModeHelp
)

// Options configures a Model
type Options struct {
	BoardID string // board shown first, if it exists
	NewID   model.IDFunc
	Now     func() time.Time
	OnBoard func(boardID string) // called when the shown board changes
}

// Model is the main TUI model
type Model struct {
	store *store.Store
	opts  Options
	state store.State

	// UI state
	width      int
	height     int
	mode       Mode
	boardIdx   int
	colCursor  int
	taskCursor int
	today      string
	styles     styles

	// Input
	input textinput.Model

	// draft holds the task being edited; editStep indexes editFields
	draft    model.Task
	editStep int

	filter query.Filter

	// pending is dispatched when a confirmation is answered with y
	pending       store.Action
	pendingPrompt string

	message string
}

// NewModel creates a new TUI model over a hydrated store
func NewModel(st *store.Store, opts Options) Model {
	logger.Info("Initializing TUI model")

	if opts.NewID == nil {
		opts.NewID = model.NewID
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		store:  st,
		opts:   opts,
		mode:   ModeNormal,
		input:  ti,
		filter: query.Filter{Priority: query.PriorityAll},
		today:  model.Today(opts.Now()),
	}
	m.refresh()

	for i, b := range m.state.Boards {
		if b.ID == opts.BoardID {
			m.boardIdx = i
		}
	}

	logger.Debug("TUI model initialized",
		logger.F("boards", len(m.state.Boards)),
		logger.F("tasks", len(m.state.Tasks)))
	return m
}

// refresh re-reads the store and keeps the cursors in range
func (m *Model) refresh() {
	m.state = m.store.Snapshot()
	m.styles = newStyles(m.state.Settings)

	if m.boardIdx >= len(m.state.Boards) {
		m.boardIdx = max(len(m.state.Boards)-1, 0)
	}
	columns := m.columns()
	if m.colCursor >= len(columns) {
		m.colCursor = max(len(columns)-1, 0)
	}
	tasks := m.visibleTasks()
	if m.taskCursor >= len(tasks) {
		m.taskCursor = max(len(tasks)-1, 0)
	}
}

// dispatch applies an action and reports failures in the status bar
func (m *Model) dispatch(a store.Action) bool {
	err := m.store.Dispatch(a)
	m.refresh()
	if err != nil {
		logger.Error("Dispatch failed", logger.F("action", string(a.Type())), logger.F("error", err))
		m.message = "Error: " + err.Error()
		return false
	}
	return true
}

func (m *Model) currentBoard() *model.Board {
	if m.boardIdx < len(m.state.Boards) {
		return &m.state.Boards[m.boardIdx]
	}
	return nil
}

// columns of the current board, by position
func (m *Model) columns() []model.Column {
	b := m.currentBoard()
	if b == nil {
		return nil
	}
	return query.ColumnsForBoard(m.state.Columns, b.ID)
}

func (m *Model) currentColumn() *model.Column {
	columns := m.columns()
	if m.colCursor < len(columns) {
		return &columns[m.colCursor]
	}
	return nil
}

// tasksIn returns the filtered tasks of a column, by position
func (m *Model) tasksIn(columnID string) []model.Task {
	return m.filter.Apply(query.TasksForColumn(m.state.Tasks, columnID))
}

func (m *Model) visibleTasks() []model.Task {
	c := m.currentColumn()
	if c == nil {
		return nil
	}
	return m.tasksIn(c.ID)
}

func (m *Model) currentTask() *model.Task {
	tasks := m.visibleTasks()
	if m.taskCursor < len(tasks) {
		return &tasks[m.taskCursor]
	}
	return nil
}

// selectTask points the cursors at the task with the given id
func (m *Model) selectTask(id string) {
	for ci, c := range m.columns() {
		for ti, t := range m.tasksIn(c.ID) {
			if t.ID == id {
				m.colCursor = ci
				m.taskCursor = ti
				return
			}
		}
	}
}

func (m *Model) setBoard(idx int) {
	if idx < 0 || idx >= len(m.state.Boards) || idx == m.boardIdx {
		return
	}
	m.boardIdx = idx
	m.colCursor = 0
	m.taskCursor = 0
	if m.opts.OnBoard != nil {
		m.opts.OnBoard(m.state.Boards[idx].ID)
	}
}
