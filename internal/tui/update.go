package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
	"github.com/existflow/ironboard/internal/store"
)

// tickMsg is sent every minute so due-date highlighting follows the clock
type tickMsg time.Time

// Init starts the clock
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.today = model.Today(m.opts.Now())
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle mode-specific input
		switch m.mode {
		case ModeAddTask, ModeEditTask, ModeAddColumn, ModeRenameColumn, ModeAddBoard:
			return m.updateInput(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		// Normal mode key handling
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.PrevBoard):
		m.setBoard(m.boardIdx - 1)

	case key.Matches(msg, keys.NextBoard):
		m.setBoard(m.boardIdx + 1)

	case key.Matches(msg, keys.Left):
		if m.colCursor > 0 {
			m.colCursor--
			m.taskCursor = 0
		}

	case key.Matches(msg, keys.Right):
		if m.colCursor < len(m.columns())-1 {
			m.colCursor++
			m.taskCursor = 0
		}

	case key.Matches(msg, keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.taskCursor < len(m.visibleTasks())-1 {
			m.taskCursor++
		}

	case key.Matches(msg, keys.MoveLeft):
		m.moveTask(-1)

	case key.Matches(msg, keys.MoveRight):
		m.moveTask(1)

	case key.Matches(msg, keys.MoveUp):
		m.shiftTask(-1)

	case key.Matches(msg, keys.MoveDown):
		m.shiftTask(1)

	case key.Matches(msg, keys.Priority):
		m.setPriority(msg.String())

	case key.Matches(msg, keys.Add):
		if m.currentColumn() == nil {
			m.message = "Add a column first (c)"
			return m, nil
		}
		return m.startInput(ModeAddTask, "", "Task title...")

	case key.Matches(msg, keys.Edit):
		if t := m.currentTask(); t != nil {
			m.draft = *t
			m.editStep = 0
			return m.startInput(ModeEditTask, editFields[0].get(*t), editFields[0].placeholder)
		}

	case key.Matches(msg, keys.Delete):
		if t := m.currentTask(); t != nil {
			m.askConfirm(store.DeleteTask{TaskID: t.ID}, fmt.Sprintf("Delete task %q?", t.Title))
		}

	case key.Matches(msg, keys.AddColumn):
		if m.currentBoard() == nil {
			m.message = "Create a board first (b)"
			return m, nil
		}
		return m.startInput(ModeAddColumn, "", "Column title...")

	case key.Matches(msg, keys.Rename):
		if c := m.currentColumn(); c != nil {
			return m.startInput(ModeRenameColumn, c.Title, "Column title...")
		}

	case key.Matches(msg, keys.DelColumn):
		if c := m.currentColumn(); c != nil {
			n := len(query.TasksForColumn(m.state.Tasks, c.ID))
			m.askConfirm(store.DeleteColumn{ColumnID: c.ID}, fmt.Sprintf("Delete column %q and its %d tasks?", c.Title, n))
		}

	case key.Matches(msg, keys.NewBoard):
		return m.startInput(ModeAddBoard, "", "Board title...")

	case key.Matches(msg, keys.Search):
		return m.startInput(ModeSearch, m.filter.Search, "Search...")

	case key.Matches(msg, keys.Filter):
		m.filter.Priority = nextPriority(m.filter.Priority)
		m.refresh()
		m.message = "Priority: " + m.filter.Priority

	case key.Matches(msg, keys.DarkMode):
		m.dispatch(store.ToggleDarkMode{})

	case key.Matches(msg, keys.Escape):
		if !m.filter.IsZero() {
			m.filter = query.Filter{Priority: query.PriorityAll}
			m.refresh()
			m.message = "Filter cleared"
		}

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m Model) startInput(mode Mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = mode
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) askConfirm(a store.Action, prompt string) {
	m.mode = ModeConfirm
	m.pending = a
	m.pendingPrompt = prompt
}

// moveTask moves the selected task to the bottom of the neighbouring column
func (m *Model) moveTask(dir int) {
	t := m.currentTask()
	columns := m.columns()
	dest := m.colCursor + dir
	if t == nil || dest < 0 || dest >= len(columns) {
		return
	}

	to := columns[dest]
	move := store.MoveTask{
		TaskID:   t.ID,
		ColumnID: to.ID,
		Position: query.NextTaskPosition(m.state.Tasks, to.ID),
	}
	if m.dispatch(move) {
		m.selectTask(t.ID)
		m.message = fmt.Sprintf("Moved to %s", to.Title)
	}
}

// shiftTask swaps the selected task with its neighbour and renumbers the column
func (m *Model) shiftTask(dir int) {
	if !m.filter.IsZero() {
		m.message = "Clear the filter to reorder (esc)"
		return
	}
	c := m.currentColumn()
	t := m.currentTask()
	if c == nil || t == nil {
		return
	}

	tasks := query.TasksForColumn(m.state.Tasks, c.ID)
	i := slices.IndexFunc(tasks, func(x model.Task) bool { return x.ID == t.ID })
	j := i + dir
	if i < 0 || j < 0 || j >= len(tasks) {
		return
	}
	tasks[i], tasks[j] = tasks[j], tasks[i]

	ids := make([]string, len(tasks))
	for k, x := range tasks {
		ids[k] = x.ID
	}
	if m.dispatch(store.ReorderTasks{ColumnID: c.ID, TaskIDs: ids}) {
		m.selectTask(t.ID)
	}
}

func (m *Model) setPriority(k string) {
	t := m.currentTask()
	if t == nil {
		return
	}
	p := map[string]model.Priority{
		"1": model.PriorityHigh,
		"2": model.PriorityMedium,
		"3": model.PriorityLow,
	}[k]
	if p == "" || p == t.Priority {
		return
	}

	updated := *t
	updated.Priority = p
	if m.dispatch(store.UpdateTask{Task: updated}) {
		m.selectTask(t.ID)
		m.message = fmt.Sprintf("Priority set to %s", p)
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		if m.mode == ModeEditTask {
			return m.editNext(value)
		}
		mode := m.mode
		m.mode = ModeNormal
		m.input.Blur()
		if value == "" {
			return m, nil
		}
		m.submit(mode, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit turns the text entered in mode into an action
func (m *Model) submit(mode Mode, value string) {
	switch mode {
	case ModeAddTask:
		c := m.currentColumn()
		if c == nil {
			return
		}
		task := model.NewTask(m.opts.NewID(), c.ID, value, query.NextTaskPosition(m.state.Tasks, c.ID))
		if m.dispatch(store.AddTask{Task: task}) {
			m.selectTask(task.ID)
			m.message = fmt.Sprintf("Added: %s", value)
		}

	case ModeAddColumn:
		b := m.currentBoard()
		if b == nil {
			return
		}
		column := model.NewColumn(m.opts.NewID(), b.ID, value, query.NextColumnPosition(m.state.Columns, b.ID))
		if m.dispatch(store.AddColumn{Column: column}) {
			m.colCursor = len(m.columns()) - 1
			m.taskCursor = 0
			m.message = fmt.Sprintf("Added column: %s", value)
		}

	case ModeRenameColumn:
		c := m.currentColumn()
		if c == nil {
			return
		}
		updated := *c
		updated.Title = value
		m.dispatch(store.UpdateColumn{Column: updated})

	case ModeAddBoard:
		board := model.NewBoard(m.opts.NewID(), value, "", m.opts.Now())
		if m.dispatch(store.AddBoard{Board: board}) {
			m.setBoard(len(m.state.Boards) - 1)
			m.message = fmt.Sprintf("Created board: %s", value)
		}
	}
}

// editField is one step of the task edit form
type editField struct {
	label       string
	placeholder string
	get         func(model.Task) string
	set         func(*model.Task, string) error
}

var editFields = []editField{
	{
		label:       "Title",
		placeholder: "Task title...",
		get:         func(t model.Task) string { return t.Title },
		set: func(t *model.Task, v string) error {
			if v == "" {
				return errors.New("title cannot be empty")
			}
			t.Title = v
			return nil
		},
	},
	{
		label:       "Description",
		placeholder: "Description...",
		get:         func(t model.Task) string { return t.Description },
		set: func(t *model.Task, v string) error {
			t.Description = v
			return nil
		},
	},
	{
		label:       "Due date",
		placeholder: "YYYY-MM-DD (empty for none)",
		get:         func(t model.Task) string { return t.DueDate },
		set: func(t *model.Task, v string) error {
			due, err := model.ParseDueDate(v)
			if err != nil {
				return err
			}
			t.DueDate = due
			return nil
		},
	},
	{
		label:       "Created by",
		placeholder: "Name...",
		get:         func(t model.Task) string { return t.CreatedBy },
		set: func(t *model.Task, v string) error {
			t.CreatedBy = v
			return nil
		},
	},
}

// editNext stores value in the current field of the draft and moves to the
// next one. The task is saved after the last field.
func (m Model) editNext(value string) (tea.Model, tea.Cmd) {
	if err := editFields[m.editStep].set(&m.draft, value); err != nil {
		m.message = err.Error()
		return m, nil
	}
	m.message = ""

	m.editStep++
	if m.editStep < len(editFields) {
		next := editFields[m.editStep]
		return m.startInput(ModeEditTask, next.get(m.draft), next.placeholder)
	}

	m.mode = ModeNormal
	m.input.Blur()
	if m.dispatch(store.UpdateTask{Task: m.draft}) {
		m.selectTask(m.draft.ID)
		m.message = fmt.Sprintf("Updated: %s", m.draft.Title)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		m.filter.Search = ""
		m.refresh()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	// Live filter as user types
	m.filter.Search = m.input.Value()
	m.taskCursor = 0
	m.refresh()
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.pending
	m.mode = ModeNormal
	m.pending = nil
	m.pendingPrompt = ""

	if a != nil && key.Matches(msg, keys.ConfirmYes) {
		if m.dispatch(a) {
			m.message = "Deleted"
		}
		return m, nil
	}
	m.message = "Cancelled"
	return m, nil
}
