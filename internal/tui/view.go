package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
)

const minColumnWidth = 24

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)

	var body string
	switch m.mode {
	case ModeHelp:
		body = m.renderHelp(bodyHeight)
	case ModeAddTask, ModeEditTask, ModeAddColumn, ModeRenameColumn, ModeAddBoard, ModeConfirm:
		body = lipgloss.Place(
			m.width, bodyHeight,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceChars(" "),
		)
	default:
		body = m.renderBoard(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

// renderHeader shows one tab per board
func (m Model) renderHeader() string {
	st := m.styles
	title := st.Header.Render("IronBoard")
	if len(m.state.Boards) == 0 {
		return title
	}

	tabs := []string{title}
	for i, b := range m.state.Boards {
		style := st.Tab
		if i == m.boardIdx {
			style = st.TabActive
		}
		tabs = append(tabs, style.Render(truncate(b.Title, 20)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderBoard(height int) string {
	st := m.styles
	board := m.currentBoard()
	if board == nil {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			st.Help.Render("No boards yet. Press 'b' to create one."))
	}

	columns := m.columns()
	if len(columns) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			st.Help.Render(fmt.Sprintf("%s has no columns. Press 'c' to add one.", board.Title)))
	}

	width := max(m.width/len(columns)-2, minColumnWidth)
	rendered := make([]string, 0, len(columns))
	for i, c := range columns {
		rendered = append(rendered, m.renderColumn(c, i == m.colCursor, width, height-2))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderColumn(c model.Column, focused bool, width, height int) string {
	st := m.styles
	tasks := m.tasksIn(c.ID)

	var b strings.Builder
	b.WriteString(st.ColumnTitle.Render(fmt.Sprintf("%s (%d)", truncate(c.Title, width-6), len(tasks))))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(st.Border).Render(strings.Repeat("─", width-2)))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(st.Help.Render("empty"))
	}
	for i, t := range tasks {
		b.WriteString(m.renderTask(t, focused && i == m.taskCursor, width-2))
		b.WriteString("\n")
	}

	style := st.Column
	if focused {
		style = st.ColumnFocused
	}
	return style.Width(width).Height(max(height, 3)).Render(b.String())
}

func (m Model) renderTask(t model.Task, selected bool, width int) string {
	st := m.styles
	style := st.Task
	cursor := "  "
	if selected {
		style = st.TaskSelected
		cursor = "❯ "
	}

	line := cursor + st.FormatPriority(t.Priority) + " " + style.Render(truncate(t.Title, width-5))
	if t.DueDate != "" {
		due := st.Help
		if t.IsOverdue(m.today) || t.IsDueToday(m.today) {
			due = st.TaskOverdue
		}
		line += "\n    " + due.Render(t.DueDate)
	}
	return line
}

func (m Model) renderStatusBar() string {
	st := m.styles

	// When searching, show inline search input (like vim)
	if m.mode == ModeSearch {
		return st.StatusBar.Width(m.width).Render("/" + m.input.View())
	}

	help := "a:add  e:edit  d:del  H/L:move  J/K:reorder  c:column  b:board  /:search  f:filter  D:dark  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}

	var filters []string
	if m.filter.Search != "" {
		filters = append(filters, "/"+m.filter.Search)
	}
	if m.filter.Priority != "" && m.filter.Priority != query.PriorityAll {
		filters = append(filters, "priority:"+m.filter.Priority)
	}
	if len(filters) > 0 {
		right := strings.Join(filters, " ") + "  esc:clear"
		if avail := m.width - lipgloss.Width(help) - lipgloss.Width(right) - 2; avail > 0 {
			help += strings.Repeat(" ", avail) + right
		} else {
			help += "  " + right
		}
	}

	return st.StatusBar.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	st := m.styles

	if m.mode == ModeConfirm {
		content := lipgloss.NewStyle().Bold(true).Render(m.pendingPrompt) + "\n\n"
		content += st.Help.Render("y:delete  any other key:cancel")
		return st.Modal.Render(content)
	}

	title := "Add Task"
	switch m.mode {
	case ModeAddTask:
		if c := m.currentColumn(); c != nil {
			title = fmt.Sprintf("Add Task to: %s", c.Title)
		}
	case ModeEditTask:
		title = fmt.Sprintf("Edit Task: %s (%d/%d)", editFields[m.editStep].label, m.editStep+1, len(editFields))
	case ModeAddColumn:
		title = "New Column"
	case ModeRenameColumn:
		title = "Rename Column"
	case ModeAddBoard:
		title = "New Board"
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += st.Help.Render("Enter:save  Esc:cancel")

	return st.Modal.Render(content)
}

func (m Model) renderHelp(height int) string {
	help := `
╭──── Keyboard Shortcuts ────╮
│                            │
│  Navigation                │
│  ──────────                │
│  h/l     Focus column      │
│  j/k     Select task       │
│  [ ]     Previous/next     │
│          board             │
│                            │
│  Tasks                     │
│  ─────                     │
│  a       Add task          │
│  e       Edit task         │
│  d       Delete task       │
│  H/L     Move to column    │
│  J/K     Move down/up      │
│  1-3     Set priority      │
│                            │
│  Board                     │
│  ─────                     │
│  c       Add column        │
│  r       Rename column     │
│  X       Delete column     │
│  b       New board         │
│                            │
│  Other                     │
│  ─────                     │
│  /       Search            │
│  f       Priority filter   │
│  D       Dark mode         │
│  ?       Toggle help       │
│  q       Quit              │
│                            │
╰────────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, m.styles.Help.Render(help))
}
