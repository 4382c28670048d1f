package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
	"github.com/existflow/ironboard/internal/store"
)

// filterFlags are the task filters shared by 'board show' and 'task list'
type filterFlags struct {
	search   string
	priority string
	due      string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Only tasks whose title or description contains this text")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", query.PriorityAll, "Only tasks with this priority (high, medium, low, all)")
	cmd.Flags().StringVar(&f.due, "due", "", "Only tasks due on this date (YYYY-MM-DD)")
}

func (f *filterFlags) filter() (query.Filter, error) {
	out := query.Filter{Search: f.search, Priority: query.PriorityAll}
	if f.priority != "" && !strings.EqualFold(f.priority, query.PriorityAll) {
		p, err := model.ParsePriority(f.priority)
		if err != nil {
			return query.Filter{}, err
		}
		out.Priority = string(p)
	}
	due, err := model.ParseDueDate(f.due)
	if err != nil {
		return query.Filter{}, err
	}
	out.DueDate = due
	return out, nil
}

func (a *app) printBoard(s store.State, board model.Board, filter query.Filter) {
	a.printf("\n📋 %s (%s)\n", board.Title, model.ShortID(board.ID))
	if board.Description != "" {
		a.printf("   %s\n", board.Description)
	}

	columns := query.ColumnsForBoard(s.Columns, board.ID)
	if len(columns) == 0 {
		a.println("\nNo columns yet. Add one with: ironboard column add", model.ShortID(board.ID), "\"To Do\"")
		return
	}

	today := model.Today(a.now())
	for _, c := range columns {
		tasks := filter.Apply(query.TasksForColumn(s.Tasks, c.ID))
		a.printColumn(c, tasks, today)
	}
	a.println()
}

func (a *app) printColumn(c model.Column, tasks []model.Task, today string) {
	a.printf("\n▌ %s (%s, %d tasks)\n", c.Title, model.ShortID(c.ID), len(tasks))
	a.println(strings.Repeat("─", 60))
	for _, t := range tasks {
		a.printTask(t, today)
	}
}

func (a *app) printTask(t model.Task, today string) {
	// Priority indicator
	priority := "  "
	switch t.Priority {
	case model.PriorityHigh:
		priority = "▲ "
	case model.PriorityLow:
		priority = "▽ "
	}

	due := ""
	if t.DueDate != "" {
		due = t.DueDate
		switch {
		case t.IsOverdue(today):
			due += " !"
		case t.IsDueToday(today):
			due += " today"
		}
	}

	a.printf("  %s%-8s  %-40s  %-6s  %s\n",
		priority, model.ShortID(t.ID), truncate(t.Title, 40), t.Priority, due)
}

// truncate shortens s to n runes with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
