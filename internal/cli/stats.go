package cli

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
	"github.com/existflow/ironboard/internal/store"
)

func newStatsCmd(a *app) *cobra.Command {
	var (
		boardRef string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Long: `Show counts of boards, columns and tasks, broken down by priority
and column, with overdue and due-today totals.

Examples:
  ironboard stats
  ironboard stats --board 1a2b
  ironboard stats --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				boards, columns, tasks := s.Boards, s.Columns, s.Tasks
				if boardRef != "" {
					board, err := query.FindBoard(s.Boards, boardRef)
					if err != nil {
						return err
					}
					boards = []model.Board{board}
					columns = query.ColumnsForBoard(s.Columns, board.ID)
					tasks = query.TasksForBoard(s.Columns, s.Tasks, board.ID)
				}

				summary := query.Summarize(boards, columns, tasks, model.Today(a.now()))
				if asJSON {
					data, err := sonic.ConfigStd.MarshalIndent(summary, "", "  ")
					if err != nil {
						return fmt.Errorf("failed to encode stats: %w", err)
					}
					a.println(string(data))
					return nil
				}
				a.printSummary(summary)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&boardRef, "board", "b", "", "Only count this board")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func (a *app) printSummary(s query.Summary) {
	a.printf("\n📊 %s, %s, %s\n", plural(s.Boards, "board"), plural(s.Columns, "column"), plural(s.Tasks, "task"))
	a.printf("   ⏰ %d overdue, %d due today\n\n", s.Overdue, s.DueToday)

	a.println("By priority")
	for _, p := range model.Priorities {
		a.printf("  %-8s %3d\n", p, s.ByPriority[p])
	}

	if len(s.ByBoard) > 0 {
		a.println("\nBy board")
		for _, b := range s.ByBoard {
			a.printf("  %-30s %3d columns %4d tasks\n", truncate(b.Title, 30), b.Columns, b.Tasks)
		}
	}
	if len(s.ByColumn) > 0 {
		a.println("\nBy column")
		for _, c := range s.ByColumn {
			a.printf("  %-30s %4d tasks\n", truncate(c.Title, 30), c.Tasks)
		}
	}
	a.println()
}
