package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
	"github.com/existflow/ironboard/internal/store"
)

func newBoardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
		Long:  `Create, list, show and delete boards.`,
	}
	cmd.AddCommand(
		newBoardNewCmd(a),
		newBoardListCmd(a),
		newBoardShowCmd(a),
		newBoardEditCmd(a),
		newBoardDeleteCmd(a),
		newBoardUseCmd(a),
	)
	return cmd
}

func newBoardNewCmd(a *app) *cobra.Command {
	var description string
	var use bool

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a new board",
		Long: `Create a new board.

Examples:
  ironboard board new "Sprint 1"
  ironboard board new "Home" -d "Chores and errands" --use`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			board := model.NewBoard(a.newID(), title, description, a.now())

			return a.withStore(func(st *store.Store) error {
				if err := st.Dispatch(store.AddBoard{Board: board}); err != nil {
					return fmt.Errorf("failed to create board: %w", err)
				}
				if use {
					if err := setCurrentBoard(board.ID); err != nil {
						return fmt.Errorf("failed to set current board: %w", err)
					}
				}
				a.printf("✓ Created board %q (%s)\n", board.Title, model.ShortID(board.ID))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Board description")
	cmd.Flags().BoolVar(&use, "use", false, "Make it the current board")
	return cmd
}

func newBoardListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				if len(s.Boards) == 0 {
					a.println("No boards yet. Create one with: ironboard board new \"Sprint 1\"")
					return nil
				}

				current := currentBoard()
				summary := query.Summarize(s.Boards, s.Columns, s.Tasks, model.Today(a.now()))
				a.println()
				for _, b := range summary.ByBoard {
					marker := " "
					if b.BoardID == current {
						marker = "*"
					}
					a.printf(" %s %-8s  %-30s  %2d columns  %3d tasks\n",
						marker, model.ShortID(b.BoardID), truncate(b.Title, 30), b.Columns, b.Tasks)
				}
				a.println()
				return nil
			})
		},
	}
}

func newBoardShowCmd(a *app) *cobra.Command {
	var f filterFlags

	cmd := &cobra.Command{
		Use:   "show [board-id]",
		Short: "Show a board with its columns and tasks",
		Long: `Show a board with its columns and tasks. Without an id the current
board is shown.

Examples:
  ironboard board show
  ironboard board show 1a2b --priority high
  ironboard board show 1a2b --search release`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := f.filter()
			if err != nil {
				return err
			}
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				board, err := resolveBoard(s.Boards, argOrEmpty(args))
				if err != nil {
					return err
				}
				a.printBoard(s, board, filter)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newBoardEditCmd(a *app) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit [board-id]",
		Short: "Edit a board's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !anyChanged(cmd, "title", "description") {
				return fmt.Errorf("nothing to change: pass --title or --description")
			}
			return a.withStore(func(st *store.Store) error {
				board, err := query.FindBoard(st.Snapshot().Boards, args[0])
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("title") {
					board.Title = title
				}
				if cmd.Flags().Changed("description") {
					board.Description = description
				}
				board = board.Touch(a.now())

				if err := st.Dispatch(store.UpdateBoard{Board: board}); err != nil {
					return fmt.Errorf("failed to update board: %w", err)
				}
				a.printf("✓ Updated board %q\n", board.Title)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	return cmd
}

func newBoardDeleteCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete [board-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a board with all its columns and tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				board, err := query.FindBoard(s.Boards, args[0])
				if err != nil {
					return err
				}

				columns := query.ColumnsForBoard(s.Columns, board.ID)
				tasks := query.TasksForBoard(s.Columns, s.Tasks, board.ID)
				a.printf("About to delete board %q with %d columns and %d tasks\n", board.Title, len(columns), len(tasks))
				ok, err := a.confirm(force, "Are you sure?")
				if err != nil || !ok {
					return err
				}

				if err := st.Dispatch(store.DeleteBoard{BoardID: board.ID}); err != nil {
					return fmt.Errorf("failed to delete board: %w", err)
				}
				if currentBoard() == board.ID {
					_ = setCurrentBoard("")
				}
				a.printf("🗑️  Deleted board %q\n", board.Title)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}

func newBoardUseCmd(a *app) *cobra.Command {
	var clearCurrent bool

	cmd := &cobra.Command{
		Use:   "use [board-id]",
		Short: "Set or show the current board",
		Long: `Set the board used when a command is given no board id.

Examples:
  ironboard board use          # Show current board
  ironboard board use 1a2b     # Set current board
  ironboard board use --clear  # Forget the current board`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearCurrent {
				if err := setCurrentBoard(""); err != nil {
					return err
				}
				a.println("✓ Current board cleared")
				return nil
			}
			return a.withStore(func(st *store.Store) error {
				boards := st.Snapshot().Boards
				if len(args) == 0 {
					id := currentBoard()
					if id == "" {
						a.println("No current board set")
						return nil
					}
					board, err := query.FindBoard(boards, id)
					if err != nil {
						a.printf("⚠️  Current board %s no longer exists\n", model.ShortID(id))
						return nil
					}
					a.printf("Current board: %s (%s)\n", board.Title, model.ShortID(board.ID))
					return nil
				}

				board, err := query.FindBoard(boards, args[0])
				if err != nil {
					return err
				}
				if err := setCurrentBoard(board.ID); err != nil {
					return fmt.Errorf("failed to set current board: %w", err)
				}
				a.printf("✓ Current board: %s\n", board.Title)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clearCurrent, "clear", false, "Clear the current board")
	return cmd
}
