package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
	"github.com/existflow/ironboard/internal/store"
)

func newColumnCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "column",
		Aliases: []string{"col"},
		Short:   "Manage the columns of a board",
	}
	cmd.AddCommand(
		newColumnAddCmd(a),
		newColumnRenameCmd(a),
		newColumnDeleteCmd(a),
	)
	return cmd
}

func newColumnAddCmd(a *app) *cobra.Command {
	var boardRef string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a column to the end of a board",
		Long: `Add a column to the end of a board. Without --board the current
board is used.

Examples:
  ironboard column add "To Do"
  ironboard column add "In Progress" --board 1a2b`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				board, err := resolveBoard(s.Boards, boardRef)
				if err != nil {
					return err
				}

				position := query.NextColumnPosition(s.Columns, board.ID)
				column := model.NewColumn(a.newID(), board.ID, title, position)
				if err := st.Dispatch(store.AddColumn{Column: column}); err != nil {
					return fmt.Errorf("failed to add column: %w", err)
				}
				a.printf("✓ Added column %q to [%s] (%s)\n", column.Title, board.Title, model.ShortID(column.ID))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&boardRef, "board", "b", "", "Board id (defaults to the current board)")
	return cmd
}

func newColumnRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename [column-id] [title]",
		Short: "Rename a column",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[1:], " ")
			return a.withStore(func(st *store.Store) error {
				column, err := query.FindColumn(st.Snapshot().Columns, args[0])
				if err != nil {
					return err
				}
				old := column.Title
				column.Title = title
				if err := st.Dispatch(store.UpdateColumn{Column: column}); err != nil {
					return fmt.Errorf("failed to rename column: %w", err)
				}
				a.printf("✓ Renamed column %q to %q\n", old, column.Title)
				return nil
			})
		},
	}
}

func newColumnDeleteCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete [column-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a column and its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				column, err := query.FindColumn(s.Columns, args[0])
				if err != nil {
					return err
				}

				n := len(query.TasksForColumn(s.Tasks, column.ID))
				a.printf("About to delete column %q with %s\n", column.Title, plural(n, "task"))
				ok, err := a.confirm(force, "Are you sure?")
				if err != nil || !ok {
					return err
				}

				if err := st.Dispatch(store.DeleteColumn{ColumnID: column.ID}); err != nil {
					return fmt.Errorf("failed to delete column: %w", err)
				}
				a.printf("🗑️  Deleted column %q\n", column.Title)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}
