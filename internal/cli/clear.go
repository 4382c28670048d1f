package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/store"
)

func newClearCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all boards, columns, tasks and settings",
		Long: `Delete every board, column and task and reset the settings in the
configured storage backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				a.printf("About to delete %s, %s and %s\n",
					plural(len(s.Boards), "board"), plural(len(s.Columns), "column"), plural(len(s.Tasks), "task"))
				ok, err := a.confirm(force, "Are you sure you want to clear all data?")
				if err != nil || !ok {
					return err
				}

				a.println("🧹 Clearing data...")
				if err := st.Dispatch(store.ClearAllData{}); err != nil {
					return fmt.Errorf("failed to clear data: %w", err)
				}
				if err := setCurrentBoard(""); err != nil {
					logger.Warn("Failed to clear current board", logger.F("error", err))
				}
				a.println("All data cleared.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}
