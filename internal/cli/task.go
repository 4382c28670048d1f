package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
	"github.com/existflow/ironboard/internal/store"
)

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskEditCmd(a),
		newTaskMoveCmd(a),
		newTaskReorderCmd(a),
		newTaskDeleteCmd(a),
		newTaskListCmd(a),
	)
	return cmd
}

// taskFields are the editable task attributes shared by add and edit
type taskFields struct {
	description string
	priority    string
	due         string
	createdBy   string
}

func (f *taskFields) register(cmd *cobra.Command, defaultPriority string) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&f.priority, "priority", "p", defaultPriority, "Priority (high, medium, low)")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD, empty for none)")
	cmd.Flags().StringVar(&f.createdBy, "created-by", "", "Author of the task")
}

// apply copies every flag the user set onto t
func (f *taskFields) apply(cmd *cobra.Command, t *model.Task) error {
	if cmd.Flags().Changed("description") {
		t.Description = f.description
	}
	if cmd.Flags().Changed("priority") {
		p, err := model.ParsePriority(f.priority)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if cmd.Flags().Changed("due") {
		due, err := model.ParseDueDate(f.due)
		if err != nil {
			return err
		}
		t.DueDate = due
	}
	if cmd.Flags().Changed("created-by") {
		t.CreatedBy = f.createdBy
	}
	return nil
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func newTaskAddCmd(a *app) *cobra.Command {
	var fields taskFields

	cmd := &cobra.Command{
		Use:   "add [column-id] [title]",
		Short: "Add a task to the bottom of a column",
		Long: `Add a task to the bottom of a column.

Examples:
  ironboard task add 9f8e "Write release notes"
  ironboard task add 9f8e "Fix login" -p high --due 2024-06-01`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[1:], " ")
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				column, err := query.FindColumn(s.Columns, args[0])
				if err != nil {
					return err
				}

				task := model.NewTask(a.newID(), column.ID, title, query.NextTaskPosition(s.Tasks, column.ID))
				if err := fields.apply(cmd, &task); err != nil {
					return err
				}
				if err := st.Dispatch(store.AddTask{Task: task}); err != nil {
					return fmt.Errorf("failed to add task: %w", err)
				}
				a.printf("✓ Added to [%s]: %q (%s, %s)\n", column.Title, task.Title, task.Priority, model.ShortID(task.ID))
				return nil
			})
		},
	}
	fields.register(cmd, string(model.PriorityMedium))
	return cmd
}

func newTaskEditCmd(a *app) *cobra.Command {
	var (
		fields taskFields
		title  string
	)

	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Edit a task",
		Long: `Edit a task. Only the flags given are changed.

Examples:
  ironboard task edit 4c5d --title "Write better notes"
  ironboard task edit 4c5d -p low --due ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !anyChanged(cmd, "title", "description", "priority", "due", "created-by") {
				return fmt.Errorf("nothing to change: pass at least one flag")
			}
			return a.withStore(func(st *store.Store) error {
				task, err := query.FindTask(st.Snapshot().Tasks, args[0])
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("title") {
					task.Title = title
				}
				if err := fields.apply(cmd, &task); err != nil {
					return err
				}
				if err := st.Dispatch(store.UpdateTask{Task: task}); err != nil {
					return fmt.Errorf("failed to update task: %w", err)
				}
				a.printf("✓ Updated %q\n", task.Title)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	fields.register(cmd, "")
	return cmd
}

func newTaskMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move [task-id] [column-id]",
		Short: "Move a task to the bottom of another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				task, err := query.FindTask(s.Tasks, args[0])
				if err != nil {
					return err
				}
				column, err := query.FindColumn(s.Columns, args[1])
				if err != nil {
					return err
				}
				if task.ColumnID == column.ID {
					a.printf("%q is already in [%s]\n", task.Title, column.Title)
					return nil
				}

				move := store.MoveTask{
					TaskID:   task.ID,
					ColumnID: column.ID,
					Position: query.NextTaskPosition(s.Tasks, column.ID),
				}
				if err := st.Dispatch(move); err != nil {
					return fmt.Errorf("failed to move task: %w", err)
				}
				a.printf("✓ Moved %q to [%s]\n", task.Title, column.Title)
				return nil
			})
		},
	}
}

func newTaskReorderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder [column-id] [task-id...]",
		Short: "Set the order of tasks in a column",
		Long: `Set the order of tasks in a column. Tasks are numbered in the order
given; tasks of the column left out keep their position.

Examples:
  ironboard task reorder 9f8e 4c5d 1a2b`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				column, err := query.FindColumn(s.Columns, args[0])
				if err != nil {
					return err
				}

				siblings := query.TasksForColumn(s.Tasks, column.ID)
				ids := make([]string, 0, len(args)-1)
				for _, ref := range args[1:] {
					task, err := query.FindTask(siblings, ref)
					if err != nil {
						return fmt.Errorf("in column %q: %w", column.Title, err)
					}
					if slices.Contains(ids, task.ID) {
						return fmt.Errorf("task %s listed twice", model.ShortID(task.ID))
					}
					ids = append(ids, task.ID)
				}

				if err := st.Dispatch(store.ReorderTasks{ColumnID: column.ID, TaskIDs: ids}); err != nil {
					return fmt.Errorf("failed to reorder tasks: %w", err)
				}
				a.printf("✓ Reordered %s in [%s]\n", plural(len(ids), "task"), column.Title)
				return nil
			})
		},
	}
}

func newTaskDeleteCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete [task-id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Long: `Delete a task by its ID.

Examples:
  ironboard task delete 4c5d
  ironboard task rm 4c5d --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				task, err := query.FindTask(st.Snapshot().Tasks, args[0])
				if err != nil {
					return err
				}

				a.printf("About to delete: %q (ID: %s)\n", task.Title, model.ShortID(task.ID))
				ok, err := a.confirm(force, "Are you sure?")
				if err != nil || !ok {
					return err
				}

				if err := st.Dispatch(store.DeleteTask{TaskID: task.ID}); err != nil {
					return fmt.Errorf("failed to delete task: %w", err)
				}
				a.printf("🗑️  Deleted: %q\n", task.Title)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}

func newTaskListCmd(a *app) *cobra.Command {
	var (
		f         filterFlags
		boardRef  string
		columnRef string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List the tasks of a column, or of every column of a board.
Without --column or --board the current board is used.

Examples:
  ironboard task list
  ironboard task list --column 9f8e
  ironboard task list --board 1a2b -p high -s release`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := f.filter()
			if err != nil {
				return err
			}
			return a.withStore(func(st *store.Store) error {
				s := st.Snapshot()
				today := model.Today(a.now())

				if columnRef != "" {
					column, err := query.FindColumn(s.Columns, columnRef)
					if err != nil {
						return err
					}
					a.printColumn(column, filter.Apply(query.TasksForColumn(s.Tasks, column.ID)), today)
					a.println()
					return nil
				}

				board, err := resolveBoard(s.Boards, boardRef)
				if err != nil {
					return err
				}
				a.printBoard(s, board, filter)
				return nil
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&boardRef, "board", "b", "", "Board id")
	cmd.Flags().StringVarP(&columnRef, "column", "c", "", "Column id")
	return cmd
}
