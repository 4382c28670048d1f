package store

import "github.com/existflow/ironboard/internal/model"

// ActionType names an action on the wire
type ActionType string

const (
	TypeAddBoard          ActionType = "add_board"
	TypeUpdateBoard       ActionType = "update_board"
	TypeDeleteBoard       ActionType = "delete_board"
	TypeAddColumn         ActionType = "add_column"
	TypeUpdateColumn      ActionType = "update_column"
	TypeDeleteColumn      ActionType = "delete_column"
	TypeAddTask           ActionType = "add_task"
	TypeUpdateTask        ActionType = "update_task"
	TypeDeleteTask        ActionType = "delete_task"
	TypeMoveTask          ActionType = "move_task"
	TypeReorderTasks      ActionType = "reorder_tasks"
	TypeToggleDarkMode    ActionType = "toggle_dark_mode"
	TypeUpdateThemeColors ActionType = "update_theme_colors"
	TypeResetThemeColors  ActionType = "reset_theme_colors"
	TypeLoadInitialData   ActionType = "load_initial_data"
	TypeClearAllData      ActionType = "clear_all_data"
)

// Action is one of the closed set of state transitions below
type Action interface {
	Type() ActionType
	apply(State) (State, Collections)
}

// AddBoard appends a board
type AddBoard struct {
	Board model.Board `json:"board"`
}

// UpdateBoard replaces the board with the same id
type UpdateBoard struct {
	Board model.Board `json:"board"`
}

// DeleteBoard removes a board with its columns and their tasks
type DeleteBoard struct {
	BoardID string `json:"boardId"`
}

// AddColumn appends a column
type AddColumn struct {
	Column model.Column `json:"column"`
}

// UpdateColumn replaces the column with the same id
type UpdateColumn struct {
	Column model.Column `json:"column"`
}

// DeleteColumn removes a column and its tasks
type DeleteColumn struct {
	ColumnID string `json:"columnId"`
}

// AddTask appends a task
type AddTask struct {
	Task model.Task `json:"task"`
}

// UpdateTask replaces the task with the same id
type UpdateTask struct {
	Task model.Task `json:"task"`
}

// DeleteTask removes a single task
type DeleteTask struct {
	TaskID string `json:"taskId"`
}

// MoveTask reassigns a task's column and position. Siblings are not renumbered.
type MoveTask struct {
	TaskID   string `json:"taskId"`
	ColumnID string `json:"newColumnId"`
	Position int    `json:"newPosition"`
}

// ReorderTasks sets the position of each task in ColumnID to its index in TaskIDs
type ReorderTasks struct {
	ColumnID string   `json:"columnId"`
	TaskIDs  []string `json:"taskIds"`
}

// ToggleDarkMode flips Settings.DarkMode
type ToggleDarkMode struct{}

// UpdateThemeColors merges the non-nil colours into the settings
type UpdateThemeColors struct {
	Colors model.ThemeColorsPatch `json:"colors"`
}

// ResetThemeColors restores the default palette
type ResetThemeColors struct{}

// LoadInitialData replaces the whole state. It is never persisted.
type LoadInitialData struct {
	State State `json:"state"`
}

// ClearAllData resets the state and wipes the backing store
type ClearAllData struct{}

func (AddBoard) Type() ActionType          { return TypeAddBoard }
func (UpdateBoard) Type() ActionType       { return TypeUpdateBoard }
func (DeleteBoard) Type() ActionType       { return TypeDeleteBoard }
func (AddColumn) Type() ActionType         { return TypeAddColumn }
func (UpdateColumn) Type() ActionType      { return TypeUpdateColumn }
func (DeleteColumn) Type() ActionType      { return TypeDeleteColumn }
func (AddTask) Type() ActionType           { return TypeAddTask }
func (UpdateTask) Type() ActionType        { return TypeUpdateTask }
func (DeleteTask) Type() ActionType        { return TypeDeleteTask }
func (MoveTask) Type() ActionType          { return TypeMoveTask }
func (ReorderTasks) Type() ActionType      { return TypeReorderTasks }
func (ToggleDarkMode) Type() ActionType    { return TypeToggleDarkMode }
func (UpdateThemeColors) Type() ActionType { return TypeUpdateThemeColors }
func (ResetThemeColors) Type() ActionType  { return TypeResetThemeColors }
func (LoadInitialData) Type() ActionType   { return TypeLoadInitialData }
func (ClearAllData) Type() ActionType      { return TypeClearAllData }
