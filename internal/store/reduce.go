package store

import (
	"slices"

	"github.com/existflow/ironboard/internal/model"
)

// Reduce applies a to state and reports which collections changed.
// The input state is never modified. Actions naming an unknown id return
// the input unchanged with CollectionNone.
func Reduce(state State, a Action) (State, Collections) {
	if a == nil {
		return state, CollectionNone
	}
	return a.apply(state)
}

// replaceByID returns a copy of items with the element matching id replaced,
// or nil and false when no element matches.
func replaceByID[T any](items []T, id string, idOf func(T) string, v T) ([]T, bool) {
	i := slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
	if i < 0 {
		return nil, false
	}
	out := slices.Clone(items)
	out[i] = v
	return out, true
}

func boardID(b model.Board) string   { return b.ID }
func columnID(c model.Column) string { return c.ID }
func taskID(t model.Task) string     { return t.ID }

func (a AddBoard) apply(s State) (State, Collections) {
	s.Boards = append(slices.Clip(s.Boards), a.Board)
	return s, CollectionBoards
}

func (a UpdateBoard) apply(s State) (State, Collections) {
	boards, ok := replaceByID(s.Boards, a.Board.ID, boardID, a.Board)
	if !ok {
		return s, CollectionNone
	}
	s.Boards = boards
	return s, CollectionBoards
}

func (a DeleteBoard) apply(s State) (State, Collections) {
	removedColumns := make(map[string]bool)
	for _, c := range s.Columns {
		if c.BoardID == a.BoardID {
			removedColumns[c.ID] = true
		}
	}
	hasBoard := slices.ContainsFunc(s.Boards, func(b model.Board) bool { return b.ID == a.BoardID })
	if !hasBoard && len(removedColumns) == 0 {
		return s, CollectionNone
	}

	s.Boards = slices.DeleteFunc(slices.Clone(s.Boards), func(b model.Board) bool {
		return b.ID == a.BoardID
	})
	s.Columns = slices.DeleteFunc(slices.Clone(s.Columns), func(c model.Column) bool {
		return removedColumns[c.ID]
	})
	s.Tasks = slices.DeleteFunc(slices.Clone(s.Tasks), func(t model.Task) bool {
		return removedColumns[t.ColumnID]
	})
	return s, CollectionBoards | CollectionColumns | CollectionTasks
}

func (a AddColumn) apply(s State) (State, Collections) {
	s.Columns = append(slices.Clip(s.Columns), a.Column)
	return s, CollectionColumns
}

func (a UpdateColumn) apply(s State) (State, Collections) {
	columns, ok := replaceByID(s.Columns, a.Column.ID, columnID, a.Column)
	if !ok {
		return s, CollectionNone
	}
	s.Columns = columns
	return s, CollectionColumns
}

func (a DeleteColumn) apply(s State) (State, Collections) {
	hasColumn := slices.ContainsFunc(s.Columns, func(c model.Column) bool { return c.ID == a.ColumnID })
	hasTasks := slices.ContainsFunc(s.Tasks, func(t model.Task) bool { return t.ColumnID == a.ColumnID })
	if !hasColumn && !hasTasks {
		return s, CollectionNone
	}

	s.Columns = slices.DeleteFunc(slices.Clone(s.Columns), func(c model.Column) bool {
		return c.ID == a.ColumnID
	})
	s.Tasks = slices.DeleteFunc(slices.Clone(s.Tasks), func(t model.Task) bool {
		return t.ColumnID == a.ColumnID
	})
	return s, CollectionColumns | CollectionTasks
}

func (a AddTask) apply(s State) (State, Collections) {
	s.Tasks = append(slices.Clip(s.Tasks), a.Task)
	return s, CollectionTasks
}

func (a UpdateTask) apply(s State) (State, Collections) {
	tasks, ok := replaceByID(s.Tasks, a.Task.ID, taskID, a.Task)
	if !ok {
		return s, CollectionNone
	}
	s.Tasks = tasks
	return s, CollectionTasks
}

func (a DeleteTask) apply(s State) (State, Collections) {
	if !slices.ContainsFunc(s.Tasks, func(t model.Task) bool { return t.ID == a.TaskID }) {
		return s, CollectionNone
	}
	s.Tasks = slices.DeleteFunc(slices.Clone(s.Tasks), func(t model.Task) bool {
		return t.ID == a.TaskID
	})
	return s, CollectionTasks
}

func (a MoveTask) apply(s State) (State, Collections) {
	i := slices.IndexFunc(s.Tasks, func(t model.Task) bool { return t.ID == a.TaskID })
	if i < 0 {
		return s, CollectionNone
	}
	tasks := slices.Clone(s.Tasks)
	tasks[i].ColumnID = a.ColumnID
	tasks[i].Position = a.Position
	s.Tasks = tasks
	return s, CollectionTasks
}

func (a ReorderTasks) apply(s State) (State, Collections) {
	index := make(map[string]int, len(a.TaskIDs))
	for i, id := range a.TaskIDs {
		// first occurrence wins
		if _, seen := index[id]; !seen {
			index[id] = i
		}
	}

	var tasks []model.Task
	for i, t := range s.Tasks {
		if t.ColumnID != a.ColumnID {
			continue
		}
		pos, ok := index[t.ID]
		if !ok || t.Position == pos {
			continue
		}
		if tasks == nil {
			tasks = slices.Clone(s.Tasks)
		}
		tasks[i].Position = pos
	}
	if tasks == nil {
		return s, CollectionNone
	}
	s.Tasks = tasks
	return s, CollectionTasks
}

func (ToggleDarkMode) apply(s State) (State, Collections) {
	s.Settings.DarkMode = !s.Settings.DarkMode
	return s, CollectionSettings
}

func (a UpdateThemeColors) apply(s State) (State, Collections) {
	s.Settings.ThemeColors = s.Settings.ThemeColors.Merge(a.Colors)
	return s, CollectionSettings
}

func (ResetThemeColors) apply(s State) (State, Collections) {
	s.Settings.ThemeColors = model.DefaultThemeColors()
	return s, CollectionSettings
}

func (a LoadInitialData) apply(State) (State, Collections) {
	next := a.State.Clone()
	if next.Boards == nil {
		next.Boards = []model.Board{}
	}
	if next.Columns == nil {
		next.Columns = []model.Column{}
	}
	if next.Tasks == nil {
		next.Tasks = []model.Task{}
	}
	return next, CollectionNone
}

func (ClearAllData) apply(State) (State, Collections) {
	return DefaultState(), CollectionAll
}
