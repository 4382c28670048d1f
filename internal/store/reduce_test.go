package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/existflow/ironboard/internal/model"
)

// fixture builds two boards: b1 with columns c1 (t1, t2) and c2 (t3),
// b2 with column c3 (t4).
func fixture() State {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := DefaultState()
	s.Boards = []model.Board{
		model.NewBoard("b1", "Sprint 1", "", now),
		model.NewBoard("b2", "Sprint 2", "", now),
	}
	s.Columns = []model.Column{
		model.NewColumn("c1", "b1", "To Do", 0),
		model.NewColumn("c2", "b1", "Done", 1),
		model.NewColumn("c3", "b2", "To Do", 0),
	}
	s.Tasks = []model.Task{
		{ID: "t1", Title: "one", Priority: model.PriorityHigh, ColumnID: "c1", Position: 0},
		{ID: "t2", Title: "two", Priority: model.PriorityLow, ColumnID: "c1", Position: 1},
		{ID: "t3", Title: "three", Priority: model.PriorityMedium, ColumnID: "c2", Position: 0},
		{ID: "t4", Title: "four", Priority: model.PriorityHigh, ColumnID: "c3", Position: 0},
	}
	return s
}

func ids[T any](items []T, idOf func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, idOf(it))
	}
	return out
}

func TestDeleteBoardCascades(t *testing.T) {
	before := fixture()
	snapshot := before.Clone()

	after, changed := Reduce(before, DeleteBoard{BoardID: "b1"})

	if want := CollectionBoards | CollectionColumns | CollectionTasks; changed != want {
		t.Errorf("Expected changed %s, got %s", want, changed)
	}
	if got := ids(after.Boards, boardID); !reflect.DeepEqual(got, []string{"b2"}) {
		t.Errorf("Expected boards [b2], got %v", got)
	}
	if got := ids(after.Columns, columnID); !reflect.DeepEqual(got, []string{"c3"}) {
		t.Errorf("Expected columns [c3], got %v", got)
	}
	if got := ids(after.Tasks, taskID); !reflect.DeepEqual(got, []string{"t4"}) {
		t.Errorf("Expected tasks [t4], got %v", got)
	}
	if !reflect.DeepEqual(before, snapshot) {
		t.Error("Reduce modified its input state")
	}
}

func TestDeleteColumnCascades(t *testing.T) {
	after, changed := Reduce(fixture(), DeleteColumn{ColumnID: "c1"})

	if changed != CollectionColumns|CollectionTasks {
		t.Errorf("Expected columns,tasks changed, got %s", changed)
	}
	if got := ids(after.Columns, columnID); !reflect.DeepEqual(got, []string{"c2", "c3"}) {
		t.Errorf("Expected columns [c2 c3], got %v", got)
	}
	if got := ids(after.Tasks, taskID); !reflect.DeepEqual(got, []string{"t3", "t4"}) {
		t.Errorf("Expected tasks [t3 t4], got %v", got)
	}
	if len(after.Boards) != 2 {
		t.Errorf("Expected boards untouched, got %d", len(after.Boards))
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	actions := []Action{
		UpdateBoard{Board: model.Board{ID: "missing", Title: "x"}},
		UpdateColumn{Column: model.Column{ID: "missing", BoardID: "b1"}},
		UpdateTask{Task: model.Task{ID: "missing", ColumnID: "c1", Priority: model.PriorityLow}},
		DeleteBoard{BoardID: "missing"},
		DeleteColumn{ColumnID: "missing"},
		DeleteTask{TaskID: "missing"},
		MoveTask{TaskID: "missing", ColumnID: "c2", Position: 0},
		ReorderTasks{ColumnID: "missing", TaskIDs: []string{"t1"}},
	}

	for _, a := range actions {
		before := fixture()
		after, changed := Reduce(before, a)
		if changed != CollectionNone {
			t.Errorf("%s: expected no changes, got %s", a.Type(), changed)
		}
		if !reflect.DeepEqual(before, after) {
			t.Errorf("%s: expected state to be unchanged", a.Type())
		}
	}
}

func TestUpdateReplacesByID(t *testing.T) {
	s := fixture()
	updated := s.Tasks[1]
	updated.Title = "renamed"
	updated.Priority = model.PriorityHigh

	after, changed := Reduce(s, UpdateTask{Task: updated})
	if changed != CollectionTasks {
		t.Errorf("Expected tasks changed, got %s", changed)
	}
	if after.Tasks[1] != updated {
		t.Errorf("Expected task replaced, got %+v", after.Tasks[1])
	}
	if s.Tasks[1].Title != "two" {
		t.Error("Expected original state to keep the old task")
	}

	col := s.Columns[0]
	col.Title = "Backlog"
	after, _ = Reduce(s, UpdateColumn{Column: col})
	if after.Columns[0].Title != "Backlog" {
		t.Errorf("Expected column renamed, got %s", after.Columns[0].Title)
	}

	board := s.Boards[0]
	board.Title = "Sprint 1b"
	after, _ = Reduce(s, UpdateBoard{Board: board})
	if after.Boards[0].Title != "Sprint 1b" {
		t.Errorf("Expected board renamed, got %s", after.Boards[0].Title)
	}
}

func TestAddDoesNotAliasInput(t *testing.T) {
	s := DefaultState()
	s.Tasks = make([]model.Task, 1, 4)
	s.Tasks[0] = model.Task{ID: "t1", ColumnID: "c1", Priority: model.PriorityLow}

	a, _ := Reduce(s, AddTask{Task: model.Task{ID: "a", ColumnID: "c1"}})
	b, _ := Reduce(s, AddTask{Task: model.Task{ID: "b", ColumnID: "c1"}})

	if a.Tasks[1].ID != "a" || b.Tasks[1].ID != "b" {
		t.Errorf("Expected independent appends, got %s and %s", a.Tasks[1].ID, b.Tasks[1].ID)
	}
	if len(s.Tasks) != 1 {
		t.Errorf("Expected input length 1, got %d", len(s.Tasks))
	}
}

func TestReorderTasksIsIdempotent(t *testing.T) {
	order := ReorderTasks{ColumnID: "c1", TaskIDs: []string{"t2", "t1"}}

	once, changed := Reduce(fixture(), order)
	if changed != CollectionTasks {
		t.Errorf("Expected tasks changed, got %s", changed)
	}
	twice, changed := Reduce(once, order)
	if changed != CollectionNone {
		t.Errorf("Expected second reorder to change nothing, got %s", changed)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("Expected reorder to be idempotent")
	}

	if once.Tasks[0].Position != 1 || once.Tasks[1].Position != 0 {
		t.Errorf("Expected t1=1 t2=0, got t1=%d t2=%d", once.Tasks[0].Position, once.Tasks[1].Position)
	}
}

func TestReorderTasksLeavesUnlistedAndOtherColumns(t *testing.T) {
	s := fixture()
	s.Tasks = append(s.Tasks, model.Task{ID: "t5", ColumnID: "c1", Position: 7, Priority: model.PriorityLow})

	after, _ := Reduce(s, ReorderTasks{ColumnID: "c1", TaskIDs: []string{"t2", "t1", "t3"}})

	if after.Tasks[4].Position != 7 {
		t.Errorf("Expected unlisted task to keep position 7, got %d", after.Tasks[4].Position)
	}
	if after.Tasks[2].Position != 0 {
		t.Errorf("Expected task in another column to keep position 0, got %d", after.Tasks[2].Position)
	}
}

func TestMoveTaskKeepsSiblingPositions(t *testing.T) {
	after, changed := Reduce(fixture(), MoveTask{TaskID: "t1", ColumnID: "c2", Position: 1})
	if changed != CollectionTasks {
		t.Errorf("Expected tasks changed, got %s", changed)
	}

	moved := after.Tasks[0]
	if moved.ColumnID != "c2" || moved.Position != 1 {
		t.Errorf("Expected t1 in c2 at 1, got %s at %d", moved.ColumnID, moved.Position)
	}
	// t2 keeps position 1 in c1, leaving a gap at 0
	if after.Tasks[1].Position != 1 {
		t.Errorf("Expected t2 to keep position 1, got %d", after.Tasks[1].Position)
	}
}

func TestSettingsActions(t *testing.T) {
	s := DefaultState()

	s, changed := Reduce(s, ToggleDarkMode{})
	if !s.Settings.DarkMode || changed != CollectionSettings {
		t.Errorf("Expected dark mode on with settings changed, got %v %s", s.Settings.DarkMode, changed)
	}
	s, _ = Reduce(s, ToggleDarkMode{})
	if s.Settings.DarkMode {
		t.Error("Expected dark mode off after second toggle")
	}

	color := "#000000"
	s, _ = Reduce(s, UpdateThemeColors{Colors: model.ThemeColorsPatch{CoffeePotDark: &color}})
	if s.Settings.ThemeColors.CoffeePotDark != color {
		t.Errorf("Expected coffeePotDark %s, got %s", color, s.Settings.ThemeColors.CoffeePotDark)
	}
	if s.Settings.ThemeColors.Rosewater != model.DefaultThemeColors().Rosewater {
		t.Error("Expected other colours untouched")
	}

	s, _ = Reduce(s, ResetThemeColors{})
	if s.Settings.ThemeColors != model.DefaultThemeColors() {
		t.Errorf("Expected default colours, got %+v", s.Settings.ThemeColors)
	}
}

func TestLoadInitialDataAndClear(t *testing.T) {
	loaded, changed := Reduce(DefaultState(), LoadInitialData{State: fixture()})
	if changed != CollectionNone {
		t.Errorf("Expected load to persist nothing, got %s", changed)
	}
	if !reflect.DeepEqual(loaded, fixture()) {
		t.Error("Expected loaded state to equal the snapshot")
	}

	empty, _ := Reduce(DefaultState(), LoadInitialData{State: State{Settings: model.DefaultSettings()}})
	if empty.Boards == nil || empty.Columns == nil || empty.Tasks == nil {
		t.Error("Expected nil collections to load as empty")
	}

	cleared, changed := Reduce(loaded, ClearAllData{})
	if changed != CollectionAll {
		t.Errorf("Expected all collections changed, got %s", changed)
	}
	if !reflect.DeepEqual(cleared, DefaultState()) {
		t.Error("Expected default state after clear")
	}
}

func TestSprintScenario(t *testing.T) {
	now := time.Now()
	s := DefaultState()

	board := model.NewBoard(model.NewID(), "Sprint 1", "", now)
	s, _ = Reduce(s, AddBoard{Board: board})
	if len(s.Boards) != 1 || s.Boards[0].ID == "" {
		t.Fatalf("Expected one board with an id, got %+v", s.Boards)
	}
	if !s.Boards[0].CreatedAt.Equal(s.Boards[0].UpdatedAt) {
		t.Error("Expected createdAt == updatedAt")
	}

	col := model.NewColumn(model.NewID(), board.ID, "To Do", 0)
	s, _ = Reduce(s, AddColumn{Column: col})

	task1 := model.NewTask(model.NewID(), col.ID, "first", 0)
	task2 := model.NewTask(model.NewID(), col.ID, "second", 1)
	s, _ = Reduce(s, AddTask{Task: task1})
	s, _ = Reduce(s, AddTask{Task: task2})

	s, _ = Reduce(s, ReorderTasks{ColumnID: col.ID, TaskIDs: []string{task2.ID, task1.ID}})
	for _, task := range s.Tasks {
		switch task.ID {
		case task1.ID:
			if task.Position != 1 {
				t.Errorf("Expected task1 at 1, got %d", task.Position)
			}
		case task2.ID:
			if task.Position != 0 {
				t.Errorf("Expected task2 at 0, got %d", task.Position)
			}
		}
	}

	s, _ = Reduce(s, DeleteColumn{ColumnID: col.ID})
	if len(s.Tasks) != 0 {
		t.Errorf("Expected tasks removed with column, got %d", len(s.Tasks))
	}
	if len(s.Boards) != 1 {
		t.Errorf("Expected board to remain, got %d", len(s.Boards))
	}
}

func TestCollectionsString(t *testing.T) {
	if got := (CollectionBoards | CollectionTasks).String(); got != "boards,tasks" {
		t.Errorf("Expected boards,tasks, got %s", got)
	}
	if got := CollectionNone.String(); got != "none" {
		t.Errorf("Expected none, got %s", got)
	}
	if CollectionNone.Has(CollectionNone) {
		t.Error("Expected empty set to contain nothing")
	}
}
