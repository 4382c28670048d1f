package query

import (
	"testing"
	"time"

	"github.com/existflow/ironboard/internal/model"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	boards := []model.Board{
		model.NewBoard("b1", "Sprint 1", "", now),
		model.NewBoard("b2", "Sprint 2", "", now),
	}
	columns := []model.Column{
		model.NewColumn("c1", "b1", "To Do", 0),
		model.NewColumn("c2", "b1", "Done", 1),
		model.NewColumn("c3", "b2", "To Do", 0),
	}
	tasks := []model.Task{
		{ID: "t1", Priority: model.PriorityHigh, ColumnID: "c1", DueDate: "2024-05-31"},
		{ID: "t2", Priority: model.PriorityHigh, ColumnID: "c1", DueDate: "2024-06-01"},
		{ID: "t3", Priority: model.PriorityLow, ColumnID: "c2", DueDate: "2024-06-02"},
		{ID: "t4", Priority: model.PriorityMedium, ColumnID: "c2"},
		{ID: "t5", Priority: model.PriorityMedium, ColumnID: "c3", DueDate: "2023-12-31"},
	}

	s := Summarize(boards, columns, tasks, "2024-06-01")

	if s.Boards != 2 || s.Columns != 3 || s.Tasks != 5 {
		t.Errorf("Expected totals 2/3/5, got %d/%d/%d", s.Boards, s.Columns, s.Tasks)
	}
	if s.Overdue != 2 {
		t.Errorf("Expected 2 overdue, got %d", s.Overdue)
	}
	if s.DueToday != 1 {
		t.Errorf("Expected 1 due today, got %d", s.DueToday)
	}

	wantPriority := map[model.Priority]int{
		model.PriorityHigh:   2,
		model.PriorityMedium: 2,
		model.PriorityLow:    1,
	}
	for p, n := range wantPriority {
		if s.ByPriority[p] != n {
			t.Errorf("Expected %d %s tasks, got %d", n, p, s.ByPriority[p])
		}
	}

	wantColumns := []int{2, 2, 1}
	for i, c := range s.ByColumn {
		if c.ColumnID != columns[i].ID || c.Tasks != wantColumns[i] {
			t.Errorf("Column %d: expected %s with %d tasks, got %+v", i, columns[i].ID, wantColumns[i], c)
		}
	}

	if len(s.ByBoard) != 2 {
		t.Fatalf("Expected 2 board counts, got %d", len(s.ByBoard))
	}
	if b := s.ByBoard[0]; b.BoardID != "b1" || b.Columns != 2 || b.Tasks != 4 {
		t.Errorf("Unexpected b1 counts %+v", b)
	}
	if b := s.ByBoard[1]; b.BoardID != "b2" || b.Columns != 1 || b.Tasks != 1 {
		t.Errorf("Unexpected b2 counts %+v", b)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, nil, "2024-06-01")
	if s.Tasks != 0 || s.Overdue != 0 || s.DueToday != 0 {
		t.Errorf("Expected zero counts, got %+v", s)
	}
	for _, p := range model.Priorities {
		if n, ok := s.ByPriority[p]; !ok || n != 0 {
			t.Errorf("Expected %s present with 0, got %d (present %v)", p, n, ok)
		}
	}
	if s.ByColumn == nil || s.ByBoard == nil {
		t.Error("Expected non-nil breakdown slices")
	}
}
