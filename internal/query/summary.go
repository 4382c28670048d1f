package query

import "github.com/existflow/ironboard/internal/model"

// ColumnCount is the number of tasks in one column
type ColumnCount struct {
	ColumnID string `json:"columnId"`
	Title    string `json:"title"`
	Tasks    int    `json:"tasks"`
}

// BoardCount is the number of columns and tasks owned by one board
type BoardCount struct {
	BoardID string `json:"boardId"`
	Title   string `json:"title"`
	Columns int    `json:"columns"`
	Tasks   int    `json:"tasks"`
}

// Summary holds the aggregate counts shown by the stats views
type Summary struct {
	Boards     int                    `json:"boards"`
	Columns    int                    `json:"columns"`
	Tasks      int                    `json:"tasks"`
	ByPriority map[model.Priority]int `json:"byPriority"`
	ByColumn   []ColumnCount          `json:"byColumn"`
	ByBoard    []BoardCount           `json:"byBoard"`
	Overdue    int                    `json:"overdue"`
	DueToday   int                    `json:"dueToday"`
}

// Summarize counts entities as of today (YYYY-MM-DD). Tasks without a due
// date are neither overdue nor due today.
func Summarize(boards []model.Board, columns []model.Column, tasks []model.Task, today string) Summary {
	s := Summary{
		Boards:     len(boards),
		Columns:    len(columns),
		Tasks:      len(tasks),
		ByPriority: make(map[model.Priority]int, len(model.Priorities)),
		ByColumn:   make([]ColumnCount, 0, len(columns)),
		ByBoard:    make([]BoardCount, 0, len(boards)),
	}
	for _, p := range model.Priorities {
		s.ByPriority[p] = 0
	}

	perColumn := make(map[string]int, len(columns))
	for i := range tasks {
		t := &tasks[i]
		s.ByPriority[t.Priority]++
		perColumn[t.ColumnID]++
		if t.IsOverdue(today) {
			s.Overdue++
		}
		if t.IsDueToday(today) {
			s.DueToday++
		}
	}

	boardColumns := make(map[string]int, len(boards))
	boardTasks := make(map[string]int, len(boards))
	for _, c := range columns {
		s.ByColumn = append(s.ByColumn, ColumnCount{ColumnID: c.ID, Title: c.Title, Tasks: perColumn[c.ID]})
		boardColumns[c.BoardID]++
		boardTasks[c.BoardID] += perColumn[c.ID]
	}
	for _, b := range boards {
		s.ByBoard = append(s.ByBoard, BoardCount{
			BoardID: b.ID,
			Title:   b.Title,
			Columns: boardColumns[b.ID],
			Tasks:   boardTasks[b.ID],
		})
	}
	return s
}
