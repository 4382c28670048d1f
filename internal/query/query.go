// Package query derives read-only views of the board state.
// Nothing here is cached; every call walks the slices it is given.
package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/existflow/ironboard/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// PriorityAll disables priority filtering
const PriorityAll = "all"

// ColumnsForBoard returns the board's columns ordered by position
func ColumnsForBoard(columns []model.Column, boardID string) []model.Column {
	out := make([]model.Column, 0)
	for _, c := range columns {
		if c.BoardID == boardID {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Column) int { return a.Position - b.Position })
	return out
}

// TasksForColumn returns the column's tasks ordered by position
func TasksForColumn(tasks []model.Task, columnID string) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.ColumnID == columnID {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Task) int { return a.Position - b.Position })
	return out
}

// TasksForBoard returns every task in any column of the board, in state order
func TasksForBoard(columns []model.Column, tasks []model.Task, boardID string) []model.Task {
	owned := make(map[string]bool)
	for _, c := range columns {
		if c.BoardID == boardID {
			owned[c.ID] = true
		}
	}
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if owned[t.ColumnID] {
			out = append(out, t)
		}
	}
	return out
}

// NextColumnPosition is the position a new column of the board gets
func NextColumnPosition(columns []model.Column, boardID string) int {
	n := 0
	for _, c := range columns {
		if c.BoardID == boardID {
			n++
		}
	}
	return n
}

// NextTaskPosition is the position a task added or moved to the column gets
func NextTaskPosition(tasks []model.Task, columnID string) int {
	n := 0
	for _, t := range tasks {
		if t.ColumnID == columnID {
			n++
		}
	}
	return n
}

// Filter narrows a task list. Zero values match everything.
type Filter struct {
	Search   string // case-insensitive substring of title or description
	Priority string // "high", "medium", "low", or "all"/"" for any
	DueDate  string // exact YYYY-MM-DD match
}

// IsZero reports whether the filter matches everything
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" &&
		(f.Priority == "" || f.Priority == PriorityAll) &&
		f.DueDate == ""
}

// Match reports whether t passes every part of the filter
func (f Filter) Match(t model.Task) bool {
	return MatchSearch(t, f.Search) && MatchPriority(t, f.Priority) && MatchDueDate(t, f.DueDate)
}

// Apply returns the tasks that match, preserving order
func (f Filter) Apply(tasks []model.Task) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// MatchSearch is a case-insensitive substring test on title and description
func MatchSearch(t model.Task, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// MatchPriority tests priority equality; "all" or empty passes everything
func MatchPriority(t model.Task, priority string) bool {
	if priority == "" || priority == PriorityAll {
		return true
	}
	return string(t.Priority) == priority
}

// MatchDueDate tests exact due date equality; empty passes everything
func MatchDueDate(t model.Task, due string) bool {
	return due == "" || t.DueDate == due
}

// FindBoard resolves a full id or unique id prefix
func FindBoard(boards []model.Board, ref string) (model.Board, error) {
	return findByPrefix(boards, ref, "board", func(b model.Board) string { return b.ID })
}

// FindColumn resolves a full id or unique id prefix
func FindColumn(columns []model.Column, ref string) (model.Column, error) {
	return findByPrefix(columns, ref, "column", func(c model.Column) string { return c.ID })
}

// FindTask resolves a full id or unique id prefix
func FindTask(tasks []model.Task, ref string) (model.Task, error) {
	return findByPrefix(tasks, ref, "task", func(t model.Task) string { return t.ID })
}

func findByPrefix[T any](items []T, ref, kind string, idOf func(T) string) (T, error) {
	var zero T
	if ref == "" {
		return zero, fmt.Errorf("%s %w: empty id", kind, ErrNotFound)
	}

	var (
		match T
		count int
	)
	for _, it := range items {
		id := idOf(it)
		if id == ref {
			return it, nil
		}
		if strings.HasPrefix(id, ref) {
			match = it
			count++
		}
	}
	switch count {
	case 0:
		return zero, fmt.Errorf("%s %w: %s", kind, ErrNotFound, ref)
	case 1:
		return match, nil
	default:
		return zero, fmt.Errorf("%w: %q matches %d %ss", ErrAmbiguous, ref, count, kind)
	}
}
