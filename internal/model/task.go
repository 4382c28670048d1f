package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority of a task
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority, highest first
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParsePriority converts user input to a Priority, ignoring case
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("invalid priority %q (want high, medium or low)", s)
	}
	return p, nil
}

// DateLayout is the calendar date format used for due dates
const DateLayout = "2006-01-02"

// ParseDueDate validates a due date. Empty means no due date.
func ParseDueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", s)
	}
	return s, nil
}

// Today returns the current local calendar date in DateLayout
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Task is a unit of work owned by a column
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"createdBy"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"dueDate"`
	ColumnID    string   `json:"columnId"`
	Position    int      `json:"position"`
}

// NewTask creates a task with medium priority at the given position
func NewTask(id, columnID, title string, position int) Task {
	return Task{
		ID:       id,
		Title:    title,
		Priority: PriorityMedium,
		ColumnID: columnID,
		Position: position,
	}
}

// IsOverdue returns true if the task's due date is before today
func (t *Task) IsOverdue(today string) bool {
	return t.DueDate != "" && t.DueDate < today
}

// IsDueToday returns true if the task is due on today's date
func (t *Task) IsDueToday(today string) bool {
	return t.DueDate != "" && t.DueDate == today
}
