package model

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid record")

// Validate checks the board's required fields
func (b Board) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("%w: board id is empty", ErrInvalid)
	}
	return nil
}

// Validate checks the column's required fields
func (c Column) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: column id is empty", ErrInvalid)
	}
	if c.BoardID == "" {
		return fmt.Errorf("%w: column %s has no board", ErrInvalid, c.ID)
	}
	return nil
}

// Validate checks the task's required fields, priority and due date
func (t Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: task id is empty", ErrInvalid)
	}
	if t.ColumnID == "" {
		return fmt.Errorf("%w: task %s has no column", ErrInvalid, t.ID)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: task %s has priority %q", ErrInvalid, t.ID, t.Priority)
	}
	if _, err := ParseDueDate(t.DueDate); err != nil {
		return fmt.Errorf("%w: task %s: %v", ErrInvalid, t.ID, err)
	}
	return nil
}
