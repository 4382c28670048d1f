package model

import "time"

// Board is the root aggregate: it owns columns, which own tasks.
type Board struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewBoard creates a board whose creation and update timestamps are equal
func NewBoard(id, title, description string, now time.Time) Board {
	now = now.UTC()
	return Board{
		ID:          id,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Touch returns a copy of the board with UpdatedAt set to now
func (b Board) Touch(now time.Time) Board {
	b.UpdatedAt = now.UTC()
	return b
}
