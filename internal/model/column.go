package model

// Column is an ordered lane within a board
type Column struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	BoardID  string `json:"boardId"`
	Position int    `json:"position"`
}

// NewColumn creates a column at the given position
func NewColumn(id, boardID, title string, position int) Column {
	return Column{
		ID:       id,
		Title:    title,
		BoardID:  boardID,
		Position: position,
	}
}
