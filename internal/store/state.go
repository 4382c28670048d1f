package store

import (
	"slices"
	"strings"

	"github.com/existflow/ironboard/internal/model"
)

// State is the complete in-memory board data
type State struct {
	Boards   []model.Board  `json:"boards"`
	Columns  []model.Column `json:"columns"`
	Tasks    []model.Task   `json:"tasks"`
	Settings model.Settings `json:"settings"`
}

// DefaultState returns the empty state with default settings
func DefaultState() State {
	return State{
		Boards:   []model.Board{},
		Columns:  []model.Column{},
		Tasks:    []model.Task{},
		Settings: model.DefaultSettings(),
	}
}

// Clone returns a deep copy of s
func (s State) Clone() State {
	return State{
		Boards:   slices.Clone(s.Boards),
		Columns:  slices.Clone(s.Columns),
		Tasks:    slices.Clone(s.Tasks),
		Settings: s.Settings,
	}
}

// Collections is a set of persisted collections
type Collections uint8

const (
	CollectionBoards Collections = 1 << iota
	CollectionColumns
	CollectionTasks
	CollectionSettings

	CollectionNone Collections = 0
	CollectionAll              = CollectionBoards | CollectionColumns | CollectionTasks | CollectionSettings
)

// Has reports whether every collection in other is in c
func (c Collections) Has(other Collections) bool {
	return c&other == other && other != 0
}

// String lists the collections, e.g. "boards,columns"
func (c Collections) String() string {
	if c == CollectionNone {
		return "none"
	}
	var names []string
	if c.Has(CollectionBoards) {
		names = append(names, "boards")
	}
	if c.Has(CollectionColumns) {
		names = append(names, "columns")
	}
	if c.Has(CollectionTasks) {
		names = append(names, "tasks")
	}
	if c.Has(CollectionSettings) {
		names = append(names, "settings")
	}
	return strings.Join(names, ",")
}
