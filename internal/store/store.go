package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
)

// ErrPersist wraps failures of the write-through to the persister.
// The in-memory state keeps the change when it is returned.
var ErrPersist = errors.New("failed to persist state")

// Persister loads and saves each collection of the state
type Persister interface {
	LoadBoards() ([]model.Board, error)
	SaveBoards([]model.Board) error
	LoadColumns() ([]model.Column, error)
	SaveColumns([]model.Column) error
	LoadTasks() ([]model.Task, error)
	SaveTasks([]model.Task) error
	LoadSettings() (model.Settings, error)
	SaveSettings(model.Settings) error
	Clear() error
}

// Store owns the board state. Every change goes through Dispatch.
type Store struct {
	mu      sync.RWMutex
	state   State
	persist Persister
	loaded  bool
}

// New creates a store holding the default state. A nil persister keeps
// the state in memory only.
func New(p Persister) *Store {
	return &Store{
		state:   DefaultState(),
		persist: p,
	}
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Loaded reports whether LoadInitialData has been applied
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Dispatch applies a and writes the changed collections through to the persister
func (s *Store) Dispatch(a Action) error {
	if a == nil {
		return ErrUnknownAction
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := Reduce(s.state, a)
	s.state = next

	logger.Debug("Action applied",
		logger.F("action", string(a.Type())),
		logger.F("changed", changed.String()))

	switch a.(type) {
	case LoadInitialData:
		s.loaded = true
		return nil
	case ClearAllData:
		if s.persist == nil {
			return nil
		}
		if err := s.persist.Clear(); err != nil {
			logger.Error("Failed to clear storage", logger.F("error", err))
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
		return nil
	}

	return s.save(next, changed)
}

func (s *Store) save(state State, changed Collections) error {
	if s.persist == nil || changed == CollectionNone {
		return nil
	}

	var errs []error
	if changed.Has(CollectionBoards) {
		if err := s.persist.SaveBoards(state.Boards); err != nil {
			errs = append(errs, fmt.Errorf("boards: %w", err))
		}
	}
	if changed.Has(CollectionColumns) {
		if err := s.persist.SaveColumns(state.Columns); err != nil {
			errs = append(errs, fmt.Errorf("columns: %w", err))
		}
	}
	if changed.Has(CollectionTasks) {
		if err := s.persist.SaveTasks(state.Tasks); err != nil {
			errs = append(errs, fmt.Errorf("tasks: %w", err))
		}
	}
	if changed.Has(CollectionSettings) {
		if err := s.persist.SaveSettings(state.Settings); err != nil {
			errs = append(errs, fmt.Errorf("settings: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("Failed to persist state",
			logger.F("collections", changed.String()),
			logger.F("error", err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Hydrate reads every collection from the persister and loads it with LoadInitialData
func (s *Store) Hydrate() error {
	if s.persist == nil {
		return s.Dispatch(LoadInitialData{State: DefaultState()})
	}

	boards, err := s.persist.LoadBoards()
	if err != nil {
		return fmt.Errorf("failed to load boards: %w", err)
	}
	columns, err := s.persist.LoadColumns()
	if err != nil {
		return fmt.Errorf("failed to load columns: %w", err)
	}
	tasks, err := s.persist.LoadTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	settings, err := s.persist.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logger.Info("State loaded",
		logger.F("boards", len(boards)),
		logger.F("columns", len(columns)),
		logger.F("tasks", len(tasks)))

	return s.Dispatch(LoadInitialData{State: State{
		Boards:   boards,
		Columns:  columns,
		Tasks:    tasks,
		Settings: settings,
	}})
}
