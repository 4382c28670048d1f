package storage

import (
	"fmt"

	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
)

// Repository loads and saves board collections on a KV.
// It satisfies store.Persister.
type Repository struct {
	kv KV
}

// NewRepository creates a repository on kv
func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

// KV returns the underlying key-value store
func (r *Repository) KV() KV {
	return r.kv
}

func (r *Repository) LoadBoards() ([]model.Board, error) {
	return loadCollection[model.Board](r, KeyBoards)
}

func (r *Repository) SaveBoards(boards []model.Board) error {
	return r.save(KeyBoards, nonNil(boards))
}

func (r *Repository) LoadColumns() ([]model.Column, error) {
	return loadCollection[model.Column](r, KeyColumns)
}

func (r *Repository) SaveColumns(columns []model.Column) error {
	return r.save(KeyColumns, nonNil(columns))
}

func (r *Repository) LoadTasks() ([]model.Task, error) {
	return loadCollection[model.Task](r, KeyTasks)
}

func (r *Repository) SaveTasks(tasks []model.Task) error {
	return r.save(KeyTasks, nonNil(tasks))
}

// LoadSettings returns the saved settings, or the defaults when missing or unreadable
func (r *Repository) LoadSettings() (model.Settings, error) {
	raw, ok, err := r.kv.Get(KeySettings)
	if err != nil {
		return model.DefaultSettings(), err
	}
	if !ok {
		return model.DefaultSettings(), nil
	}

	settings, res, err := decodeSettings(raw)
	if err != nil {
		r.quarantine(KeySettings, raw, err)
		return model.DefaultSettings(), nil
	}
	if res.legacy {
		logger.Info("Migrated legacy payload", logger.F("key", KeySettings))
	}
	return settings, nil
}

func (r *Repository) SaveSettings(settings model.Settings) error {
	return r.save(KeySettings, settings)
}

// Clear removes every key, including quarantined payloads
func (r *Repository) Clear() error {
	return r.kv.Clear()
}

func (r *Repository) save(key string, v any) error {
	data, err := encodeEnvelope(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.kv.Set(key, data)
}

func loadCollection[T validator](r *Repository, key string) ([]T, error) {
	raw, ok, err := r.kv.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}

	items, res, err := decodeCollection[T](raw)
	if err != nil {
		r.quarantine(key, raw, err)
		return []T{}, nil
	}
	if res.legacy {
		logger.Info("Migrated legacy payload", logger.F("key", key), logger.F("records", len(items)))
	}
	for _, dropErr := range res.dropped {
		logger.Warn("Dropped invalid record", logger.F("key", key), logger.F("error", dropErr))
	}
	return items, nil
}

// quarantine keeps an unreadable payload under <key>.corrupt so the reset
// to defaults can be inspected and undone by hand.
func (r *Repository) quarantine(key string, raw []byte, cause error) {
	logger.Warn("Unreadable payload replaced with defaults",
		logger.F("key", key),
		logger.F("backup", key+corruptSuffix),
		logger.F("error", cause))
	if err := r.kv.Set(key+corruptSuffix, raw); err != nil {
		logger.Error("Failed to back up unreadable payload", logger.F("key", key), logger.F("error", err))
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
