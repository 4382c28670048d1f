// Package storage persists board collections to a key-value backend.
//
// Each collection lives under its own key as a versioned JSON envelope.
// Backends only move bytes; encoding, validation and migration of legacy
// payloads happen in Repository.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Keys of the persisted collections
const (
	KeyBoards   = "task_boards"
	KeyColumns  = "task_columns"
	KeyTasks    = "task_tasks"
	KeySettings = "app_settings"
)

// corruptSuffix is appended to a key to keep an unreadable payload around
const corruptSuffix = ".corrupt"

// Driver names
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name
var ErrUnknownDriver = errors.New("unknown storage driver")

// KV is a flat string-keyed byte store
type KV interface {
	// Get returns the value for key and whether it exists
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Keys lists every key held by this store
	Keys() ([]string, error)
	// Clear removes every key held by this store
	Clear() error
	Close() error
}

// Options selects and configures a backend
type Options struct {
	Driver        string
	Path          string // sqlite database file
	DSN           string // postgres connection string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Prefix        string // redis key prefix
	Timeout       time.Duration
}

// DefaultPath returns the default database path (~/.ironboard/board.db)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ironboard", "board.db"), nil
}

// Open opens the backend named by opts.Driver
func Open(opts Options) (KV, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	switch opts.Driver {
	case DriverSQLite, "":
		path := opts.Path
		if path == "" {
			p, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return OpenSQLite(path, opts.Timeout)
	case DriverPostgres:
		return OpenPostgres(opts.DSN, opts.Timeout)
	case DriverRedis:
		r, err := OpenRedis(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.Prefix, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return r, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
