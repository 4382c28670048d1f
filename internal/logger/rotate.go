package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// rotatingFile is an io.Writer over a log file that rolls over by size and age.
// Backups are named <path>.1 (newest) to <path>.N.
type rotatingFile struct {
	mu         sync.Mutex
	path       string
	maxSize    int64
	maxAge     time.Duration
	maxBackups int
	file       *os.File
	size       int64
	opened     time.Time
}

func openRotatingFile(config Config) (*rotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	r := &rotatingFile{
		path:       config.FilePath,
		maxSize:    config.MaxSize,
		maxAge:     time.Duration(config.MaxAge) * 24 * time.Hour,
		maxBackups: config.MaxBackups,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	if r.needsRotation(0) {
		if err := r.rotate(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *rotatingFile) open() error {
	file, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	r.file = file
	r.size = info.Size()
	r.opened = info.ModTime()
	if r.size == 0 {
		r.opened = time.Now()
	}
	return nil
}

func (r *rotatingFile) needsRotation(incoming int) bool {
	if r.maxSize > 0 && r.size+int64(incoming) > r.maxSize && r.size > 0 {
		return true
	}
	return r.maxAge > 0 && r.size > 0 && time.Since(r.opened) > r.maxAge
}

func (r *rotatingFile) rotate() error {
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}

	for i := r.maxBackups - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", r.path, i)
		newPath := fmt.Sprintf("%s.%d", r.path, i+1)
		_ = os.Rename(oldPath, newPath)
	}

	if r.maxBackups > 0 {
		if err := os.Rename(r.path, r.path+".1"); err != nil && !os.IsNotExist(err) {
			return err
		}
	} else if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	return r.open()
}

// Write implements io.Writer
func (r *rotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return 0, os.ErrClosed
	}
	if r.needsRotation(len(p)) {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// Close closes the underlying file
func (r *rotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
