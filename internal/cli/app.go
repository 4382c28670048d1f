package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/existflow/ironboard/internal/config"
	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/storage"
	"github.com/existflow/ironboard/internal/store"
)

// errNotInteractive is returned when a destructive command needs a
// confirmation that cannot be asked for
var errNotInteractive = errors.New("stdin is not a terminal, use --force to confirm")

// app carries what every command needs. Tests swap the fields out.
type app struct {
	cfg *config.Config

	in  io.Reader
	out io.Writer

	now         func() time.Time
	newID       model.IDFunc
	openKV      func(*config.Config) (storage.KV, error)
	interactive func() bool

	reader *bufio.Reader
}

func newApp() *app {
	return &app{
		in:     os.Stdin,
		out:    os.Stdout,
		now:    time.Now,
		newID:  model.NewID,
		openKV: openKV,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

func openKV(cfg *config.Config) (storage.KV, error) {
	return storage.Open(cfg.StorageOptions())
}

// withStore opens the configured backend, hydrates a store from it and
// runs fn. The backend is closed when fn returns.
func (a *app) withStore(fn func(*store.Store) error) error {
	kv, err := a.openKV(a.cfg)
	if err != nil {
		logger.Error("Failed to open storage", logger.F("driver", a.cfg.Storage.Driver), logger.F("error", err))
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Warn("Failed to close storage", logger.F("error", err))
		}
	}()

	st := store.New(storage.NewRepository(kv))
	if err := st.Hydrate(); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	return fn(st)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// confirm asks a yes/no question unless force is set or confirmations are
// disabled in the config
func (a *app) confirm(force bool, prompt string) (bool, error) {
	if force || !a.cfg.ConfirmDelete {
		return true, nil
	}
	if !a.interactive() {
		return false, errNotInteractive
	}

	a.printf("%s [y/N]: ", prompt)
	if a.reader == nil {
		a.reader = bufio.NewReader(a.in)
	}
	line, err := a.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer != "y" && answer != "yes" {
		a.println("Cancelled.")
		return false, nil
	}
	return true, nil
}
