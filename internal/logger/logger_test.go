package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"DEBUG":   DEBUG,
		"info":    INFO,
		"Warn":    WARN,
		"warning": WARN,
		"ERROR":   ERROR,
		"verbose": INFO,
		"":        INFO,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWriterLoggerFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, INFO)

	l.Debug("hidden")
	l.WithFields(F("board", "b1")).Info("Board created", F("title", "Sprint 1"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug entry to be filtered, got %q", out)
	}
	for _, want := range []string{"Board created", "board=b1", "caller=", "level=info"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got %q", want, out)
		}
	}
}

func TestFileLoggerRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ironboard.log")

	l, err := New(Config{
		Level:      DEBUG,
		FilePath:   path,
		MaxSize:    200,
		MaxAge:     7,
		MaxBackups: 2,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer l.Close()

	for i := 0; i < 20; i++ {
		l.Info("a fairly long log line to force rotation", F("i", i))
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("Expected first backup to exist: %v", err)
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Errorf("Expected at most 2 backups, stat .3 returned %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected active log file: %v", err)
	}
	if info.Size() > 400 {
		t.Errorf("Expected active log to stay small, got %d bytes", info.Size())
	}
}

func TestGlobalFunctionsWithoutInit(t *testing.T) {
	// Must not panic before Init
	Debug("noop")
	Info("noop")
	Warn("noop")
	Error("noop")
	if globalLogger == nil && WithFields(F("k", "v")) != nil {
		t.Error("Expected nil logger before Init")
	}
}
