package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// backends returns one fresh instance of every backend that runs without
// external services.
func backends(t *testing.T) map[string]KV {
	t.Helper()

	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "board.db"), time.Second)
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	kvs := map[string]KV{
		"memory": NewMemory(),
		"sqlite": sqlite,
		"redis":  NewRedis(client, "ironboard:", time.Second),
	}

	// Postgres runs only against a database supplied by the environment
	if dsn := os.Getenv("IRONBOARD_TEST_DATABASE_URL"); dsn != "" {
		pg, err := OpenPostgres(dsn, 5*time.Second)
		if err != nil {
			t.Fatalf("OpenPostgres() error: %v", err)
		}
		if err := pg.Clear(); err != nil {
			t.Fatalf("Clear() error: %v", err)
		}
		t.Cleanup(func() {
			_ = pg.Clear()
			_ = pg.Close()
		})
		kvs["postgres"] = pg
	}
	return kvs
}

func TestKVContract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get("missing"); err != nil || ok {
				t.Fatalf("Get(missing) = ok %v, err %v; want not found", ok, err)
			}

			if err := kv.Set("a", []byte(`[1]`)); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if err := kv.Set("a", []byte(`[1,2]`)); err != nil {
				t.Fatalf("Set() overwrite error: %v", err)
			}
			if err := kv.Set("b", []byte(`{}`)); err != nil {
				t.Fatalf("Set() error: %v", err)
			}

			v, ok, err := kv.Get("a")
			if err != nil || !ok {
				t.Fatalf("Get(a) = ok %v, err %v", ok, err)
			}
			if string(v) != `[1,2]` {
				t.Errorf("Expected overwritten value, got %s", v)
			}

			keys, err := kv.Keys()
			if err != nil {
				t.Fatalf("Keys() error: %v", err)
			}
			slices.Sort(keys)
			if !reflect.DeepEqual(keys, []string{"a", "b"}) {
				t.Errorf("Expected keys [a b], got %v", keys)
			}

			if err := kv.Delete("a"); err != nil {
				t.Fatalf("Delete() error: %v", err)
			}
			if _, ok, _ := kv.Get("a"); ok {
				t.Error("Expected a to be deleted")
			}

			if err := kv.Clear(); err != nil {
				t.Fatalf("Clear() error: %v", err)
			}
			keys, _ = kv.Keys()
			if len(keys) != 0 {
				t.Errorf("Expected no keys after Clear, got %v", keys)
			}
		})
	}
}

func TestRedisClearKeepsForeignKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	if err := mr.Set("other:key", "keep"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	kv := NewRedis(client, "ironboard:", time.Second)
	_ = kv.Set(KeyBoards, []byte(`[]`))

	if err := kv.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if !mr.Exists("other:key") {
		t.Error("Expected keys outside the prefix to survive Clear")
	}
	if mr.Exists("ironboard:" + KeyBoards) {
		t.Error("Expected prefixed key to be removed")
	}
}

func TestRedisClearStaysInsideNamespace(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		own     string
		foreign string
	}{
		{"glob characters", "board[1]:", "board[1]:" + KeyBoards, "board1:" + KeyBoards},
		{"question mark", "b?:", "b?:" + KeyTasks, "bx:" + KeyTasks},
		{"empty prefix", "", DefaultRedisPrefix + KeyBoards, "unrelated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, err := miniredis.Run()
			if err != nil {
				t.Fatalf("start miniredis: %v", err)
			}
			t.Cleanup(mr.Close)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })

			if err := mr.Set(tt.foreign, "keep"); err != nil {
				t.Fatalf("seed: %v", err)
			}
			kv := NewRedis(client, tt.prefix, time.Second)
			if err := kv.Set(KeyBoards, []byte(`[]`)); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if err := kv.Set(KeyTasks, []byte(`[]`)); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if !mr.Exists(tt.own) {
				t.Fatalf("Expected %q to be written", tt.own)
			}

			if err := kv.Clear(); err != nil {
				t.Fatalf("Clear() error: %v", err)
			}
			if !mr.Exists(tt.foreign) {
				t.Errorf("Expected %q to survive Clear", tt.foreign)
			}
			if mr.Exists(tt.own) {
				t.Errorf("Expected %q to be removed", tt.own)
			}
		})
	}
}

func TestOpenDrivers(t *testing.T) {
	kv, err := Open(Options{Driver: DriverMemory})
	if err != nil {
		t.Fatalf("Open(memory) error: %v", err)
	}
	if _, ok := kv.(*Memory); !ok {
		t.Errorf("Expected *Memory, got %T", kv)
	}

	kv, err = Open(Options{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "nested", "board.db")})
	if err != nil {
		t.Fatalf("Open(sqlite) error: %v", err)
	}
	_ = kv.Close()

	if _, err := Open(Options{Driver: "mongo"}); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("Expected ErrUnknownDriver, got %v", err)
	}
	if _, err := Open(Options{Driver: DriverPostgres}); err == nil {
		t.Error("Expected error for postgres without dsn")
	}
	if _, err := Open(Options{Driver: DriverRedis}); err == nil {
		t.Error("Expected error for redis without address")
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")

	kv, err := OpenSQLite(path, time.Second)
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	if err := kv.Set(KeyTasks, []byte(`[]`)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	_ = kv.Close()

	kv, err = OpenSQLite(path, time.Second)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer kv.Close()

	if v, ok, err := kv.Get(KeyTasks); err != nil || !ok || string(v) != `[]` {
		t.Errorf("Expected value to survive reopen, got %q ok=%v err=%v", v, ok, err)
	}
}
