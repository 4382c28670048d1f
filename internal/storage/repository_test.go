package storage

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/existflow/ironboard/internal/model"
)

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(NewMemory())
	now := time.Date(2024, 3, 1, 9, 0, 0, 123000000, time.UTC)

	boards := []model.Board{model.NewBoard("b1", "Sprint 1", "first", now)}
	columns := []model.Column{model.NewColumn("c1", "b1", "To Do", 0)}
	tasks := []model.Task{{
		ID: "t1", Title: "write", Description: "docs", CreatedBy: "me",
		Priority: model.PriorityHigh, DueDate: "2024-03-02", ColumnID: "c1", Position: 0,
	}}
	settings := model.DefaultSettings()
	settings.DarkMode = true

	if err := repo.SaveBoards(boards); err != nil {
		t.Fatalf("SaveBoards: %v", err)
	}
	if err := repo.SaveColumns(columns); err != nil {
		t.Fatalf("SaveColumns: %v", err)
	}
	if err := repo.SaveTasks(tasks); err != nil {
		t.Fatalf("SaveTasks: %v", err)
	}
	if err := repo.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	gotBoards, _ := repo.LoadBoards()
	gotColumns, _ := repo.LoadColumns()
	gotTasks, _ := repo.LoadTasks()
	gotSettings, _ := repo.LoadSettings()

	if !reflect.DeepEqual(gotBoards, boards) {
		t.Errorf("boards: got %+v, want %+v", gotBoards, boards)
	}
	if !reflect.DeepEqual(gotColumns, columns) {
		t.Errorf("columns: got %+v, want %+v", gotColumns, columns)
	}
	if !reflect.DeepEqual(gotTasks, tasks) {
		t.Errorf("tasks: got %+v, want %+v", gotTasks, tasks)
	}
	if gotSettings != settings {
		t.Errorf("settings: got %+v, want %+v", gotSettings, settings)
	}
}

func TestRepositoryWritesVersionedEnvelope(t *testing.T) {
	kv := NewMemory()
	repo := NewRepository(kv)
	if err := repo.SaveBoards(nil); err != nil {
		t.Fatalf("SaveBoards: %v", err)
	}

	raw, _, _ := kv.Get(KeyBoards)
	if string(raw) != `{"version":1,"data":[]}` {
		t.Errorf("Unexpected payload %s", raw)
	}
}

func TestRepositoryMissingKeys(t *testing.T) {
	repo := NewRepository(NewMemory())

	boards, err := repo.LoadBoards()
	if err != nil || boards == nil || len(boards) != 0 {
		t.Errorf("Expected empty boards, got %v %v", boards, err)
	}
	settings, err := repo.LoadSettings()
	if err != nil || settings != model.DefaultSettings() {
		t.Errorf("Expected default settings, got %+v %v", settings, err)
	}
}

func TestRepositoryMigratesLegacyPayloads(t *testing.T) {
	kv := NewMemory()
	_ = kv.Set(KeyBoards, []byte(`[{"id":"1700000000000","title":"Sprint 1","description":"","createdAt":"2024-01-02T03:04:05.678Z","updatedAt":"2024-01-02T03:04:05.678Z"}]`))
	_ = kv.Set(KeyTasks, []byte(`[
		{"id":"1","title":"ok","description":"","createdBy":"me","priority":"low","dueDate":"2024-01-05","columnId":"c","position":0},
		{"id":"2","title":"bad priority","priority":"urgent","columnId":"c","position":1},
		{"id":"3","title":"bad position","priority":"low","columnId":"c","position":"x"}
	]`))
	_ = kv.Set(KeySettings, []byte(`{"darkMode":true,"themeColors":{"rosewater":"#000000"}}`))
	repo := NewRepository(kv)

	boards, err := repo.LoadBoards()
	if err != nil {
		t.Fatalf("LoadBoards: %v", err)
	}
	if len(boards) != 1 || boards[0].Title != "Sprint 1" {
		t.Fatalf("Expected migrated board, got %+v", boards)
	}
	if want := time.Date(2024, 1, 2, 3, 4, 5, 678000000, time.UTC); !boards[0].CreatedAt.Equal(want) {
		t.Errorf("Expected createdAt %v, got %v", want, boards[0].CreatedAt)
	}

	tasks, _ := repo.LoadTasks()
	if len(tasks) != 1 || tasks[0].ID != "1" {
		t.Errorf("Expected only the valid task, got %+v", tasks)
	}

	settings, _ := repo.LoadSettings()
	if !settings.DarkMode || settings.ThemeColors.Rosewater != "#000000" {
		t.Errorf("Expected legacy settings applied, got %+v", settings)
	}
	if settings.ThemeColors.DustyRose != model.DefaultThemeColors().DustyRose {
		t.Errorf("Expected missing colours to keep defaults, got %+v", settings.ThemeColors)
	}
}

func TestRepositoryQuarantinesUnreadablePayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", `not json at all`},
		{"unknown version", `{"version":99,"data":[]}`},
		{"object for collection", `{"id":"b1"}`},
		{"empty", `   `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemory()
			_ = kv.Set(KeyColumns, []byte(tt.raw))
			repo := NewRepository(kv)

			columns, err := repo.LoadColumns()
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(columns) != 0 {
				t.Errorf("Expected empty columns, got %+v", columns)
			}

			backup, ok, _ := kv.Get(KeyColumns + corruptSuffix)
			if !ok || string(backup) != tt.raw {
				t.Errorf("Expected raw payload backed up, got %q ok=%v", backup, ok)
			}
		})
	}
}

func TestRepositoryCorruptSettingsFallBack(t *testing.T) {
	kv := NewMemory()
	_ = kv.Set(KeySettings, []byte(`{"darkMode":"yes"`))
	repo := NewRepository(kv)

	settings, err := repo.LoadSettings()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if settings != model.DefaultSettings() {
		t.Errorf("Expected defaults, got %+v", settings)
	}
	if _, ok, _ := kv.Get(KeySettings + corruptSuffix); !ok {
		t.Error("Expected corrupt settings to be backed up")
	}
}

func TestRepositoryClear(t *testing.T) {
	kv := NewMemory()
	repo := NewRepository(kv)
	_ = repo.SaveBoards([]model.Board{{ID: "b1"}})
	_ = kv.Set(KeyBoards+corruptSuffix, []byte("x"))

	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	keys, _ := kv.Keys()
	if len(keys) != 0 {
		t.Errorf("Expected every key removed, got %s", strings.Join(keys, ","))
	}
}
