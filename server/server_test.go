package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
	"github.com/existflow/ironboard/internal/storage"
	"github.com/existflow/ironboard/internal/store"
)

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	s := store.DefaultState()
	s.Boards = []model.Board{model.NewBoard("b1", "Sprint 1", "", now)}
	s.Columns = []model.Column{
		model.NewColumn("c1", "b1", "To Do", 0),
		model.NewColumn("c2", "b1", "Done", 1),
	}
	s.Tasks = []model.Task{
		{ID: "t2", Title: "Deploy", Priority: model.PriorityHigh, ColumnID: "c1", Position: 1, DueDate: "2024-05-31"},
		{ID: "t1", Title: "Write notes", Priority: model.PriorityLow, ColumnID: "c1", Position: 0, DueDate: "2024-06-01"},
		{ID: "t3", Title: "Review", Priority: model.PriorityHigh, ColumnID: "c2", Position: 0},
	}

	st := store.New(storage.NewRepository(storage.NewMemory()))
	if err := st.Dispatch(store.LoadInitialData{State: s}); err != nil {
		t.Fatal(err)
	}
	return st
}

func newTestServer(t *testing.T, st *store.Store) *Server {
	t.Helper()
	s := NewWithStore(st)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := sonic.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, seededStore(t)), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := decode[map[string]string](t, rec); got["status"] != "ok" {
		t.Errorf("Unexpected body %v", got)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("Expected a request id header")
	}
}

func TestGetState(t *testing.T) {
	rec := do(t, newTestServer(t, seededStore(t)), http.MethodGet, "/api/v1/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	s := decode[store.State](t, rec)
	if len(s.Boards) != 1 || len(s.Columns) != 2 || len(s.Tasks) != 3 {
		t.Errorf("Unexpected state %+v", s)
	}
	if s.Settings != model.DefaultSettings() {
		t.Errorf("Expected default settings, got %+v", s.Settings)
	}
}

func TestPostAction(t *testing.T) {
	st := seededStore(t)
	srv := newTestServer(t, st)

	body := `{"type":"move_task","payload":{"taskId":"t1","newColumnId":"c2","newPosition":1}}`
	rec := do(t, srv, http.MethodPost, "/api/v1/actions", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	s := decode[store.State](t, rec)
	moved, err := query.FindTask(s.Tasks, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if moved.ColumnID != "c2" || moved.Position != 1 {
		t.Errorf("Expected t1 in c2 at 1, got %s at %d", moved.ColumnID, moved.Position)
	}
	if got, _ := query.FindTask(st.Snapshot().Tasks, "t1"); got.ColumnID != "c2" {
		t.Error("Expected the store to hold the change")
	}
}

func TestPostActionRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"type":`},
		{"unknown type", `{"type":"archive_board","payload":{}}`},
		{"missing id", `{"type":"delete_task","payload":{}}`},
		{"bad priority", `{"type":"add_task","payload":{"task":{"id":"x","columnId":"c1","priority":"urgent"}}}`},
		{"load initial data", `{"type":"load_initial_data","payload":{"state":{}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := seededStore(t)
			before := st.Snapshot()
			rec := do(t, newTestServer(t, st), http.MethodPost, "/api/v1/actions", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := decode[map[string]string](t, rec); got["error"] == "" {
				t.Error("Expected an error message")
			}
			if len(st.Snapshot().Tasks) != len(before.Tasks) {
				t.Error("Expected state unchanged")
			}
		})
	}
}

// failingKV accepts reads but fails every write
type failingKV struct{ *storage.Memory }

func (failingKV) Set(string, []byte) error { return errors.New("disk full") }

func TestPostActionPersistFailure(t *testing.T) {
	st := store.New(storage.NewRepository(failingKV{storage.NewMemory()}))
	if err := st.Hydrate(); err != nil {
		t.Fatal(err)
	}

	body := `{"type":"add_board","payload":{"board":{"id":"b9","title":"New"}}}`
	rec := do(t, newTestServer(t, st), http.MethodPost, "/api/v1/actions", body)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if len(st.Snapshot().Boards) != 1 {
		t.Error("Expected the in-memory state to keep the change")
	}
}

func TestBoardColumnsAndTasks(t *testing.T) {
	srv := newTestServer(t, seededStore(t))

	rec := do(t, srv, http.MethodGet, "/api/v1/boards", "")
	if boards := decode[[]model.Board](t, rec); len(boards) != 1 || boards[0].ID != "b1" {
		t.Errorf("Unexpected boards %+v", boards)
	}

	rec = do(t, srv, http.MethodGet, "/api/v1/boards/b1/columns", "")
	columns := decode[[]model.Column](t, rec)
	if len(columns) != 2 || columns[0].ID != "c1" || columns[1].ID != "c2" {
		t.Errorf("Unexpected columns %+v", columns)
	}

	rec = do(t, srv, http.MethodGet, "/api/v1/columns/c1/tasks", "")
	tasks := decode[[]model.Task](t, rec)
	if len(tasks) != 2 || tasks[0].ID != "t1" || tasks[1].ID != "t2" {
		t.Errorf("Expected tasks ordered by position, got %+v", tasks)
	}

	rec = do(t, srv, http.MethodGet, "/api/v1/columns/c1/tasks?priority=high", "")
	if tasks := decode[[]model.Task](t, rec); len(tasks) != 1 || tasks[0].ID != "t2" {
		t.Errorf("Expected only t2, got %+v", tasks)
	}
	rec = do(t, srv, http.MethodGet, "/api/v1/columns/c1/tasks?q=NOTES&due=2024-06-01", "")
	if tasks := decode[[]model.Task](t, rec); len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Errorf("Expected only t1, got %+v", tasks)
	}
}

func TestNotFoundAndBadQuery(t *testing.T) {
	srv := newTestServer(t, seededStore(t))

	tests := []struct {
		target string
		code   int
	}{
		{"/api/v1/boards/nope/columns", http.StatusNotFound},
		{"/api/v1/boards/b/columns", http.StatusNotFound}, // prefixes are not ids
		{"/api/v1/columns/nope/tasks", http.StatusNotFound},
		{"/api/v1/columns/c1/tasks?priority=urgent", http.StatusBadRequest},
		{"/api/v1/columns/c1/tasks?due=tomorrow", http.StatusBadRequest},
		{"/api/v1/summary?board=nope", http.StatusNotFound},
		{"/api/v1/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, tt.target, "")
			if rec.Code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, rec.Code)
			}
			if got := decode[map[string]string](t, rec); got["error"] == "" {
				t.Error("Expected an error body")
			}
		})
	}
}

func TestSummary(t *testing.T) {
	rec := do(t, newTestServer(t, seededStore(t)), http.MethodGet, "/api/v1/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	s := decode[query.Summary](t, rec)
	if s.Tasks != 3 || s.Overdue != 1 || s.DueToday != 1 {
		t.Errorf("Unexpected summary %+v", s)
	}
	if s.ByPriority[model.PriorityHigh] != 2 {
		t.Errorf("Expected 2 high tasks, got %d", s.ByPriority[model.PriorityHigh])
	}
}
