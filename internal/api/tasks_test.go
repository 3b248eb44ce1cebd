package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/taskbot-app/taskbot/internal/models"
	"github.com/taskbot-app/taskbot/internal/repository"
)

type fakeStore struct {
	tasks  map[int]*models.Task
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{tasks: make(map[int]*models.Task), nextID: 1}
}

var errNotFound = errors.New("not found")

func (f *fakeStore) add(task *models.Task) *models.Task {
	task.TaskID = f.nextID
	f.nextID++
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	task.UpdatedAt = task.CreatedAt
	f.tasks[task.TaskID] = task
	return task
}

func (f *fakeStore) byUser(userID int64, keep func(*models.Task) bool) []*models.Task {
	var out []*models.Task
	for id := 1; id < f.nextID; id++ {
		t, ok := f.tasks[id]
		if ok && t.UserID == userID && keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeStore) GetAllByUser(_ context.Context, userID int64) ([]*models.Task, error) {
	return f.byUser(userID, func(*models.Task) bool { return true }), nil
}

func (f *fakeStore) GetToday(_ context.Context, userID int64, now time.Time) ([]*models.Task, error) {
	return f.byUser(userID, func(t *models.Task) bool {
		return !t.Completed && t.EventAt != nil && t.EventAt.Day() == now.Day()
	}), nil
}

func (f *fakeStore) GetActive(_ context.Context, userID int64) ([]*models.Task, error) {
	return f.byUser(userID, func(t *models.Task) bool { return !t.Completed }), nil
}

func (f *fakeStore) GetCompleted(_ context.Context, userID int64) ([]*models.Task, error) {
	return f.byUser(userID, func(t *models.Task) bool { return t.Completed }), nil
}

func (f *fakeStore) GetByID(_ context.Context, taskID int, userID int64) (*models.Task, error) {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, errNotFound
	}
	return t, nil
}

func (f *fakeStore) Create(_ context.Context, task *models.Task) error {
	if task.RemindAt == nil && task.EventAt != nil {
		t := *task.EventAt
		if task.ReminderOffsetMinutes != nil {
			t = t.Add(-time.Duration(*task.ReminderOffsetMinutes) * time.Minute)
		}
		task.RemindAt = &t
	}
	f.add(task)
	return nil
}

func (f *fakeStore) Update(_ context.Context, task *models.Task) error {
	if _, ok := f.tasks[task.TaskID]; !ok {
		return errNotFound
	}
	f.tasks[task.TaskID] = task
	return nil
}

func (f *fakeStore) ToggleCompleted(_ context.Context, taskID int, userID int64) (*models.Task, error) {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, errNotFound
	}
	t.Completed = !t.Completed
	return t, nil
}

func (f *fakeStore) Delete(_ context.Context, taskID int, userID int64) error {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return errNotFound
	}
	delete(f.tasks, taskID)
	return nil
}

func (f *fakeStore) GetCounts(_ context.Context, userID int64, now time.Time) (*repository.TaskCounts, error) {
	counts := &repository.TaskCounts{}
	for _, t := range f.tasks {
		if t.UserID != userID {
			continue
		}
		if t.Completed {
			counts.Completed++
		} else {
			counts.Active++
			if t.EventAt != nil && t.EventAt.Day() == now.Day() {
				counts.Today++
			}
		}
	}
	return counts, nil
}

func newTestServer(store TaskStore) *Server {
	return New(store, testBotToken, true)
}

func doRequest(s *Server, method, target, body string, userID string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-Id", userID)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestHealthNoAuth(t *testing.T) {
	s := newTestServer(newFakeStore())
	rec := doRequest(s, http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestTasksRequireAuth(t *testing.T) {
	s := New(newFakeStore(), testBotToken, false)
	rec := doRequest(s, http.MethodGet, "/api/tasks", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestTasksSignedInitData(t *testing.T) {
	store := newFakeStore()
	store.add(&models.Task{UserID: 42, Text: "Позвонить маме", Category: models.CategoryReminder})
	s := New(store, testBotToken, false)

	initData := signInitData(t, testBotToken, map[string]string{
		"user":      `{"id":42}`,
		"auth_date": "1700000000",
	})
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", initData)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	var resp taskListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Tasks) != 1 {
		t.Errorf("tasks = %d, want 1", len(resp.Tasks))
	}
}

func TestListTasksFilters(t *testing.T) {
	store := newFakeStore()
	now := time.Now()
	store.add(&models.Task{UserID: 7, Text: "Сдать отчёт", EventAt: &now})
	store.add(&models.Task{UserID: 7, Text: "Старое", Completed: true})
	store.add(&models.Task{UserID: 8, Text: "Чужая задача"})
	s := newTestServer(store)

	cases := []struct {
		filter string
		want   int
	}{
		{"", 2},
		{"today", 1},
		{"active", 1},
		{"completed", 1},
	}
	for _, tc := range cases {
		target := "/api/tasks"
		if tc.filter != "" {
			target += "?filter=" + tc.filter
		}
		rec := doRequest(s, http.MethodGet, target, "", "7")
		if rec.Code != http.StatusOK {
			t.Fatalf("filter %q: status = %d", tc.filter, rec.Code)
		}
		var resp taskListResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if len(resp.Tasks) != tc.want {
			t.Errorf("filter %q: tasks = %d, want %d", tc.filter, len(resp.Tasks), tc.want)
		}
		if resp.Counts == nil {
			t.Errorf("filter %q: missing counts", tc.filter)
		}
	}
}

func TestCreateTask(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(store)

	eventAt := time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC)
	offset := 15
	body, _ := json.Marshal(taskPayload{
		Text:                  "Встреча",
		Category:              models.CategoryEvent,
		EventAt:               &eventAt,
		ReminderOffsetMinutes: &offset,
	})
	rec := doRequest(s, http.MethodPost, "/api/tasks", string(body), "7")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "created" || resp.ID == 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	created := store.tasks[resp.ID]
	if created == nil {
		t.Fatal("task not stored")
	}
	if created.RemindAt == nil {
		t.Fatal("remind_at not derived from event_at")
	}
	wantRemind := eventAt.Add(-15 * time.Minute)
	if !created.RemindAt.Equal(wantRemind) {
		t.Errorf("remind_at = %v, want %v", created.RemindAt, wantRemind)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	s := newTestServer(newFakeStore())
	rec := doRequest(s, http.MethodPost, "/api/tasks", `{"text":""}`, "7")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateTask(t *testing.T) {
	store := newFakeStore()
	task := store.add(&models.Task{UserID: 7, Text: "Черновик"})
	s := newTestServer(store)

	done := true
	body, _ := json.Marshal(taskPayload{Text: "Готовый текст", Completed: &done})
	rec := doRequest(s, http.MethodPut, "/api/tasks/1", string(body), "7")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if task.Text != "Готовый текст" || !task.Completed {
		t.Errorf("task not updated: %+v", task)
	}
}

func TestUpdateTaskNotFound(t *testing.T) {
	s := newTestServer(newFakeStore())
	rec := doRequest(s, http.MethodPut, "/api/tasks/99", `{"text":"x"}`, "7")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestToggleTask(t *testing.T) {
	store := newFakeStore()
	task := store.add(&models.Task{UserID: 7, Text: "Задача"})
	s := newTestServer(store)

	rec := doRequest(s, http.MethodPost, "/api/tasks/toggle", `{"task_id":1}`, "7")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !task.Completed {
		t.Error("task not toggled")
	}
}

func TestDeleteTask(t *testing.T) {
	store := newFakeStore()
	store.add(&models.Task{UserID: 7, Text: "Задача"})
	s := newTestServer(store)

	rec := doRequest(s, http.MethodDelete, "/api/tasks/1", "", "7")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(store.tasks) != 0 {
		t.Error("task not deleted")
	}

	rec = doRequest(s, http.MethodDelete, "/api/tasks/1", "", "7")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestGetTaskWrongUser(t *testing.T) {
	store := newFakeStore()
	store.add(&models.Task{UserID: 7, Text: "Задача"})
	s := newTestServer(store)

	rec := doRequest(s, http.MethodGet, "/api/tasks/1", "", "8")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
