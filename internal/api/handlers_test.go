package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"todo-api/internal/domain"
	apperrors "todo-api/internal/errors"
	"todo-api/internal/logging"
	"todo-api/internal/repository/sqlite"
	"todo-api/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) http.Handler {
	repo, err := sqlite.New(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return NewRouter(services.NewTodoService(repo), []string{"*"})
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createTodo(t *testing.T, h http.Handler, body string) domain.Todo {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/todos", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var todo domain.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	return todo
}

func listTodos(t *testing.T, h http.Handler, target string) []domain.Todo {
	t.Helper()
	rec := doRequest(t, h, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var todos []domain.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todos))
	return todos
}

func bodyText(rec *httptest.ResponseRecorder) string {
	return strings.TrimSpace(rec.Body.String())
}

func TestCreateTodo(t *testing.T) {
	h := setupRouter(t)

	todo := createTodo(t, h, `{"task":"Buy milk"}`)
	assert.Equal(t, int64(1), todo.ID)
	assert.Equal(t, "Buy milk", todo.Task)
	assert.Equal(t, domain.PriorityMedium, todo.Priority)
	assert.False(t, todo.Completed)

	todo = createTodo(t, h, `{"task":"Call bank","priority":"high"}`)
	assert.Equal(t, int64(2), todo.ID)
	assert.Equal(t, domain.PriorityHigh, todo.Priority)

	todo = createTodo(t, h, `{"task":"Water plants","priority":null}`)
	assert.Equal(t, domain.PriorityMedium, todo.Priority)

	todo = createTodo(t, h, `{"task":"Read","priority":""}`)
	assert.Equal(t, domain.PriorityMedium, todo.Priority)
}

func TestCreateTodo_FalsyPriorityDefaults(t *testing.T) {
	for _, value := range []string{`null`, `false`, `0`, `0.0`, `""`} {
		t.Run(value, func(t *testing.T) {
			h := setupRouter(t)

			todo := createTodo(t, h, `{"task":"x","priority":`+value+`}`)
			assert.Equal(t, domain.PriorityMedium, todo.Priority)
		})
	}
}

func TestCreateTodo_ResponseShape(t *testing.T) {
	h := setupRouter(t)

	rec := doRequest(t, h, http.MethodPost, "/todos", `{"task":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":1,"task":"Buy milk","completed":false,"priority":"medium"}`, rec.Body.String())
}

func TestCreateTodo_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing task", `{"priority":"high"}`, "Task is required."},
		{"empty task", `{"task":""}`, "Task is required."},
		{"null task", `{"task":null}`, "Task is required."},
		{"empty body", ``, "Task is required."},
		{"unknown priority", `{"task":"x","priority":"urgent"}`, "Invalid priority value."},
		{"priority wrong case", `{"task":"x","priority":"HIGH"}`, "Invalid priority value."},
		{"numeric priority", `{"task":"x","priority":5}`, "Invalid priority value."},
		{"boolean priority", `{"task":"x","priority":true}`, "Invalid priority value."},
		{"empty list priority", `{"task":"x","priority":[]}`, "Invalid priority value."},
		{"numeric task", `{"task":5}`, "task must be a string"},
		{"malformed json", `{"task":`, MessageInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupRouter(t)

			rec := doRequest(t, h, http.MethodPost, "/todos", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, bodyText(rec))
			assert.Empty(t, listTodos(t, h, "/todos"), "nothing may be persisted")
		})
	}
}

func TestListTodos(t *testing.T) {
	h := setupRouter(t)

	rec := doRequest(t, h, http.MethodGet, "/todos", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", bodyText(rec))

	createTodo(t, h, `{"task":"first"}`)
	createTodo(t, h, `{"task":"second"}`)
	createTodo(t, h, `{"task":"third","priority":"low"}`)

	rec = doRequest(t, h, http.MethodPut, "/todos/2", `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	all := listTodos(t, h, "/todos")
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Task)
	assert.Equal(t, "second", all[1].Task)
	assert.Equal(t, "third", all[2].Task)

	completed := listTodos(t, h, "/todos?completed=true")
	require.Len(t, completed, 1)
	assert.Equal(t, int64(2), completed[0].ID)
	assert.True(t, completed[0].Completed)

	pending := listTodos(t, h, "/todos?completed=false")
	require.Len(t, pending, 2)
	for _, todo := range pending {
		assert.False(t, todo.Completed)
	}

	assert.Len(t, listTodos(t, h, "/todos?completed=TRUE"), 1)
	assert.Len(t, listTodos(t, h, "/todos?completed=yes"), 2)
	assert.Len(t, listTodos(t, h, "/todos?completed="), 2)
}

func TestUpdateTodo(t *testing.T) {
	h := setupRouter(t)
	createTodo(t, h, `{"task":"Buy milk"}`)

	rec := doRequest(t, h, http.MethodPut, "/todos/1", `{"task":"Buy oat milk","priority":"low","completed":"true"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"To-Do item updated successfully."}`, rec.Body.String())

	todos := listTodos(t, h, "/todos")
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy oat milk", todos[0].Task)
	assert.Equal(t, domain.PriorityLow, todos[0].Priority)
	assert.True(t, todos[0].Completed)
}

func TestUpdateTodo_CompletedCoercion(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"boolean true", `true`, true},
		{"string true", `"true"`, true},
		{"boolean false", `false`, false},
		{"upper case string", `"TRUE"`, false},
		{"number one", `1`, false},
		{"null", `null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupRouter(t)
			createTodo(t, h, `{"task":"x"}`)
			if !tt.expected {
				// start from completed so a false result is observable
				require.Equal(t, http.StatusOK, doRequest(t, h, http.MethodPut, "/todos/1", `{"completed":true}`).Code)
			}

			rec := doRequest(t, h, http.MethodPut, "/todos/1", `{"completed":`+tt.value+`}`)
			require.Equal(t, http.StatusOK, rec.Code)

			todos := listTodos(t, h, "/todos")
			require.Len(t, todos, 1)
			assert.Equal(t, tt.expected, todos[0].Completed)
		})
	}
}

func TestUpdateTodo_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		body    string
		status  int
		message string
	}{
		{"unknown id", "/todos/99", `{"completed":true}`, http.StatusNotFound, MessageNotFound},
		{"non-integer id", "/todos/abc", `{"completed":true}`, http.StatusNotFound, MessageNotFound},
		{"id with trailing text", "/todos/1abc", `{"completed":true}`, http.StatusNotFound, MessageNotFound},
		{"no fields", "/todos/1", `{}`, http.StatusBadRequest, "No valid fields to update."},
		{"only unknown fields", "/todos/1", `{"title":"x"}`, http.StatusBadRequest, "No valid fields to update."},
		{"empty body", "/todos/1", ``, http.StatusBadRequest, "No valid fields to update."},
		{"invalid priority", "/todos/1", `{"priority":"urgent"}`, http.StatusBadRequest, "Invalid priority value."},
		{"empty priority", "/todos/1", `{"priority":""}`, http.StatusBadRequest, "Invalid priority value."},
		{"null priority", "/todos/1", `{"priority":null}`, http.StatusBadRequest, "Invalid priority value."},
		{"null task", "/todos/1", `{"task":null}`, http.StatusBadRequest, "task must be a string"},
		{"malformed json", "/todos/1", `not json`, http.StatusBadRequest, MessageInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setupRouter(t)
			createTodo(t, h, `{"task":"Buy milk"}`)

			rec := doRequest(t, h, http.MethodPut, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, bodyText(rec))

			todos := listTodos(t, h, "/todos")
			require.Len(t, todos, 1)
			assert.Equal(t, domain.Todo{ID: 1, Task: "Buy milk", Priority: domain.PriorityMedium}, todos[0])
		})
	}
}

func TestCompleteAllTodos(t *testing.T) {
	h := setupRouter(t)

	rec := doRequest(t, h, http.MethodPut, "/todos/complete-all", "")
	require.Equal(t, http.StatusOK, rec.Code, "empty table still succeeds")

	createTodo(t, h, `{"task":"a"}`)
	createTodo(t, h, `{"task":"b"}`)

	for i := 0; i < 2; i++ {
		rec = doRequest(t, h, http.MethodPut, "/todos/complete-all", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"All to-do items marked as completed."}`, rec.Body.String())

		todos := listTodos(t, h, "/todos")
		require.Len(t, todos, 2)
		for _, todo := range todos {
			assert.True(t, todo.Completed)
		}
	}

	assert.Empty(t, listTodos(t, h, "/todos?completed=false"))
}

func TestDeleteTodo(t *testing.T) {
	h := setupRouter(t)
	createTodo(t, h, `{"task":"a"}`)
	createTodo(t, h, `{"task":"b"}`)

	rec := doRequest(t, h, http.MethodDelete, "/todos/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(t, h, http.MethodDelete, "/todos/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, MessageNotFound, bodyText(rec))

	rec = doRequest(t, h, http.MethodDelete, "/todos/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	todos := listTodos(t, h, "/todos")
	require.Len(t, todos, 1)
	assert.Equal(t, "b", todos[0].Task)
}

func TestCreateThenList(t *testing.T) {
	h := setupRouter(t)

	created := createTodo(t, h, `{"task":"Ship release","priority":"high"}`)

	todos := listTodos(t, h, "/todos")
	require.Len(t, todos, 1)
	assert.Equal(t, created, todos[0])
}

func TestIDsAreNotReused(t *testing.T) {
	h := setupRouter(t)
	createTodo(t, h, `{"task":"a"}`)
	createTodo(t, h, `{"task":"b"}`)
	require.Equal(t, http.StatusNoContent, doRequest(t, h, http.MethodDelete, "/todos/2", "").Code)

	todo := createTodo(t, h, `{"task":"c"}`)
	assert.Equal(t, int64(3), todo.ID)
}

func TestUnknownRoutes(t *testing.T) {
	h := setupRouter(t)

	assert.Equal(t, http.StatusNotFound, doRequest(t, h, http.MethodGet, "/tasks", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, doRequest(t, h, http.MethodPatch, "/todos/1", `{}`).Code)
}

// stubService answers every call with err
type stubService struct {
	err error
}

func (s stubService) ListTodos(context.Context, *bool) ([]domain.Todo, error) { return nil, s.err }
func (s stubService) CreateTodo(context.Context, services.CreateTodoInput) (*domain.Todo, error) {
	return nil, s.err
}
func (s stubService) UpdateTodo(context.Context, int64, domain.TodoPatch) error { return s.err }
func (s stubService) CompleteAllTodos(context.Context) error                    { return s.err }
func (s stubService) DeleteTodo(context.Context, int64) error                   { return s.err }

func TestStorageErrors(t *testing.T) {
	storageErr := apperrors.NewDatabaseError("query todos", stderrors.New("database is locked"))
	h := NewRouter(stubService{err: storageErr}, []string{"*"})

	requests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodGet, "/todos", ""},
		{http.MethodPost, "/todos", `{"task":"x"}`},
		{http.MethodPut, "/todos/1", `{"completed":true}`},
		{http.MethodPut, "/todos/complete-all", ""},
		{http.MethodDelete, "/todos/1", ""},
	}

	for _, req := range requests {
		t.Run(req.method+" "+req.target, func(t *testing.T) {
			rec := doRequest(t, h, req.method, req.target, req.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "database is locked", bodyText(rec))
		})
	}
}

func TestStorageErrors_ClosedDatabase(t *testing.T) {
	repo, err := sqlite.New(sqlite.MemoryPath)
	require.NoError(t, err)
	h := NewRouter(services.NewTodoService(repo), []string{"*"})
	require.NoError(t, repo.Close())

	rec := doRequest(t, h, http.MethodGet, "/todos", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "sql: database is closed", bodyText(rec))
}

func TestParseCompletedQuery(t *testing.T) {
	assert.False(t, ParseCompletedQuery(nil))
	assert.True(t, ParseCompletedQuery([]string{"true"}))
	assert.True(t, ParseCompletedQuery([]string{"True", "false"}))
	assert.False(t, ParseCompletedQuery([]string{"false", "true"}))
	assert.False(t, ParseCompletedQuery([]string{"1"}))
}

func TestConcurrentRequests_FileDatabase(t *testing.T) {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "todos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	h := NewRouter(services.NewTodoService(repo), []string{"*"})

	const clients = 100
	var wg sync.WaitGroup
	failures := make(chan string, clients*2)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := doRequest(t, h, http.MethodPost, "/todos", fmt.Sprintf(`{"task":"task %d"}`, i))
			if rec.Code != http.StatusCreated {
				failures <- fmt.Sprintf("POST %d: %s", rec.Code, bodyText(rec))
			}
			if i%2 == 0 {
				rec = doRequest(t, h, http.MethodPut, "/todos/complete-all", "")
				if rec.Code != http.StatusOK {
					failures <- fmt.Sprintf("PUT complete-all %d: %s", rec.Code, bodyText(rec))
				}
			}
		}(i)
	}
	wg.Wait()
	close(failures)

	for failure := range failures {
		t.Error(failure)
	}
	assert.Len(t, listTodos(t, h, "/todos"), clients)
}

func TestRejectedRequestsAreDebugLogged(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(&buf, &buf, true)
	t.Cleanup(func() { logging.Init(os.Stdout, os.Stderr, false) })

	h := setupRouter(t)
	rec := doRequest(t, h, http.MethodDelete, "/todos/9", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	assert.Contains(t, buf.String(), "delete todo rejected (NOT_FOUND)")
	assert.Contains(t, buf.String(), "identifier=9 resource=todo")
}
