package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/garcia/todolist/internal/application/services"
	"github.com/garcia/todolist/internal/domain/entities"
	"github.com/garcia/todolist/internal/infrastructure/logger"
	"github.com/garcia/todolist/internal/ports"
	"github.com/garcia/todolist/internal/testsupport"
)

func newTestEcho(svc ports.TodoService) *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(logger.NewNop())
	NewTodoHandler(svc, logger.NewNop()).Register(e.Group(""))
	return e
}

func newTestServer() (*echo.Echo, *testsupport.TodoRepo) {
	repo := testsupport.NewTodoRepo(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return newTestEcho(services.NewTodoService(repo, logger.NewNop())), repo
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func createTodo(t *testing.T, e *echo.Echo, title string) entities.TodoItem {
	t.Helper()

	rec := do(t, e, http.MethodPost, "/todos", fmt.Sprintf(`{"title":%q}`, title))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /todos status = %d, body %s", rec.Code, rec.Body.String())
	}
	return decode[entities.TodoItem](t, rec)
}

func TestTestEndpoint(t *testing.T) {
	e, _ := newTestServer()

	rec := do(t, e, http.MethodGet, "/test", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decode[MessageResponse](t, rec).Message; got != "Backend is working!" {
		t.Fatalf("message = %q", got)
	}
}

func TestCreateTodoReturnsFullRow(t *testing.T) {
	e, _ := newTestServer()

	rec := do(t, e, http.MethodPost, "/todos", `{"title":"Buy milk"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	raw := decode[map[string]interface{}](t, rec)
	if raw["title"] != "Buy milk" {
		t.Errorf("title = %v", raw["title"])
	}
	if id, ok := raw["id"].(float64); !ok || id <= 0 {
		t.Errorf("id = %v, want positive integer", raw["id"])
	}
	if raw["date_added"] == nil {
		t.Error("date_added is null")
	}
	if v, ok := raw["date_completed"]; !ok || v != nil {
		t.Errorf("date_completed = %v (present %v), want explicit null", v, ok)
	}
	if raw["status"] != "pending" {
		t.Errorf("status = %v, want pending", raw["status"])
	}
}

func TestCreateTodoWithoutTitle(t *testing.T) {
	e, _ := newTestServer()

	rec := do(t, e, http.MethodPost, "/todos", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := decode[entities.TodoItem](t, rec).Title; got != "" {
		t.Fatalf("title = %q, want empty", got)
	}
}

func TestCreateTodoRejectsMalformedJSON(t *testing.T) {
	e, _ := newTestServer()

	rec := do(t, e, http.MethodPost, "/todos", `{"title":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec).Error; got != "Invalid request format" {
		t.Fatalf("error = %q", got)
	}
}

func TestCreateTodoRejectsOverlongTitle(t *testing.T) {
	e, _ := newTestServer()

	rec := do(t, e, http.MethodPost, "/todos", fmt.Sprintf(`{"title":%q}`, strings.Repeat("a", 256)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if decode[ErrorResponse](t, rec).Error == "" {
		t.Fatal("missing error message")
	}
}

func TestCreateTodoStoreErrorIsPassedThrough(t *testing.T) {
	e, repo := newTestServer()
	repo.Err = errors.New("connect ECONNREFUSED 127.0.0.1:5432")

	rec := do(t, e, http.MethodPost, "/todos", `{"title":"Buy milk"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec).Error; got != repo.Err.Error() {
		t.Fatalf("error = %q, want %q", got, repo.Err.Error())
	}
}

func TestListTodosNewestFirst(t *testing.T) {
	e, _ := newTestServer()
	for _, title := range []string{"first", "second", "third"} {
		createTodo(t, e, title)
	}

	rec := do(t, e, http.MethodGet, "/todos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	todos := decode[[]entities.TodoItem](t, rec)
	if len(todos) != 3 {
		t.Fatalf("got %d todos", len(todos))
	}
	for i, want := range []string{"third", "second", "first"} {
		if todos[i].Title != want {
			t.Errorf("todos[%d] = %q, want %q", i, todos[i].Title, want)
		}
	}
	if !todos[0].DateAdded.After(todos[2].DateAdded) {
		t.Error("date_added is not descending")
	}
}

func TestListTodosEmptyIsArray(t *testing.T) {
	e, _ := newTestServer()

	rec := do(t, e, http.MethodGet, "/todos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %s, want []", got)
	}
}

type failingService struct {
	ports.TodoService
	err error
}

func (f failingService) ListTodos(context.Context) ([]*entities.TodoItem, error) {
	return nil, f.err
}

func TestListTodosUnwrapsStoreError(t *testing.T) {
	e := newTestEcho(failingService{err: fmt.Errorf("list todos: %w", errors.New(`pq: relation "todolist" does not exist`))})

	rec := do(t, e, http.MethodGet, "/todos", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec).Error; got != `pq: relation "todolist" does not exist` {
		t.Fatalf("error = %q", got)
	}
}

func TestUpdateTodoCompletesAndReopens(t *testing.T) {
	e, _ := newTestServer()
	created := createTodo(t, e, "Buy milk")
	target := fmt.Sprintf("/todos/%d", created.ID)

	rec := do(t, e, http.MethodPut, target, `{"status":"completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	done := decode[entities.TodoItem](t, rec)
	if done.Status != entities.TodoStatusCompleted || done.DateCompleted == nil {
		t.Fatalf("completed todo = %+v", done)
	}

	rec = do(t, e, http.MethodPut, target, `{"status":"pending"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	reopened := decode[entities.TodoItem](t, rec)
	if reopened.Status != entities.TodoStatusPending || reopened.DateCompleted != nil {
		t.Fatalf("reopened todo = %+v", reopened)
	}
	if reopened.Title != "Buy milk" || !reopened.DateAdded.Equal(created.DateAdded) {
		t.Fatalf("immutable fields changed: %+v", reopened)
	}
}

func TestUpdateTodoNotFound(t *testing.T) {
	e, _ := newTestServer()

	rec := do(t, e, http.MethodPut, "/todos/999999", `{"status":"completed"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec).Error; got != "Todo not found" {
		t.Fatalf("error = %q", got)
	}
}

func TestUnmatchableIDIsNotFound(t *testing.T) {
	e, _ := newTestServer()
	createTodo(t, e, "Buy milk")

	for _, target := range []string{"/todos/abc", "/todos/0", "/todos/-4", "/todos/1.5"} {
		for _, method := range []string{http.MethodPut, http.MethodDelete} {
			rec := do(t, e, method, target, `{"status":"completed"}`)
			if rec.Code != http.StatusNotFound {
				t.Errorf("%s %s status = %d, want 404", method, target, rec.Code)
				continue
			}
			if got := decode[ErrorResponse](t, rec).Error; got != "Todo not found" {
				t.Errorf("%s %s error = %q", method, target, got)
			}
		}
	}

	if todos := decode[[]entities.TodoItem](t, do(t, e, http.MethodGet, "/todos", "")); len(todos) != 1 {
		t.Fatalf("todos = %+v, want the one created row untouched", todos)
	}
}

func TestDeleteTodoTwice(t *testing.T) {
	e, _ := newTestServer()
	keep := createTodo(t, e, "keep")
	gone := createTodo(t, e, "gone")
	target := fmt.Sprintf("/todos/%d", gone.ID)

	rec := do(t, e, http.MethodDelete, target, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("first delete status = %d", rec.Code)
	}
	if got := decode[MessageResponse](t, rec).Message; got != "Todo deleted successfully" {
		t.Fatalf("message = %q", got)
	}

	todos := decode[[]entities.TodoItem](t, do(t, e, http.MethodGet, "/todos", ""))
	if len(todos) != 1 || todos[0].ID != keep.ID {
		t.Fatalf("todos after delete = %+v", todos)
	}

	rec = do(t, e, http.MethodDelete, target, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec).Error; got != "Todo not found" {
		t.Fatalf("error = %q", got)
	}
}

func TestDeleteTodoNotFound(t *testing.T) {
	e, _ := newTestServer()

	rec := do(t, e, http.MethodDelete, "/todos/999999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUnknownRouteUsesErrorShape(t *testing.T) {
	e, _ := newTestServer()

	rec := do(t, e, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if decode[ErrorResponse](t, rec).Error == "" {
		t.Fatal("error field empty")
	}
}

func TestServerErrorLogCarriesRequestID(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	appLogger := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	repo := testsupport.NewTodoRepo(time.Now())
	repo.Err = errors.New("connection reset by peer")

	e := echo.New()
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(appLogger)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return "req-42" },
	}))
	NewTodoHandler(services.NewTodoService(repo, logger.NewNop()), appLogger).Register(e.Group(""))

	rec := do(t, e, http.MethodGet, "/todos", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	entries := logs.FilterMessage("Internal server error").All()
	if len(entries) != 1 {
		t.Fatalf("got %d error entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-42" {
		t.Errorf("request_id = %v", fields["request_id"])
	}
	if msg, _ := fields["error"].(string); !strings.Contains(msg, "connection reset by peer") {
		t.Errorf("error field = %v", fields["error"])
	}
}

func TestUnexpectedErrorMessageDependsOnDebug(t *testing.T) {
	for _, tc := range []struct {
		debug bool
		want  string
	}{
		{debug: false, want: "Internal Server Error"},
		{debug: true, want: "kaboom"},
	} {
		e, _ := newTestServer()
		e.Debug = tc.debug
		e.GET("/boom", func(c echo.Context) error {
			return errors.New("kaboom")
		})

		rec := do(t, e, http.MethodGet, "/boom", "")
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("debug=%v status = %d", tc.debug, rec.Code)
		}
		if got := decode[ErrorResponse](t, rec).Error; got != tc.want {
			t.Errorf("debug=%v error = %q, want %q", tc.debug, got, tc.want)
		}
	}
}
