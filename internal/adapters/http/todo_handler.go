package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/garcia/todolist/internal/domain/entities"
	"github.com/garcia/todolist/internal/infrastructure/logger"
	"github.com/garcia/todolist/internal/ports"
)

// TodoHandler handles todo-related requests
type TodoHandler struct {
	todoService ports.TodoService
	logger      *logger.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService ports.TodoService, logger *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
		logger:      logger,
	}
}

// requestLogger tags log lines with the id assigned by the RequestID middleware
func (h *TodoHandler) requestLogger(c echo.Context) *logger.Logger {
	return h.logger.WithRequestID(c.Response().Header().Get(echo.HeaderXRequestID))
}

// Test godoc
// @Summary      Check that the backend is reachable
// @Tags         health
// @Produce      json
// @Success      200  {object}  MessageResponse
// @Router       /test [get]
func (h *TodoHandler) Test(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: msgBackendWorking})
}

// CreateTodo godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      ports.CreateTodoRequest  true  "Todo title"
// @Success      200   {object}  entities.TodoItem
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /todos [post]
func (h *TodoHandler) CreateTodo(c echo.Context) error {
	var req ports.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		h.requestLogger(c).WithError(err).Debugw("Rejected request body", "uri", c.Request().RequestURI)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequest).SetInternal(err)
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), req)
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, todo)
}

// ListTodos godoc
// @Summary      List all todos, most recently added first
// @Tags         todos
// @Produce      json
// @Success      200  {array}   entities.TodoItem
// @Failure      500  {object}  ErrorResponse
// @Router       /todos [get]
func (h *TodoHandler) ListTodos(c echo.Context) error {
	todos, err := h.todoService.ListTodos(c.Request().Context())
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, todos)
}

// UpdateTodo godoc
// @Summary      Update the status of a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Todo ID"
// @Param        body  body      ports.UpdateTodoRequest  true  "New status"
// @Success      200   {object}  entities.TodoItem
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /todos/{id} [put]
func (h *TodoHandler) UpdateTodo(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req ports.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		h.requestLogger(c).WithError(err).Debugw("Rejected request body", "uri", c.Request().RequestURI)
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequest).SetInternal(err)
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	todo, err := h.todoService.UpdateTodoStatus(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, msgTodoNotFound)
		}
		return storeError(err)
	}

	return c.JSON(http.StatusOK, todo)
}

// DeleteTodo godoc
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /todos/{id} [delete]
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.todoService.DeleteTodo(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, msgTodoNotFound)
		}
		return storeError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: msgTodoDeleted})
}

// Register mounts the todo routes on the given group
func (h *TodoHandler) Register(g *echo.Group) {
	g.GET("/test", h.Test)
	g.POST("/todos", h.CreateTodo)
	g.GET("/todos", h.ListTodos)
	g.PUT("/todos/:id", h.UpdateTodo)
	g.DELETE("/todos/:id", h.DeleteTodo)
}
