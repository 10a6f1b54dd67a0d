package ports

import (
	"context"

	"github.com/garcia/todolist/internal/domain/entities"
)

// TodoService interface for todo management operations
type TodoService interface {
	CreateTodo(ctx context.Context, req CreateTodoRequest) (*entities.TodoItem, error)
	ListTodos(ctx context.Context) ([]*entities.TodoItem, error)
	UpdateTodoStatus(ctx context.Context, id int64, req UpdateTodoRequest) (*entities.TodoItem, error)
	DeleteTodo(ctx context.Context, id int64) error
}

// Request/Response Types

// CreateTodoRequest is the body of POST /todos. An empty title is accepted.
type CreateTodoRequest struct {
	Title string `json:"title" validate:"max=255"`
}

// UpdateTodoRequest is the body of PUT /todos/:id. Any status string is
// stored verbatim; only "completed" sets date_completed.
type UpdateTodoRequest struct {
	Status entities.TodoStatus `json:"status" validate:"max=50"`
}
