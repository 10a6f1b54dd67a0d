package ports

import (
	"context"

	"github.com/garcia/todolist/internal/domain/entities"
)

// TodoRepository defines the interface for todo item data operations.
// Each method maps to exactly one SQL statement.
type TodoRepository interface {
	// Create inserts a row with the given title and returns the generated id.
	Create(ctx context.Context, title string) (int64, error)
	// GetByID returns entities.ErrTodoNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*entities.TodoItem, error)
	// List returns every row, most recently added first.
	List(ctx context.Context) ([]*entities.TodoItem, error)
	// UpdateStatus sets the status and re-derives date_completed. It does not
	// report missing rows.
	UpdateStatus(ctx context.Context, id int64, status entities.TodoStatus) error
	// Delete returns entities.ErrTodoNotFound when no row was removed.
	Delete(ctx context.Context, id int64) error
}
