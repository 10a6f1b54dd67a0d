package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrTodoNotFound = errors.New("todo not found")
)

// TodoStatus is the free-form status string stored on a todo item.
// Only TodoStatusCompleted carries meaning: it sets DateCompleted.
type TodoStatus string

const (
	TodoStatusPending   TodoStatus = "pending"
	TodoStatusCompleted TodoStatus = "completed"
)

// TodoItem represents a single row of the todolist table
type TodoItem struct {
	ID            int64      `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Status        TodoStatus `json:"status" db:"status"`
	DateAdded     time.Time  `json:"date_added" db:"date_added"`
	DateCompleted *time.Time `json:"date_completed" db:"date_completed"`
}

// IsCompleted returns true if the item was last written with the completed status
func (t *TodoItem) IsCompleted() bool {
	return t.Status == TodoStatusCompleted
}
