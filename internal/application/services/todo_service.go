package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/garcia/todolist/internal/domain/entities"
	"github.com/garcia/todolist/internal/infrastructure/logger"
	"github.com/garcia/todolist/internal/ports"
)

// TodoService handles todo-related operations
type TodoService struct {
	todoRepo ports.TodoRepository
	logger   *logger.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(todoRepo ports.TodoRepository, logger *logger.Logger) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		logger:   logger.WithComponent("todo_service"),
	}
}

// CreateTodo inserts a todo and returns the row as stored
func (s *TodoService) CreateTodo(ctx context.Context, req ports.CreateTodoRequest) (*entities.TodoItem, error) {
	s.logger.Debugw("Creating todo", "title", req.Title)

	id, err := s.todoRepo.Create(ctx, req.Title)
	if err != nil {
		s.logger.WithError(err).Errorw("Failed to create todo")
		return nil, err
	}

	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).Errorw("Failed to load created todo", "todo_id", id)
		return nil, fmt.Errorf("load created todo: %w", err)
	}

	s.logger.LogTodoAction("create", todo.ID, map[string]interface{}{"title": todo.Title})
	return todo, nil
}

// ListTodos returns every todo, most recently added first
func (s *TodoService) ListTodos(ctx context.Context) ([]*entities.TodoItem, error) {
	todos, err := s.todoRepo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Errorw("Failed to list todos")
		return nil, err
	}

	s.logger.Debugw("Listed todos", "count", len(todos))
	return todos, nil
}

// UpdateTodoStatus sets the status and re-reads the row. A missing row is
// only visible through the re-read.
func (s *TodoService) UpdateTodoStatus(ctx context.Context, id int64, req ports.UpdateTodoRequest) (*entities.TodoItem, error) {
	if err := s.todoRepo.UpdateStatus(ctx, id, req.Status); err != nil {
		s.logger.WithError(err).Errorw("Failed to update todo", "todo_id", id)
		return nil, err
	}

	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			s.logger.Infow("Todo not found", "todo_id", id)
		} else {
			s.logger.WithError(err).Errorw("Failed to load updated todo", "todo_id", id)
		}
		return nil, err
	}

	s.logger.LogTodoAction("update", todo.ID, map[string]interface{}{
		"status":    todo.Status,
		"completed": todo.IsCompleted(),
	})
	return todo, nil
}

// DeleteTodo physically removes a todo
func (s *TodoService) DeleteTodo(ctx context.Context, id int64) error {
	if err := s.todoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, entities.ErrTodoNotFound) {
			s.logger.Infow("Todo not found", "todo_id", id)
		} else {
			s.logger.WithError(err).Errorw("Failed to delete todo", "todo_id", id)
		}
		return err
	}

	s.logger.LogTodoAction("delete", id, nil)
	return nil
}

var _ ports.TodoService = (*TodoService)(nil)
