package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/garcia/todolist/internal/domain/entities"
	"github.com/garcia/todolist/internal/ports"
)

const todoColumns = `id, title, status, date_added, date_completed`

// TodoRepositoryImpl implements the TodoRepository interface
type TodoRepositoryImpl struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *sqlx.DB) ports.TodoRepository {
	return &TodoRepositoryImpl{db: db}
}

func (r *TodoRepositoryImpl) Create(ctx context.Context, title string) (int64, error) {
	query := `INSERT INTO todolist (title) VALUES ($1) RETURNING id`

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, title).Scan(&id); err != nil {
		return 0, fmt.Errorf("create todo: %w", err)
	}

	return id, nil
}

func (r *TodoRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.TodoItem, error) {
	query := `SELECT ` + todoColumns + ` FROM todolist WHERE id = $1`

	var todo entities.TodoItem
	err := r.db.GetContext(ctx, &todo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTodoNotFound
		}
		return nil, fmt.Errorf("get todo by id: %w", err)
	}

	return &todo, nil
}

func (r *TodoRepositoryImpl) List(ctx context.Context) ([]*entities.TodoItem, error) {
	query := `SELECT ` + todoColumns + ` FROM todolist ORDER BY date_added DESC, id DESC`

	todos := []*entities.TodoItem{}
	if err := r.db.SelectContext(ctx, &todos, query); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

func (r *TodoRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status entities.TodoStatus) error {
	query := `
		UPDATE todolist
		SET status = $1,
			date_completed = CASE
				WHEN $1 = 'completed' THEN CURRENT_TIMESTAMP
				ELSE NULL
			END
		WHERE id = $2`

	if _, err := r.db.ExecContext(ctx, query, string(status), id); err != nil {
		return fmt.Errorf("update todo status: %w", err)
	}

	return nil
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM todolist WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrTodoNotFound
	}

	return nil
}
