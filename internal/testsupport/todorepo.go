// Package testsupport provides in-memory doubles shared by package tests.
package testsupport

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/garcia/todolist/internal/domain/entities"
)

// TodoRepo is an in-memory ports.TodoRepository that follows the same
// rules as the SQL schema: store-assigned ids, a "pending" default status
// and a date_completed derived from the status on every update.
type TodoRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entities.TodoItem
	now    time.Time

	// Err, when set, is returned by every method.
	Err error
}

// NewTodoRepo returns an empty repository whose clock starts at start and
// advances one second per insert and per completion.
func NewTodoRepo(start time.Time) *TodoRepo {
	return &TodoRepo{
		nextID: 1,
		rows:   make(map[int64]entities.TodoItem),
		now:    start,
	}
}

func (r *TodoRepo) tick() time.Time {
	r.now = r.now.Add(time.Second)
	return r.now
}

func (r *TodoRepo) Create(_ context.Context, title string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}

	id := r.nextID
	r.nextID++
	r.rows[id] = entities.TodoItem{
		ID:        id,
		Title:     title,
		Status:    entities.TodoStatusPending,
		DateAdded: r.tick(),
	}
	return id, nil
}

func (r *TodoRepo) GetByID(_ context.Context, id int64) (*entities.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	row, ok := r.rows[id]
	if !ok {
		return nil, entities.ErrTodoNotFound
	}
	return &row, nil
}

func (r *TodoRepo) List(_ context.Context) ([]*entities.TodoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	out := make([]*entities.TodoItem, 0, len(r.rows))
	for _, row := range r.rows {
		row := row
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DateAdded.Equal(out[j].DateAdded) {
			return out[i].DateAdded.After(out[j].DateAdded)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *TodoRepo) UpdateStatus(_ context.Context, id int64, status entities.TodoStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	row, ok := r.rows[id]
	if !ok {
		return nil
	}
	row.Status = status
	row.DateCompleted = nil
	if row.IsCompleted() {
		now := r.tick()
		row.DateCompleted = &now
	}
	r.rows[id] = row
	return nil
}

func (r *TodoRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	if _, ok := r.rows[id]; !ok {
		return entities.ErrTodoNotFound
	}
	delete(r.rows, id)
	return nil
}
