package repository

import (
	"context"
	"errors"
	"time"

	"weekplanner/internal/models/task"
)

// ErrNotFound is returned by every implementation when the referenced
// task id does not exist. Callers map it to their own error taxonomy.
var ErrNotFound = errors.New("task not found")

type TaskRepository interface {
	// Create inserts the task and fills in its assigned id.
	Create(ctx context.Context, t *task.Task) error
	GetByID(ctx context.Context, id int64) (*task.Task, error)
	// Update replaces every editable field of the stored row except
	// the completion flag, which only SetCompleted touches.
	Update(ctx context.Context, t *task.Task) error
	SetCompleted(ctx context.Context, id int64, completed bool) error
	Delete(ctx context.Context, id int64) error
	// ListByDate returns the tasks for one calendar date ordered by
	// time of day, then id. The order is stable across calls.
	ListByDate(ctx context.Context, date time.Time) ([]*task.Task, error)
	// ListByDateRange returns tasks with from <= date <= to ordered by
	// date, time, id. One call feeds all seven week columns.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*task.Task, error)
}
