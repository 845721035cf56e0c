package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"weekplanner/internal/models/task"
	repo "weekplanner/internal/repository"
)

// TaskStorage keeps tasks in a map guarded by a mutex. It backs the
// service tests and works as a throwaway store when no database path
// is configured.
type TaskStorage struct {
	mtx     sync.RWMutex
	storage map[int64]*task.Task
	nextID  int64
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[int64]*task.Task),
		nextID:  1,
	}
}

func (s *TaskStorage) Create(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t.ID = s.nextID
	s.nextID++
	s.storage[t.ID] = t.Clone()
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	t, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return t.Clone(), nil
}

func (s *TaskStorage) Update(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[t.ID]
	if !ok {
		return repo.ErrNotFound
	}

	// Completion is owned by SetCompleted, same as the sqlite statement.
	updated := t.Clone()
	updated.Completed = existing.Completed
	s.storage[t.ID] = updated
	return nil
}

func (s *TaskStorage) SetCompleted(ctx context.Context, id int64, completed bool) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	t, ok := s.storage[id]
	if !ok {
		return repo.ErrNotFound
	}
	t.Completed = completed
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}

func (s *TaskStorage) ListByDate(ctx context.Context, date time.Time) ([]*task.Task, error) {
	day := task.DateOnly(date)
	return s.collect(func(t *task.Task) bool {
		return t.Date.Equal(day)
	}), nil
}

func (s *TaskStorage) ListByDateRange(ctx context.Context, from, to time.Time) ([]*task.Task, error) {
	lo, hi := task.DateOnly(from), task.DateOnly(to)
	return s.collect(func(t *task.Task) bool {
		return !t.Date.Before(lo) && !t.Date.After(hi)
	}), nil
}

func (s *TaskStorage) collect(match func(*task.Task) bool) []*task.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, t := range s.storage {
		if match(t) {
			res = append(res, t.Clone())
		}
	}

	// Same stable order the sqlite queries produce: date, time, id.
	sort.Slice(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.Before(res[j].Date)
		}
		if res[i].Time != res[j].Time {
			return res[i].Time < res[j].Time
		}
		return res[i].ID < res[j].ID
	})
	return res
}
