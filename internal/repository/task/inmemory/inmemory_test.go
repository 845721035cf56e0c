package inmemory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekplanner/internal/models/task"
	"weekplanner/internal/repository"
	"weekplanner/internal/repository/task/inmemory"
)

func newTask(date string, name, timeOfDay string) *task.Task {
	d, err := task.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return &task.Task{Date: d, Name: name, Time: timeOfDay}
}

// TestTaskStorage_Create checks id assignment and round trip.
func TestTaskStorage_Create(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	first := newTask("2024-06-03", "Team Meeting", "09:30")
	require.NoError(t, storage.Create(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	second := newTask("2024-06-03", "Groceries", "")
	require.NoError(t, storage.Create(ctx, second))
	assert.Equal(t, int64(2), second.ID)

	got, err := storage.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Team Meeting", got.Name)
	assert.False(t, got.Completed)
}

func TestTaskStorage_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	_, err := storage.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestTaskStorage_Update checks that Update replaces fields but never the
// completion flag, which SetCompleted owns.
func TestTaskStorage_Update(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	created := newTask("2024-06-03", "Original", "")
	require.NoError(t, storage.Create(ctx, created))
	require.NoError(t, storage.SetCompleted(ctx, created.ID, true))

	edited := created.Clone()
	edited.Name = "Updated"
	edited.Location = "Office"
	edited.Completed = false // must be ignored
	require.NoError(t, storage.Update(ctx, edited))

	got, err := storage.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Name)
	assert.Equal(t, "Office", got.Location)
	assert.True(t, got.Completed)
}

func TestTaskStorage_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	ghost := newTask("2024-06-03", "Ghost", "")
	ghost.ID = 42
	assert.ErrorIs(t, storage.Update(ctx, ghost), repository.ErrNotFound)
}

func TestTaskStorage_SetCompleted(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	created := newTask("2024-06-03", "Toggle me", "")
	require.NoError(t, storage.Create(ctx, created))

	require.NoError(t, storage.SetCompleted(ctx, created.ID, true))
	got, err := storage.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	assert.ErrorIs(t, storage.SetCompleted(ctx, 9999, true), repository.ErrNotFound)
}

func TestTaskStorage_Delete(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	created := newTask("2024-06-03", "Doomed", "")
	require.NoError(t, storage.Create(ctx, created))

	require.NoError(t, storage.Delete(ctx, created.ID))
	_, err := storage.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// A second delete is an error, not a silent no-op.
	assert.ErrorIs(t, storage.Delete(ctx, created.ID), repository.ErrNotFound)
}

// TestTaskStorage_ListByDate checks filtering and the stable time,id order.
func TestTaskStorage_ListByDate(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	late := newTask("2024-06-03", "Dinner", "19:00")
	early := newTask("2024-06-03", "Standup", "09:00")
	untimed := newTask("2024-06-03", "Sometime", "")
	otherDay := newTask("2024-06-04", "Elsewhere", "09:00")
	for _, tsk := range []*task.Task{late, early, untimed, otherDay} {
		require.NoError(t, storage.Create(ctx, tsk))
	}

	got, err := storage.ListByDate(ctx, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Untimed tasks sort first (empty string), then by time of day.
	assert.Equal(t, "Sometime", got[0].Name)
	assert.Equal(t, "Standup", got[1].Name)
	assert.Equal(t, "Dinner", got[2].Name)

	// Repeated calls return the same order.
	again, err := storage.ListByDate(ctx, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestTaskStorage_ListByDateRange(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewTaskStorage()

	inside := newTask("2024-06-05", "inside", "")
	first := newTask("2024-06-03", "first day", "")
	last := newTask("2024-06-09", "last day", "")
	outside := newTask("2024-06-10", "next week", "")
	for _, tsk := range []*task.Task{inside, first, last, outside} {
		require.NoError(t, storage.Create(ctx, tsk))
	}

	from := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	got, err := storage.ListByDateRange(ctx, from, from.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first day", got[0].Name)
	assert.Equal(t, "inside", got[1].Name)
	assert.Equal(t, "last day", got[2].Name)
}
