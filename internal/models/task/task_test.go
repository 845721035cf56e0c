package task_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekplanner/internal/models/task"
)

func TestValidTime(t *testing.T) {
	assert.True(t, task.ValidTime(""))
	assert.True(t, task.ValidTime("09:30"))
	assert.True(t, task.ValidTime("23:59"))
	assert.False(t, task.ValidTime("9:30am"))
	assert.False(t, task.ValidTime("25:00"))
	assert.False(t, task.ValidTime("later"))
}

func TestParseDate(t *testing.T) {
	d, err := task.ParseDate("2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), d)

	_, err = task.ParseDate("03.06.2024")
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.June, 3, 18, 45, 12, 999, time.FixedZone("X", 3600))
	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), task.DateOnly(in))
}

// TestOptions applies a partial edit and checks untouched fields survive.
func TestOptions(t *testing.T) {
	base := &task.Task{
		ID:       7,
		Date:     time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
		Name:     "Team Meeting",
		Time:     "09:30",
		Location: "Office",
	}

	edited := base.Clone()
	for _, opt := range []task.Option{
		task.WithTime("10:00"),
		task.WithCompleted(true),
	} {
		opt(edited)
	}

	assert.Equal(t, "10:00", edited.Time)
	assert.True(t, edited.Completed)
	assert.Equal(t, "Team Meeting", edited.Name)
	assert.Equal(t, "Office", edited.Location)

	// Clone really is independent.
	assert.Equal(t, "09:30", base.Time)
	assert.False(t, base.Completed)
}
