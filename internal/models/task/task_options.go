package task

import (
	"time"
)

// Option mutates a single task field. Partial edits are expressed as a list
// of options applied to the stored task before it is written back.
type Option func(*Task)

func WithName(name string) Option {
	return func(t *Task) {
		t.Name = name
	}
}

func WithDate(date time.Time) Option {
	return func(t *Task) {
		t.Date = DateOnly(date)
	}
}

func WithDescription(description string) Option {
	return func(t *Task) {
		t.Description = description
	}
}

func WithTime(timeOfDay string) Option {
	return func(t *Task) {
		t.Time = timeOfDay
	}
}

func WithLocation(location string) Option {
	return func(t *Task) {
		t.Location = location
	}
}

func WithAttachmentPath(path string) Option {
	return func(t *Task) {
		t.AttachmentPath = path
	}
}

func WithCompleted(completed bool) Option {
	return func(t *Task) {
		t.Completed = completed
	}
}
