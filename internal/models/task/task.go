package task

import (
	"time"
)

const (
	// DateLayout is how task dates are stored and rendered.
	DateLayout = "2006-01-02"
	// TimeLayout is the optional display-only time of day.
	TimeLayout = "15:04"
)

type Task struct {
	ID             int64     `json:"id" db:"id"`
	Date           time.Time `json:"date" db:"date"`
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description,omitempty" db:"description"`
	Time           string    `json:"time,omitempty" db:"time"`
	Location       string    `json:"location,omitempty" db:"location"`
	AttachmentPath string    `json:"attachment_path,omitempty" db:"attachment_path"`
	Completed      bool      `json:"completed" db:"completed"`
}

// ParseDate parses a calendar date string into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateOnly truncates t to its calendar date in UTC. All dates inside the
// planner are kept in this form so map keys and equality checks stay reliable.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidTime reports whether s is an acceptable HH:MM time of day.
// The empty string is valid: time is optional and display-only.
func ValidTime(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

func (t *Task) DateString() string {
	return t.Date.Format(DateLayout)
}

// Clone returns an independent copy so callers can hand tasks out
// without exposing the stored value to mutation.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}
