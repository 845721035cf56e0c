package planner

import (
	"time"

	"weekplanner/internal/service"
)

// Intent is a user action expressed as a value. The front-end only builds
// intents; the controller decides what they mean for the store and the
// week anchor, so the whole flow is testable without a UI harness.
type Intent interface {
	isIntent()
}

type NextWeek struct{}

type PrevWeek struct{}

// GoToDate moves the view to the week containing Date.
type GoToDate struct {
	Date time.Time
}

type AddTask struct {
	Input service.CreateTaskInput
}

type EditTask struct {
	ID    int64
	Input service.UpdateTaskInput
}

// DeleteTask is emitted only after the front-end has collected an explicit
// confirmation from the user.
type DeleteTask struct {
	ID int64
}

type ToggleTask struct {
	ID int64
}

// OpenAttachment hands the task's managed file to the OS default opener.
type OpenAttachment struct {
	ID int64
}

func (NextWeek) isIntent()       {}
func (PrevWeek) isIntent()       {}
func (GoToDate) isIntent()       {}
func (AddTask) isIntent()        {}
func (EditTask) isIntent()       {}
func (DeleteTask) isIntent()     {}
func (ToggleTask) isIntent()     {}
func (OpenAttachment) isIntent() {}
