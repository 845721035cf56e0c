package planner

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"weekplanner/internal/logger"
	"weekplanner/internal/models/task"
	"weekplanner/internal/service"
	"weekplanner/internal/week"
)

// DayColumn is one of the seven date cells of the view.
type DayColumn struct {
	Date  time.Time
	Tasks []*task.Task
}

type WeekView struct {
	Title string
	Days  [7]DayColumn
}

// Controller owns the week anchor (process lifetime, resets to today's week
// on startup) and translates intents into store calls. It never renders
// anything itself.
type Controller struct {
	svc    *service.TaskService
	opener func(path string) error
	anchor time.Time
}

func NewController(svc *service.TaskService, opener func(string) error, now time.Time) *Controller {
	return &Controller{
		svc:    svc,
		opener: opener,
		anchor: task.DateOnly(now),
	}
}

func (c *Controller) Anchor() time.Time {
	return c.anchor
}

// Week queries the store for the anchor's seven dates and assembles the view.
func (c *Controller) Week(ctx context.Context) (*WeekView, error) {
	byDate, err := c.svc.ListTasksForWeek(ctx, week.Start(c.anchor))
	if err != nil {
		return nil, err
	}

	view := &WeekView{Title: week.Title(c.anchor)}
	for i, d := range week.Dates(c.anchor) {
		view.Days[i] = DayColumn{
			Date:  d,
			Tasks: byDate[d.Format(task.DateLayout)],
		}
	}
	return view, nil
}

// Task fetches one task, e.g. to prefill an edit form.
func (c *Controller) Task(ctx context.Context, id int64) (*task.Task, error) {
	return c.svc.GetTask(ctx, id)
}

// Apply executes a single intent. Store failures come back as the service's
// business errors and leave the anchor untouched.
func (c *Controller) Apply(ctx context.Context, intent Intent) error {
	switch in := intent.(type) {
	case NextWeek:
		c.anchor = week.Next(c.anchor)
		return nil

	case PrevWeek:
		c.anchor = week.Previous(c.anchor)
		return nil

	case GoToDate:
		if in.Date.IsZero() {
			return service.NewValidationError("date", "must be a calendar date")
		}
		c.anchor = task.DateOnly(in.Date)
		return nil

	case AddTask:
		_, err := c.svc.CreateTask(ctx, in.Input)
		return err

	case EditTask:
		_, err := c.svc.UpdateTask(ctx, in.ID, in.Input)
		return err

	case DeleteTask:
		return c.svc.DeleteTask(ctx, in.ID)

	case ToggleTask:
		_, err := c.svc.ToggleComplete(ctx, in.ID)
		return err

	case OpenAttachment:
		return c.openAttachment(ctx, in.ID)

	default:
		return fmt.Errorf("unknown intent %T", intent)
	}
}

func (c *Controller) openAttachment(ctx context.Context, id int64) error {
	t, err := c.svc.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if t.AttachmentPath == "" {
		return service.NewValidationError("attachment", "task has no attachment")
	}
	if _, err := os.Stat(t.AttachmentPath); err != nil {
		// The managed copy can still disappear from under us; report it,
		// never crash.
		logger.Warn("Controller: attachment file missing",
			zap.Int64("task_id", id), zap.String("path", t.AttachmentPath))
		return service.NewIOError("open attachment", err)
	}
	if err := c.opener(t.AttachmentPath); err != nil {
		return service.NewIOError("open attachment", err)
	}
	return nil
}
