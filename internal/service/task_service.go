package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"weekplanner/internal/attachments"
	"weekplanner/internal/logger"
	"weekplanner/internal/models/task"
	repo "weekplanner/internal/repository"
)

// TaskService is the single authority over task persistence: validation,
// attachment copies and row writes all pass through here. Each call is one
// user action and commits at statement granularity.
type TaskService struct {
	repo  repo.TaskRepository
	files *attachments.Store
}

func NewTaskService(r repo.TaskRepository, files *attachments.Store) *TaskService {
	return &TaskService{
		repo:  r,
		files: files,
	}
}

type CreateTaskInput struct {
	Date        time.Time
	Name        string
	Description string
	Time        string
	Location    string
	// AttachmentSource is the user's original file. Empty means no attachment.
	AttachmentSource string
}

// UpdateTaskInput carries a partial edit. Nil fields are left untouched.
type UpdateTaskInput struct {
	Date        *time.Time
	Name        *string
	Description *string
	Time        *string
	Location    *string
	// AttachmentSource: nil keeps the current attachment, "" clears it,
	// anything else is copied into managed storage and replaces it.
	AttachmentSource *string
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*task.Task, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, NewValidationError("name", "must not be empty")
	}
	if in.Date.IsZero() {
		return nil, NewValidationError("date", "must be a calendar date")
	}
	if !task.ValidTime(in.Time) {
		return nil, NewValidationError("time", "must look like HH:MM")
	}

	attachmentPath := ""
	if in.AttachmentSource != "" {
		path, err := s.files.Save(in.AttachmentSource, 0)
		if err != nil {
			logger.Error("Service: attachment copy failed", err, zap.String("source", in.AttachmentSource))
			return nil, NewIOError("attachment copy", err)
		}
		attachmentPath = path
	}

	t := &task.Task{
		Date:           task.DateOnly(in.Date),
		Name:           name,
		Description:    in.Description,
		Time:           in.Time,
		Location:       in.Location,
		AttachmentPath: attachmentPath,
		Completed:      false,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		// The copy preceded the insert; undo it so a failed create
		// leaves nothing behind.
		if attachmentPath != "" {
			_ = s.files.Remove(attachmentPath)
		}
		logger.Error("Service: task create failed", err)
		return nil, NewStorageError("create task", err)
	}

	logger.Info("Service: task created",
		zap.Int64("task_id", t.ID), zap.String("date", t.DateString()))
	return t, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound(id)
		}
		return nil, NewStorageError("get task", err)
	}
	return t, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id int64, in UpdateTaskInput) (*task.Task, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: update on missing task", zap.Int64("task_id", id))
			return nil, NewNotFound(id)
		}
		return nil, NewStorageError("get task", err)
	}

	var opts []task.Option
	newCopy := ""
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, NewValidationError("name", "must not be empty")
		}
		opts = append(opts, task.WithName(name))
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return nil, NewValidationError("date", "must be a calendar date")
		}
		opts = append(opts, task.WithDate(*in.Date))
	}
	if in.Description != nil {
		opts = append(opts, task.WithDescription(*in.Description))
	}
	if in.Time != nil {
		if !task.ValidTime(*in.Time) {
			return nil, NewValidationError("time", "must look like HH:MM")
		}
		opts = append(opts, task.WithTime(*in.Time))
	}
	if in.Location != nil {
		opts = append(opts, task.WithLocation(*in.Location))
	}
	if in.AttachmentSource != nil {
		if *in.AttachmentSource == "" {
			// The previous managed copy is left in place, matching the
			// delete behavior below.
			opts = append(opts, task.WithAttachmentPath(""))
		} else {
			path, err := s.files.Save(*in.AttachmentSource, id)
			if err != nil {
				logger.Error("Service: attachment copy failed", err, zap.String("source", *in.AttachmentSource))
				return nil, NewIOError("attachment copy", err)
			}
			newCopy = path
			opts = append(opts, task.WithAttachmentPath(path))
		}
	}

	updated := existing.Clone()
	for _, opt := range opts {
		opt(updated)
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		// The replacement copy preceded the write; undo it so the task's
		// previous attachment stays the only managed file.
		if newCopy != "" {
			_ = s.files.Remove(newCopy)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound(id)
		}
		logger.Error("Service: task update failed", err, zap.Int64("task_id", id))
		return nil, NewStorageError("update task", err)
	}

	logger.Info("Service: task updated", zap.Int64("task_id", id))
	return updated, nil
}

func (s *TaskService) ToggleComplete(ctx context.Context, id int64) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound(id)
		}
		return nil, NewStorageError("get task", err)
	}

	if err := s.repo.SetCompleted(ctx, id, !t.Completed); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound(id)
		}
		logger.Error("Service: completion toggle failed", err, zap.Int64("task_id", id))
		return nil, NewStorageError("toggle completion", err)
	}

	t.Completed = !t.Completed
	logger.Info("Service: completion toggled",
		zap.Int64("task_id", id), zap.Bool("completed", t.Completed))
	return t, nil
}

// DeleteTask removes the row permanently. The managed attachment copy is
// intentionally left in place, same as clearing an attachment on edit:
// managed copies are never cleaned up.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: delete on missing task", zap.Int64("task_id", id))
			return NewNotFound(id)
		}
		logger.Error("Service: task delete failed", err, zap.Int64("task_id", id))
		return NewStorageError("delete task", err)
	}

	logger.Info("Service: task deleted", zap.Int64("task_id", id))
	return nil
}

func (s *TaskService) ListTasksForDate(ctx context.Context, date time.Time) ([]*task.Task, error) {
	tasks, err := s.repo.ListByDate(ctx, task.DateOnly(date))
	if err != nil {
		return nil, NewStorageError("list tasks", err)
	}
	return tasks, nil
}

// ListTasksForWeek fetches the whole 7-day span in one query and groups the
// rows by date string, ready for the seven columns.
func (s *TaskService) ListTasksForWeek(ctx context.Context, start time.Time) (map[string][]*task.Task, error) {
	from := task.DateOnly(start)
	to := from.AddDate(0, 0, 6)

	tasks, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, NewStorageError("list week tasks", err)
	}

	byDate := make(map[string][]*task.Task, 7)
	for _, t := range tasks {
		key := t.DateString()
		byDate[key] = append(byDate[key], t)
	}
	return byDate, nil
}
