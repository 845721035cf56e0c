package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"weekplanner/internal/logger"
	"weekplanner/internal/models/task"
	repo "weekplanner/internal/repository"
)

// slowQuery is the threshold above which a statement gets a warning log.
// Everything here runs against a local file, so anything slower than this
// usually means the disk is struggling or the database is locked.
const slowQuery = 100 * time.Millisecond

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, path string) (*Storage, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("Repository: failed to open database", err, zap.String("path", path))
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection: there is exactly one writer in a single-user
	// desktop process and sqlite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		logger.Error("Repository: failed ping check", err, zap.String("path", path))
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("Repository: opened sqlite database", zap.String("path", path))
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	logger.Info("Repository: closing sqlite database")
	return s.db.Close()
}

func (s *Storage) Create(ctx context.Context, t *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(date, name, description, time, location, attachment_path, completed)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		t.DateString(),
		t.Name,
		t.Description,
		t.Time,
		t.Location,
		t.AttachmentPath,
		t.Completed,
	).Scan(&t.ID)

	if err != nil {
		logger.Error("Repository: failed to insert task", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("insert task: %w", err)
	}

	if time.Since(start) > slowQuery {
		logger.Warn("Repository: slow statement", zap.String("op", "create"), zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	start := time.Now()

	query := `SELECT id, date, name, description, time, location, attachment_path, completed
				FROM tasks
				WHERE id = ?`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: failed to get task", err,
			zap.Int64("task_id", id), zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("get task: %w", err)
	}

	if time.Since(start) > slowQuery {
		logger.Warn("Repository: slow statement", zap.String("op", "get"), zap.Duration("ms", time.Since(start)))
	}
	return t, nil
}

func (s *Storage) Update(ctx context.Context, t *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET date = ?,
				name = ?,
				description = ?,
				time = ?,
				location = ?,
				attachment_path = ?
			WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query,
		t.DateString(),
		t.Name,
		t.Description,
		t.Time,
		t.Location,
		t.AttachmentPath,
		t.ID,
	)
	if err != nil {
		logger.Error("Repository: failed to update task", err,
			zap.Int64("task_id", t.ID), zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("update task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task: rows affected: %w", err)
	}
	if affected == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > slowQuery {
		logger.Warn("Repository: slow statement", zap.String("op", "update"), zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) SetCompleted(ctx context.Context, id int64, completed bool) error {
	start := time.Now()

	query := `UPDATE tasks SET completed = ? WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, completed, id)
	if err != nil {
		logger.Error("Repository: failed to set completion", err,
			zap.Int64("task_id", id), zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("set completed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set completed: rows affected: %w", err)
	}
	if affected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	query := `DELETE FROM tasks WHERE id = ?`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("Repository: failed to delete task", err,
			zap.Int64("task_id", id), zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("delete task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: rows affected: %w", err)
	}
	if affected == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > slowQuery {
		logger.Warn("Repository: slow statement", zap.String("op", "delete"), zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) ListByDate(ctx context.Context, date time.Time) ([]*task.Task, error) {
	query := `SELECT id, date, name, description, time, location, attachment_path, completed
				FROM tasks
				WHERE date = ?
				ORDER BY time, id`

	return s.list(ctx, query, date.Format(task.DateLayout))
}

func (s *Storage) ListByDateRange(ctx context.Context, from, to time.Time) ([]*task.Task, error) {
	query := `SELECT id, date, name, description, time, location, attachment_path, completed
				FROM tasks
				WHERE date BETWEEN ? AND ?
				ORDER BY date, time, id`

	return s.list(ctx, query, from.Format(task.DateLayout), to.Format(task.DateLayout))
}

func (s *Storage) list(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: failed to query tasks", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error("Repository: failed to scan task row", err)
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: row iteration failed", err)
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	if time.Since(start) > slowQuery {
		logger.Warn("Repository: slow statement", zap.String("op", "list"), zap.Duration("ms", time.Since(start)))
	}
	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*task.Task, error) {
	t := &task.Task{}
	var date string

	err := row.Scan(
		&t.ID,
		&date,
		&t.Name,
		&t.Description,
		&t.Time,
		&t.Location,
		&t.AttachmentPath,
		&t.Completed,
	)
	if err != nil {
		return nil, err
	}

	t.Date, err = task.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	return t, nil
}
