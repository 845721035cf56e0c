package attachments

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"weekplanner/internal/logger"
)

// Store owns the managed directory holding copies of user-attached files.
// Sources are copied in, never referenced in place, so a task stays valid
// when the user later moves or deletes the original.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachment directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save copies src into the managed directory under a collision-free name
// and returns the new path. When the owning task id is already known the
// name carries it (report.pdf -> report_12.pdf); otherwise, and whenever
// that name is taken, a random suffix keeps existing files untouched.
func (s *Store) Save(src string, taskID int64) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()

	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	var candidates []string
	if taskID > 0 {
		candidates = append(candidates, fmt.Sprintf("%s_%d%s", stem, taskID, ext))
	}
	candidates = append(candidates, fmt.Sprintf("%s_%s%s", stem, uuid.NewString(), ext))

	for _, name := range candidates {
		dst := filepath.Join(s.dir, name)
		out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return "", fmt.Errorf("create attachment copy: %w", err)
		}

		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			os.Remove(dst)
			return "", fmt.Errorf("copy attachment: %w", err)
		}
		if err := out.Close(); err != nil {
			os.Remove(dst)
			return "", fmt.Errorf("flush attachment copy: %w", err)
		}

		logger.Info("Attachments: file copied into managed storage",
			zap.String("source", src), zap.String("stored", dst))
		return dst, nil
	}

	// Unreachable in practice: the uuid candidate cannot collide.
	return "", fmt.Errorf("no free name for attachment %q", base)
}

// Remove deletes a managed copy. Used to undo the copy half of a create
// when the row insert fails.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil {
		logger.Warn("Attachments: failed to remove managed copy",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("remove attachment: %w", err)
	}
	return nil
}
