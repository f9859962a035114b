package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/teemow/opshelm/internal/logging"
)

// DateLayout is the date stamp used in report directory and file names.
const DateLayout = "2006-01-02"

// Writer writes files below Dir, creating parent directories as needed.
type Writer struct {
	Dir    string
	logger logging.Logger
}

// NewWriter creates a Writer rooted at dir. A nil logger discards output.
func NewWriter(dir string, logger logging.Logger) *Writer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Writer{Dir: dir, logger: logger}
}

// WriteFile writes content to Dir/rel and returns the full path.
func (w *Writer) WriteFile(rel, content string) (string, error) {
	path := filepath.Join(w.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.logger.Debug("report written", logging.KeyPath, path, "bytes", len(content))
	return path, nil
}

// ReadFile reads Dir/rel.
func (w *Writer) ReadFile(rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(w.Dir, rel))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", rel, err)
	}
	return string(data), nil
}

// Timestamp formats t as a YYYY-MM-DD date stamp.
func Timestamp(t time.Time) string {
	return t.Format(DateLayout)
}
