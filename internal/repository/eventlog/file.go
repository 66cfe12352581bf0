package eventlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/radar-turret/internal/config"
)

// Log defines the detection log operations the engine and the HTTP surface
// depend on.
type Log interface {
	Append(ctx context.Context, line string) error
	Read(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// FileLog is an append-only text file of detection lines with a hard size
// cap. When an append would push the file past the cap, the whole file is
// wiped first; old entries are cheap, running out of space is not.
type FileLog struct {
	// path is the filesystem location of the log file.
	path string
	// capBytes is the size ceiling that triggers a wipe.
	capBytes int64
	// mu protects concurrent access to the log file.
	mu sync.Mutex
}

// NewFileLog creates a capped detection log at the provided path.
// A non-positive cap falls back to the default.
func NewFileLog(path string, capBytes int64) *FileLog {
	if capBytes <= 0 {
		capBytes = config.DefaultEventLogCapBytes
	}

	return &FileLog{
		path:     filepath.Clean(path),
		capBytes: capBytes,
	}
}

// Append adds one line to the log, wiping the file first when the addition
// would exceed the cap.
func (l *FileLog) Append(_ context.Context, line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := line + "\n"

	size := int64(0)
	if info, err := os.Stat(l.path); err == nil {
		size = info.Size()
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat event log: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if size+int64(len(entry)) > l.capBytes {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}

	f, err := os.OpenFile(l.path, flags, config.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}

	if _, err = f.WriteString(entry); err != nil {
		_ = f.Close()

		return fmt.Errorf("write event log: %w", err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("close event log: %w", err)
	}

	return nil
}

// Read returns the whole log. A missing file reads as empty.
func (l *FileLog) Read(_ context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	contents, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}

		return "", fmt.Errorf("read event log: %w", err)
	}

	return string(contents), nil
}

// Clear wipes the log.
func (l *FileLog) Clear(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.WriteFile(l.path, nil, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("clear event log: %w", err)
	}

	return nil
}
