package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/radar-turret/internal/config"
	"github.com/oshokin/radar-turret/internal/domain/turret"
)

// Repository defines persistence operations for the turret tuning record.
type Repository interface {
	Load(ctx context.Context) (*turret.Settings, error)
	Save(ctx context.Context, s *turret.Settings) error
}

// ErrNotFound is returned when the settings file does not exist yet.
var ErrNotFound = errors.New("settings not found")

// FileRepository persists the tuning record to a YAML file on disk.
// Loaded records are normalized, so a hand-edited or corrupted file never
// reaches the control loop with out-of-range values.
type FileRepository struct {
	// path is the filesystem location of the YAML settings file.
	path string
	// mu protects concurrent access to the settings file.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the tuning record from disk and normalizes it.
func (r *FileRepository) Load(_ context.Context) (*turret.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var s turret.Settings
	if err = yaml.Unmarshal(contents, &s); err != nil {
		return nil, fmt.Errorf("decode settings file: %w", err)
	}

	s.Normalize()

	return &s, nil
}

// Save writes the tuning record to disk as YAML.
func (r *FileRepository) Save(_ context.Context, s *turret.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}
