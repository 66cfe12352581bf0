package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/radar-turret/internal/config"
	"github.com/oshokin/radar-turret/internal/domain/turret"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for a missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.yaml"))
	s, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, s)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns the same record.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "settings.yaml")
	repo := NewFileRepository(file)

	want := turret.Settings{
		MaxRangeCM:   120,
		LockMS:       1500,
		MinAngle:     20,
		MaxAngle:     150,
		Brightness:   80,
		AudioEnabled: true,
	}

	require.NoError(t, repo.Save(context.Background(), &want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, *got)

	_, err = os.Stat(file)
	require.NoError(t, err)
}

// TestFileRepository_Load_NormalizesHandEditedFile: out-of-range values in a
// hand-edited file are clamped and an inverted arc is repaired on load.
func TestFileRepository_Load_NormalizesHandEditedFile(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "settings.yaml")

	contents := "max_range_cm: 9000\nlock_ms: 1\nmin_angle: 170\nmax_angle: 160\nbrightness: 10\naudio_enabled: true\n"
	require.NoError(t, os.WriteFile(file, []byte(contents), config.DefaultFilePermissions))

	got, err := NewFileRepository(file).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, turret.MaxMaxRangeCM, got.MaxRangeCM)
	require.Equal(t, turret.MinLockMS, got.LockMS)
	require.Equal(t, turret.DefaultMinAngle, got.MinAngle)
	require.Equal(t, turret.DefaultMaxAngle, got.MaxAngle)
}

// TestFileRepository_Load_Corrupted surfaces a decode error instead of a zero record.
func TestFileRepository_Load_Corrupted(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(file, []byte("{not yaml"), config.DefaultFilePermissions))

	s, err := NewFileRepository(file).Load(context.Background())
	require.Error(t, err)
	require.Nil(t, s)
}
