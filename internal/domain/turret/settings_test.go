package turret

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestNormalizeRepairsInvertedAngles asserts the documented repair:
// min=170, max=160 comes back as the factory 15/165 pair.
func TestNormalizeRepairsInvertedAngles(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.MinAngle = 170
	s.MaxAngle = 160

	s.Normalize()

	require.Equal(t, DefaultMinAngle, s.MinAngle)
	require.Equal(t, DefaultMaxAngle, s.MaxAngle)
}

// TestNormalizeClampsSliderRanges checks that out-of-range values are pulled
// back to the panel slider bounds rather than rejected.
func TestNormalizeClampsSliderRanges(t *testing.T) {
	t.Parallel()

	s := Settings{
		MaxRangeCM: 9999,
		LockMS:     1,
		MinAngle:   -20,
		MaxAngle:   400,
	}

	s.Normalize()

	require.Equal(t, MaxMaxRangeCM, s.MaxRangeCM)
	require.Equal(t, MinLockMS, s.LockMS)
	require.Equal(t, LowestMinAngle, s.MinAngle)
	require.Equal(t, HighestMaxAngle, s.MaxAngle)
	require.Equal(t, uint8(DefaultBrightness), s.Brightness)
}

// TestLockDuration converts milliseconds correctly.
func TestLockDuration(t *testing.T) {
	t.Parallel()

	s := Settings{LockMS: 1500}
	require.Equal(t, 1500*time.Millisecond, s.LockDuration())
}

// TestModeTable checks the panel index mapping and the parameter bundles.
func TestModeTable(t *testing.T) {
	t.Parallel()

	mode, ok := ModeByIndex(2)
	require.True(t, ok)
	require.Equal(t, ModeAggressive, mode)

	_, ok = ModeByIndex(4)
	require.False(t, ok)

	_, ok = ModeByIndex(-1)
	require.False(t, ok)

	// Stealth never emits audio; aggressive runs the fastest sweep.
	require.False(t, ModeStealth.Params().Audio)
	for i := 0; i < ModeCount(); i++ {
		m, _ := ModeByIndex(i)
		if m == ModeAggressive {
			continue
		}

		require.Greater(t, m.Params().SweepInterval, ModeAggressive.Params().SweepInterval)
	}

	// Short-press cycle wraps around.
	require.Equal(t, ModeSentry, ModeParty.Next())
}
