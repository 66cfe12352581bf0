package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/radar-turret/internal/hardware"
)

// TestSequencerAdvancesOnElapsedTime covers the timing contract: less than
// the first duration keeps index 0, and time past the sum of all durations
// clears the playing flag.
func TestSequencerAdvancesOnElapsedTime(t *testing.T) {
	t.Parallel()

	buzzer := new(hardware.SimBuzzer)
	s := sequencer{out: buzzer}
	t0 := time.Now()

	s.start(startupTune, t0)
	require.True(t, s.playing)
	require.Equal(t, startupTune[0].freqHz, buzzer.FreqHz)

	// Less than the first note's duration: still on the first note.
	s.tick(t0.Add(startupTune[0].dur / 2))
	require.Equal(t, 0, s.index)
	require.True(t, s.playing)

	// Walk simulated time past the sum of all durations.
	now := t0
	for i := 0; i < 100; i++ {
		now = now.Add(50 * time.Millisecond)
		s.tick(now)
	}

	require.False(t, s.playing)
	require.Zero(t, buzzer.FreqHz)
}

// TestSequencerRestPlaysSilence ensures a zero-frequency entry silences the
// output instead of emitting a tone.
func TestSequencerRestPlaysSilence(t *testing.T) {
	t.Parallel()

	buzzer := new(hardware.SimBuzzer)
	s := sequencer{out: buzzer}
	t0 := time.Now()

	s.start(tune{{0, 100 * time.Millisecond}, {440, 100 * time.Millisecond}}, t0)
	require.True(t, s.playing)
	require.Zero(t, buzzer.FreqHz)

	s.tick(t0.Add(120 * time.Millisecond))
	require.Equal(t, 440, buzzer.FreqHz)
}

// TestSequencerRestartAbandonsInFlightTune: starting a new tune overwrites
// the old one, no queueing.
func TestSequencerRestartAbandonsInFlightTune(t *testing.T) {
	t.Parallel()

	buzzer := new(hardware.SimBuzzer)
	s := sequencer{out: buzzer}
	t0 := time.Now()

	s.start(aggressiveStinger, t0)
	s.tick(t0.Add(80 * time.Millisecond))
	require.Equal(t, 1, s.index)

	s.start(partyStinger, t0.Add(100*time.Millisecond))
	require.Equal(t, 0, s.index)
	require.Equal(t, partyStinger[0].freqHz, buzzer.FreqHz)
}

// TestSequencerEmptyTune keeps the loop treatable as idle immediately.
func TestSequencerEmptyTune(t *testing.T) {
	t.Parallel()

	buzzer := &hardware.SimBuzzer{FreqHz: 440}
	s := sequencer{out: buzzer}

	s.start(nil, time.Now())
	require.False(t, s.playing)
	require.Zero(t, buzzer.FreqHz)
}
