package engine

import (
	"time"

	"github.com/oshokin/radar-turret/internal/domain/turret"
	"github.com/oshokin/radar-turret/internal/hardware"
)

// note is one melody step. A zero frequency is a rest.
type note struct {
	freqHz int
	dur    time.Duration
}

// tune is an immutable note sequence.
type tune []note

//nolint:gochecknoglobals // Pre-authored tunes are shared immutable data.
var (
	// startupTune plays while the turret boots.
	startupTune = tune{
		{523, 120 * time.Millisecond},  // C5
		{659, 120 * time.Millisecond},  // E5
		{784, 120 * time.Millisecond},  // G5
		{0, 60 * time.Millisecond},     // rest
		{1047, 240 * time.Millisecond}, // C6
	}

	// Per-mode stingers, played on mode change.
	sentryStinger = tune{
		{784, 90 * time.Millisecond},
		{988, 140 * time.Millisecond},
	}
	aggressiveStinger = tune{
		{880, 70 * time.Millisecond},
		{0, 40 * time.Millisecond},
		{880, 70 * time.Millisecond},
		{1175, 140 * time.Millisecond},
	}
	partyStinger = tune{
		{659, 90 * time.Millisecond},
		{784, 90 * time.Millisecond},
		{988, 90 * time.Millisecond},
		{1319, 180 * time.Millisecond},
	}
)

// stingerFor returns the mode-change stinger for the mode. Stealth has none:
// its audio flag silences the sequencer anyway, and an empty tune keeps the
// playing flag clear.
func stingerFor(mode turret.OperatingMode) tune {
	switch mode {
	case turret.ModeSentry:
		return sentryStinger
	case turret.ModeAggressive:
		return aggressiveStinger
	case turret.ModeParty:
		return partyStinger
	case turret.ModeStealth:
		fallthrough
	default:
		return nil
	}
}

// sequencer plays a tune without ever blocking: start emits the first note
// immediately and tick advances to the next note only once the current one's
// duration has elapsed. Starting a new tune overwrites any in-flight one;
// abandoned notes are never played.
type sequencer struct {
	out       hardware.Buzzer
	notes     tune
	index     int
	noteStart time.Time
	playing   bool
}

// start begins playing the tune from its first note.
func (s *sequencer) start(notes tune, now time.Time) {
	s.notes = notes
	s.index = 0
	s.noteStart = now
	s.playing = len(notes) > 0

	if !s.playing {
		s.out.NoTone()

		return
	}

	s.emit(notes[0])
}

// tick advances the tune when the current note has run its duration.
// Completion silences the output and clears the playing flag.
func (s *sequencer) tick(now time.Time) {
	if !s.playing {
		return
	}

	if now.Sub(s.noteStart) < s.notes[s.index].dur {
		return
	}

	s.index++
	if s.index >= len(s.notes) {
		s.stop()

		return
	}

	s.noteStart = now
	s.emit(s.notes[s.index])
}

// stop abandons the tune and silences the output.
func (s *sequencer) stop() {
	s.playing = false
	s.out.NoTone()
}

// emit sounds a note, or silences for a rest.
func (s *sequencer) emit(n note) {
	if n.freqHz <= 0 {
		s.out.NoTone()

		return
	}

	s.out.Tone(n.freqHz)
}
