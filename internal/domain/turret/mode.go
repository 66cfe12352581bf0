package turret

import "time"

// OperatingMode is one of the turret's named behavior presets.
// Exactly one mode is active at a time; switching is a discrete event.
type OperatingMode uint8

// The four presets of the original rig, in panel button order.
const (
	ModeSentry OperatingMode = iota
	ModeStealth
	ModeAggressive
	ModeParty

	modeCount
)

// ModeParams is the immutable parameter bundle of a mode.
type ModeParams struct {
	// SweepInterval is the time between sweep steps. Shorter means a
	// faster, lower-resolution scan.
	SweepInterval time.Duration
	// Intensity is the alert brightness ceiling (0-255).
	Intensity uint8
	// Audio reports whether the mode is allowed to emit tones at all.
	Audio bool
}

// Params returns the parameter bundle for the mode.
func (m OperatingMode) Params() ModeParams {
	switch m {
	case ModeStealth:
		return ModeParams{SweepInterval: 60 * time.Millisecond, Intensity: 40, Audio: false}
	case ModeAggressive:
		return ModeParams{SweepInterval: 15 * time.Millisecond, Intensity: 255, Audio: true}
	case ModeParty:
		return ModeParams{SweepInterval: 25 * time.Millisecond, Intensity: 255, Audio: true}
	case ModeSentry:
		fallthrough
	default:
		return ModeParams{SweepInterval: 30 * time.Millisecond, Intensity: 180, Audio: true}
	}
}

// String returns the mode name as shown on the panel.
func (m OperatingMode) String() string {
	switch m {
	case ModeSentry:
		return "SENTRY"
	case ModeStealth:
		return "STEALTH"
	case ModeAggressive:
		return "AGGRESSIVE"
	case ModeParty:
		return "PARTY"
	default:
		return "UNKNOWN"
	}
}

// Next returns the following mode in panel order, wrapping around.
// Used by the short-press mode cycle on the physical button.
func (m OperatingMode) Next() OperatingMode {
	return (m + 1) % modeCount
}

// ModeByIndex maps a panel mode index to an OperatingMode.
// Reports false for out-of-range input.
func ModeByIndex(index int) (OperatingMode, bool) {
	if index < 0 || index >= int(modeCount) {
		return ModeSentry, false
	}

	return OperatingMode(index), true
}

// ModeCount is the number of selectable modes.
func ModeCount() int {
	return int(modeCount)
}
