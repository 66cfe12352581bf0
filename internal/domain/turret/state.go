package turret

import "time"

// ControlState is the discrete state of the control loop.
// Exactly one state is active at any instant; transitions are the only
// place behavior changes.
type ControlState uint8

// Lifecycle: the machine is created in StateStartup and lives until the
// process exits.
const (
	// StateStartup plays the boot melody before the turret becomes usable.
	StateStartup ControlState = iota
	// StateIdle renders the ambient animation and waits for a start command.
	StateIdle
	// StateScanning sweeps the arc and samples for objects.
	StateScanning
	// StateLocked holds alert and pointer on the last detection.
	StateLocked
	// StateModeSwitching flashes the new mode color for a few frames.
	StateModeSwitching
)

// String returns a short name for logs.
func (s ControlState) String() string {
	switch s {
	case StateStartup:
		return "startup"
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateLocked:
		return "locked"
	case StateModeSwitching:
		return "mode-switching"
	default:
		return "unknown"
	}
}

// Detection is a qualifying sample: an object seen inside the configured
// range. It stays sticky until cleared or overwritten.
type Detection struct {
	// Angle is the sweep bearing at the moment of detection, in degrees.
	Angle int
	// DistanceCM is the measured range in centimeters.
	DistanceCM int
	// At is when the detection was recorded.
	At time.Time
}

// Status is the read-only snapshot published by the engine after every pass.
// It backs the /status endpoint and must never require locking to read.
type Status struct {
	// Angle is the current sweep bearing in degrees.
	Angle int
	// DistanceCM is the range of the object currently held in lock,
	// or zero when nothing is locked.
	DistanceCM int
	// MaxRangeCM mirrors the configured detection range.
	MaxRangeCM int
	// Running reports whether scanning is active.
	Running bool
	// Mode is the active operating mode.
	Mode OperatingMode
	// State is the active control state.
	State ControlState
	// HasDetection guards the Last* fields.
	HasDetection bool
	// LastAngle and LastDistanceCM describe the sticky last detection.
	LastAngle      int
	LastDistanceCM int
}
