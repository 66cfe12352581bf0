package turret

import "time"

// Settings is the turret tuning record edited from the panel and persisted
// across restarts. All fields are clamped to the panel slider ranges and the
// angle bounds are repaired to defaults whenever min >= max.
type Settings struct {
	// MaxRangeCM is the detection range: samples at or beyond it are ignored.
	MaxRangeCM int `yaml:"max_range_cm"`
	// LockMS is how long a detection is held before the sweep resumes,
	// in milliseconds.
	LockMS int `yaml:"lock_ms"`
	// MinAngle and MaxAngle bound the sweep arc in degrees.
	MinAngle int `yaml:"min_angle"`
	MaxAngle int `yaml:"max_angle"`
	// Brightness scales every light effect (0-255).
	Brightness uint8 `yaml:"brightness"`
	// AudioEnabled is the global mute switch; mode audio flags still apply.
	AudioEnabled bool `yaml:"audio_enabled"`
}

// Panel slider ranges and repair defaults, matching the original firmware.
const (
	DefaultMaxRangeCM = 50
	MinMaxRangeCM     = 10
	MaxMaxRangeCM     = 200

	DefaultLockMS = 2000
	MinLockMS     = 500
	MaxLockMS     = 5000

	DefaultMinAngle = 15
	DefaultMaxAngle = 165
	LowestMinAngle  = 0
	HighestMinAngle = 80
	LowestMaxAngle  = 100
	HighestMaxAngle = 180

	DefaultBrightness = 200
)

// DefaultSettings returns the factory tuning.
func DefaultSettings() Settings {
	return Settings{
		MaxRangeCM:   DefaultMaxRangeCM,
		LockMS:       DefaultLockMS,
		MinAngle:     DefaultMinAngle,
		MaxAngle:     DefaultMaxAngle,
		Brightness:   DefaultBrightness,
		AudioEnabled: true,
	}
}

// Normalize clamps every field to its slider range and repairs the angle
// bounds to defaults when min >= max. Invalid input is never an error:
// the record is made safe in place.
func (s *Settings) Normalize() {
	s.MaxRangeCM = clamp(s.MaxRangeCM, MinMaxRangeCM, MaxMaxRangeCM)
	s.LockMS = clamp(s.LockMS, MinLockMS, MaxLockMS)

	// An inverted arc is repaired to the factory bounds outright; clamping
	// alone could silently keep a nonsense pair.
	if s.MinAngle >= s.MaxAngle {
		s.MinAngle = DefaultMinAngle
		s.MaxAngle = DefaultMaxAngle
	}

	s.MinAngle = clamp(s.MinAngle, LowestMinAngle, HighestMinAngle)
	s.MaxAngle = clamp(s.MaxAngle, LowestMaxAngle, HighestMaxAngle)

	if s.Brightness == 0 {
		s.Brightness = DefaultBrightness
	}
}

// LockDuration returns the lock-on hold time as a duration.
func (s Settings) LockDuration() time.Duration {
	return time.Duration(s.LockMS) * time.Millisecond
}

// clamp bounds v to [low, high].
func clamp(v, low, high int) int {
	if v < low {
		return low
	}

	if v > high {
		return high
	}

	return v
}
