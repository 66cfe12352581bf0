package hardware

import "math/rand"

// Target is a simulated object standing in the arc.
type Target struct {
	// Angle is the bearing in degrees.
	Angle int
	// DistanceCM is the range in centimeters.
	DistanceCM int
}

// beamWidthDeg is how far off-bearing a target still returns an echo.
const beamWidthDeg = 6

// SimRig is a software stand-in for the physical turret. The sensor sees the
// configured targets whenever the sweep servo points close enough at one,
// with a little range jitter; everything else records the last commanded
// output so tests and the panel can observe it.
//
// The rig is not safe for concurrent use: like the real peripherals it is
// owned by the single engine goroutine.
type SimRig struct {
	Sensor  *SimSensor
	Sweep   *SimServo
	Pointer *SimServo
	Light   *SimLight
	Buzzer  *SimBuzzer
	Button  *SimButton
}

// NewSimRig builds a simulated rig with the provided targets in the arc.
func NewSimRig(targets []Target) *SimRig {
	sweep := &SimServo{Angle: 90}

	return &SimRig{
		Sensor:  &SimSensor{Targets: targets, sweep: sweep},
		Sweep:   sweep,
		Pointer: &SimServo{Angle: 90},
		Light:   &SimLight{},
		Buzzer:  &SimBuzzer{},
		Button:  &SimButton{},
	}
}

// Peripherals returns the rig bundle the engine consumes.
func (r *SimRig) Peripherals() Rig {
	return Rig{
		Sensor:  r.Sensor,
		Sweep:   r.Sweep,
		Pointer: r.Pointer,
		Light:   r.Light,
		Buzzer:  r.Buzzer,
		Button:  r.Button,
	}
}

// SimSensor returns echoes from targets near the sweep bearing.
type SimSensor struct {
	// Targets are the simulated objects in the arc.
	Targets []Target
	// Jitter disables the +-1cm range noise when false, keeping tests exact.
	Jitter bool

	sweep *SimServo
}

// Sample reports the nearest target within the beam, or no echo.
func (s *SimSensor) Sample() (int, bool) {
	best, found := 0, false

	for _, t := range s.Targets {
		diff := s.sweep.Angle - t.Angle
		if diff < 0 {
			diff = -diff
		}

		if diff > beamWidthDeg {
			continue
		}

		if !found || t.DistanceCM < best {
			best, found = t.DistanceCM, true
		}
	}

	if !found {
		return 0, false
	}

	if s.Jitter {
		best += rand.Intn(3) - 1 //nolint:gosec // Simulation noise, not crypto.
		if best < 1 {
			best = 1
		}
	}

	return best, true
}

// SimServo records the last commanded angle.
type SimServo struct {
	// Angle is the current position in degrees.
	Angle int
	// Moves counts commands, useful in tests.
	Moves int
}

// Move points the servo.
func (s *SimServo) Move(angleDeg int) {
	s.Angle = angleDeg
	s.Moves++
}

// SimLight records the last commanded color.
type SimLight struct {
	// Current is the color showing now; zero value when off.
	Current Color
	// On reports whether the light is lit.
	On bool
	// Sets counts commands.
	Sets int
}

// Set lights the LED with the given color.
func (l *SimLight) Set(c Color) {
	l.Current = c
	l.On = true
	l.Sets++
}

// Off darkens the LED.
func (l *SimLight) Off() {
	l.Current = Color{}
	l.On = false
}

// SimBuzzer records the last commanded tone.
type SimBuzzer struct {
	// FreqHz is the tone playing now; zero when silent.
	FreqHz int
	// Tones counts non-silent commands.
	Tones int
}

// Tone starts a tone at the given frequency.
func (b *SimBuzzer) Tone(freqHz int) {
	b.FreqHz = freqHz
	b.Tones++
}

// NoTone silences the buzzer.
func (b *SimBuzzer) NoTone() {
	b.FreqHz = 0
}

// SimButton is a settable momentary input.
type SimButton struct {
	// Level is the raw pressed level.
	Level bool
}

// Pressed reports the raw level.
func (b *SimButton) Pressed() bool {
	return b.Level
}
