package hardware

// Color is an RGB triple for the alert light.
type Color struct {
	R, G, B uint8
}

// Scale returns the color dimmed by brightness (0-255).
func (c Color) Scale(brightness uint8) Color {
	b := uint16(brightness)

	return Color{
		R: uint8(uint16(c.R) * b / 255),
		G: uint8(uint16(c.G) * b / 255),
		B: uint8(uint16(c.B) * b / 255),
	}
}

// DistanceSensor issues a ranging pulse and reports the echo distance.
//
// ok is false when no echo arrived before the sensor timeout. That is the
// normal out-of-range outcome, not a fault, and happens on most samples.
// Callers must respect the sweep cadence: back-to-back samples without
// settling risk stale echoes.
type DistanceSensor interface {
	Sample() (distanceCM int, ok bool)
}

// Servo is a positional actuator with no feedback.
type Servo interface {
	Move(angleDeg int)
}

// Light is the alert light output.
type Light interface {
	Set(c Color)
	Off()
}

// Buzzer is the alert/melody tone output.
type Buzzer interface {
	Tone(freqHz int)
	NoTone()
}

// Button exposes the raw level of the momentary input.
// Debouncing is the engine's job; this is the bouncy contact.
type Button interface {
	Pressed() bool
}

// Rig bundles the turret peripherals the engine drives.
type Rig struct {
	// Sensor is the ranging sensor riding on the sweep servo.
	Sensor DistanceSensor
	// Sweep carries the sensor across the arc.
	Sweep Servo
	// Pointer is the secondary actuator aimed at detections.
	Pointer Servo
	// Light is the alert light.
	Light Light
	// Buzzer is the tone output.
	Buzzer Buzzer
	// Button is the momentary mode/scan input.
	Button Button
}
