package engine

import (
	"math"
	"time"

	"github.com/oshokin/radar-turret/internal/domain/turret"
	"github.com/oshokin/radar-turret/internal/hardware"
)

// Distance tiers and blink timing. Hand-tuned in the original firmware;
// kept as constants here so there is one place to adjust the feel.
const (
	tierCriticalCM = 5
	tierWarningCM  = 15

	blinkPeriod           = 300 * time.Millisecond
	aggressiveBlinkPeriod = 120 * time.Millisecond

	toneCriticalHz = 1800
	toneWarningHz  = 1100
	toneCautionHz  = 600

	breathePeriod = 2 * time.Second
)

// renderer maps mode, distance tier and wall time onto the light and buzzer.
// Blink phase is derived from wall time modulo the blink period rather than
// a stored toggle bit, so it never drifts.
type renderer struct {
	light  hardware.Light
	buzzer hardware.Buzzer
}

// modeColor returns the panel color of a mode.
func modeColor(mode turret.OperatingMode) hardware.Color {
	switch mode {
	case turret.ModeSentry:
		return hardware.Color{G: 255}
	case turret.ModeStealth:
		return hardware.Color{R: 102, G: 102, B: 102}
	case turret.ModeAggressive:
		return hardware.Color{R: 255}
	case turret.ModeParty:
		return hardware.Color{R: 255, B: 255}
	default:
		return hardware.Color{R: 255, G: 255, B: 255}
	}
}

// alert renders a detection at the given distance.
func (r renderer) alert(mode turret.OperatingMode, cfg turret.Settings, distCM int, now time.Time) {
	level := effectiveIntensity(mode, cfg)
	audio := cfg.AudioEnabled && mode.Params().Audio

	switch mode {
	case turret.ModeStealth:
		// Dim, silent, regardless of tier.
		r.light.Set(modeColor(mode).Scale(level))
		r.buzzer.NoTone()

		return
	case turret.ModeParty:
		// Color wheel and a wall-time tone, ignoring tiers.
		r.light.Set(wheelColor(now).Scale(level))
		r.tone(audio, partyToneHz(now))

		return
	case turret.ModeSentry, turret.ModeAggressive:
	}

	switch {
	case distCM < tierCriticalCM:
		period := blinkPeriod
		if mode == turret.ModeAggressive {
			period = aggressiveBlinkPeriod
		}

		if blinkOn(now, period) {
			r.light.Set(hardware.Color{R: 255}.Scale(level))
			r.tone(audio, toneCriticalHz)
		} else {
			r.light.Off()
			r.buzzer.NoTone()
		}
	case distCM < tierWarningCM:
		r.light.Set(hardware.Color{R: 255, G: 140}.Scale(level))
		r.tone(audio, toneWarningHz)
	default:
		r.light.Set(modeColor(mode).Scale(level))
		r.tone(audio, toneCautionHz)
	}
}

// idle renders the ambient mode animation and silences audio.
func (r renderer) idle(mode turret.OperatingMode, cfg turret.Settings, now time.Time) {
	level := effectiveIntensity(mode, cfg)

	switch mode {
	case turret.ModeParty:
		r.light.Set(wheelColor(now).Scale(level))
	case turret.ModeStealth:
		r.light.Set(modeColor(mode).Scale(level))
	case turret.ModeSentry, turret.ModeAggressive:
		fallthrough
	default:
		r.light.Set(modeColor(mode).Scale(breathe(level, now)))
	}

	r.buzzer.NoTone()
}

// startup renders the white boot pulse. The buzzer is left alone so the
// startup melody is not cut off between notes.
func (r renderer) startup(cfg turret.Settings, now time.Time) {
	r.light.Set(hardware.Color{R: 255, G: 255, B: 255}.Scale(breathe(cfg.Brightness, now)))
}

// flash renders one frame of the mode-switch flash.
func (r renderer) flash(mode turret.OperatingMode, cfg turret.Settings, on bool) {
	if !on {
		r.light.Off()

		return
	}

	r.light.Set(modeColor(mode).Scale(effectiveIntensity(mode, cfg)))
}

// off darkens and silences everything.
func (r renderer) off() {
	r.light.Off()
	r.buzzer.NoTone()
}

// tone sounds freq when audio is allowed, silence otherwise.
func (r renderer) tone(audio bool, freqHz int) {
	if !audio {
		r.buzzer.NoTone()

		return
	}

	r.buzzer.Tone(freqHz)
}

// effectiveIntensity folds the mode intensity ceiling into the configured
// brightness.
func effectiveIntensity(mode turret.OperatingMode, cfg turret.Settings) uint8 {
	return uint8(int(mode.Params().Intensity) * int(cfg.Brightness) / 255)
}

// blinkOn derives the blink phase from wall time.
func blinkOn(now time.Time, period time.Duration) bool {
	return (now.UnixMilli()/period.Milliseconds())%2 == 0
}

// breathe modulates a brightness level with a slow sine pulse.
func breathe(level uint8, now time.Time) uint8 {
	phase := float64(now.UnixMilli()%breathePeriod.Milliseconds()) / float64(breathePeriod.Milliseconds())
	factor := 0.35 + 0.65*(0.5+0.5*math.Sin(2*math.Pi*phase))

	return uint8(float64(level) * factor)
}

// wheelColor walks the hue circle with wall time.
func wheelColor(now time.Time) hardware.Color {
	hue := int(now.UnixMilli()/20) % 360

	return hueToColor(hue)
}

// partyToneHz derives a sweeping tone from wall time.
func partyToneHz(now time.Time) int {
	return 400 + int(now.UnixMilli()/30%80)*10
}

// hueToColor converts a hue in degrees to a fully saturated RGB color.
func hueToColor(hue int) hardware.Color {
	h := float64(hue) / 60
	x := uint8(255 * (1 - math.Abs(math.Mod(h, 2)-1)))

	switch {
	case h < 1:
		return hardware.Color{R: 255, G: x}
	case h < 2:
		return hardware.Color{R: x, G: 255}
	case h < 3:
		return hardware.Color{G: 255, B: x}
	case h < 4:
		return hardware.Color{G: x, B: 255}
	case h < 5:
		return hardware.Color{R: x, B: 255}
	default:
		return hardware.Color{R: 255, B: x}
	}
}
