package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/radar-turret/internal/domain/turret"
	"github.com/oshokin/radar-turret/internal/hardware"
)

// blinkOnTime is a wall time in the "on" half of every blink period.
var blinkOnTime = time.UnixMilli(0) //nolint:gochecknoglobals // Test fixture.

func newTestRenderer() (renderer, *hardware.SimLight, *hardware.SimBuzzer) {
	light := new(hardware.SimLight)
	buzzer := new(hardware.SimBuzzer)

	return renderer{light: light, buzzer: buzzer}, light, buzzer
}

// TestAlertTiers checks the tone ladder of the distance tiers.
func TestAlertTiers(t *testing.T) {
	t.Parallel()

	r, light, buzzer := newTestRenderer()
	cfg := turret.DefaultSettings()

	// Caution: steady mode color, low tone.
	r.alert(turret.ModeSentry, cfg, 40, blinkOnTime)
	require.True(t, light.On)
	require.Equal(t, toneCautionHz, buzzer.FreqHz)

	// Warning: steady warm color, mid tone.
	r.alert(turret.ModeSentry, cfg, 10, blinkOnTime)
	require.Equal(t, toneWarningHz, buzzer.FreqHz)

	// Critical: blinking red, highest tone on the lit phase.
	r.alert(turret.ModeSentry, cfg, 3, blinkOnTime)
	require.Equal(t, toneCriticalHz, buzzer.FreqHz)
	require.True(t, light.On)

	// Off phase of the blink darkens and silences.
	r.alert(turret.ModeSentry, cfg, 3, blinkOnTime.Add(blinkPeriod))
	require.False(t, light.On)
	require.Zero(t, buzzer.FreqHz)
}

// TestAlertStealthIsDimAndSilent: stealth overrides every tier.
func TestAlertStealthIsDimAndSilent(t *testing.T) {
	t.Parallel()

	r, light, buzzer := newTestRenderer()
	cfg := turret.DefaultSettings()

	for _, dist := range []int{2, 10, 40} {
		r.alert(turret.ModeStealth, cfg, dist, blinkOnTime)
	}

	require.True(t, light.On)
	require.Zero(t, buzzer.Tones)

	// Dim: nowhere near full intensity.
	stealthLevel := effectiveIntensity(turret.ModeStealth, cfg)
	require.Less(t, stealthLevel, uint8(64))
}

// TestAlertGlobalMuteSuppressesAllTones: when the settings disable audio,
// no tone is ever emitted regardless of tier.
func TestAlertGlobalMuteSuppressesAllTones(t *testing.T) {
	t.Parallel()

	r, _, buzzer := newTestRenderer()
	cfg := turret.DefaultSettings()
	cfg.AudioEnabled = false

	for _, dist := range []int{2, 10, 40} {
		r.alert(turret.ModeSentry, cfg, dist, blinkOnTime)
		r.alert(turret.ModeParty, cfg, dist, blinkOnTime)
	}

	require.Zero(t, buzzer.Tones)
}

// TestAlertPartyIgnoresTiers: the wheel runs and the tone tracks wall time,
// not distance.
func TestAlertPartyIgnoresTiers(t *testing.T) {
	t.Parallel()

	r, light, buzzer := newTestRenderer()
	cfg := turret.DefaultSettings()

	r.alert(turret.ModeParty, cfg, 2, blinkOnTime)
	closeTone := buzzer.FreqHz

	r.alert(turret.ModeParty, cfg, 190, blinkOnTime)
	require.Equal(t, closeTone, buzzer.FreqHz)
	require.True(t, light.On)
}

// TestIdleSilencesAudio: the idle animation always cuts the buzzer.
func TestIdleSilencesAudio(t *testing.T) {
	t.Parallel()

	r, light, buzzer := newTestRenderer()
	buzzer.FreqHz = 999

	r.idle(turret.ModeSentry, turret.DefaultSettings(), blinkOnTime.Add(500*time.Millisecond))
	require.True(t, light.On)
	require.Zero(t, buzzer.FreqHz)
}

// TestHueToColorEndpoints sanity-checks the wheel conversion.
func TestHueToColorEndpoints(t *testing.T) {
	t.Parallel()

	require.Equal(t, hardware.Color{R: 255}, hueToColor(0))
	require.Equal(t, hardware.Color{G: 255}, hueToColor(120))
	require.Equal(t, hardware.Color{B: 255}, hueToColor(240))
}
