package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oshokin/radar-turret/internal/domain/turret"
	"github.com/oshokin/radar-turret/internal/hardware"
	"github.com/oshokin/radar-turret/internal/logger"
)

// SettingsStore persists the turret tuning record.
type SettingsStore interface {
	Save(ctx context.Context, s *turret.Settings) error
}

// EventSink records one line per detection event.
type EventSink interface {
	Append(ctx context.Context, line string) error
}

// Announcer publishes detection events to external listeners.
// Implementations must not block the caller.
type Announcer interface {
	Announce(ctx context.Context, det turret.Detection, mode turret.OperatingMode)
}

const (
	// defaultPassInterval is the cadence of the cooperative loop. Every
	// component checks its own gate each pass, so this only bounds timing
	// resolution.
	defaultPassInterval = 5 * time.Millisecond

	// renderInterval paces light/tone updates.
	renderInterval = 33 * time.Millisecond

	// modeFlashFrames and flashFrameInterval shape the mode-switch flash.
	modeFlashFrames    = 6
	flashFrameInterval = 80 * time.Millisecond

	// centerAngle is where both servos rest.
	centerAngle = 90
)

// ErrInvalidMode is returned for a mode index outside the panel range.
var ErrInvalidMode = errors.New("mode index out of range")

// Options configure a new Engine. Rig is required; everything else may be
// left zero/nil, in which case persistence and announcements are no-ops.
type Options struct {
	// Rig is the peripheral bundle the engine drives.
	Rig hardware.Rig
	// Settings is the initial tuning record; it is normalized on use.
	Settings turret.Settings
	// Store persists tuning updates.
	Store SettingsStore
	// Events receives detection log lines.
	Events EventSink
	// Announcer receives detection events.
	Announcer Announcer
	// PassInterval overrides the loop cadence, mostly for tests.
	PassInterval time.Duration
}

// Engine is the turret control loop. A single goroutine (Run) owns every
// mutable field; there is no locking because there is no sharing. External
// callers interact through commands executed between passes and through the
// atomically published status snapshot.
type Engine struct {
	rig       hardware.Rig
	store     SettingsStore
	events    EventSink
	announcer Announcer

	settings turret.Settings
	mode     turret.OperatingMode
	state    turret.ControlState
	running  bool

	angle     int
	direction int
	sweepGate gate

	det          turret.Detection
	hasDetection bool
	lockStart    time.Time

	melody     sequencer
	button     debouncer
	render     renderer
	renderGate gate

	flashLeft      int
	flashGate      gate
	resumeScanning bool

	booted     bool
	bootedAt   time.Time
	timeSynced bool
	syncBase   time.Time
	syncAt     time.Time

	passInterval time.Duration
	commands     chan func(now time.Time)
	status       atomic.Pointer[turret.Status]
}

// New builds an engine in the Startup state. Call Run to bring it to life.
func New(opts Options) *Engine {
	opts.Settings.Normalize()

	if opts.PassInterval <= 0 {
		opts.PassInterval = defaultPassInterval
	}

	e := &Engine{
		rig:          opts.Rig,
		store:        opts.Store,
		events:       opts.Events,
		announcer:    opts.Announcer,
		settings:     opts.Settings,
		mode:         turret.ModeSentry,
		state:        turret.StateStartup,
		angle:        centerAngle,
		direction:    1,
		melody:       sequencer{out: opts.Rig.Buzzer},
		render:       renderer{light: opts.Rig.Light, buzzer: opts.Rig.Buzzer},
		bootedAt:     time.Now(),
		passInterval: opts.PassInterval,
		commands:     make(chan func(now time.Time), 8),
	}
	e.publish()

	return e
}

// Run drives the cooperative loop until the context is canceled. Each pass
// polls the button, advances the melody, dispatches the active state handler
// and publishes a fresh status snapshot. Commands from the network side are
// executed between passes on this same goroutine.
func (e *Engine) Run(ctx context.Context) {
	ctx = logger.WithName(ctx, "engine")

	ticker := time.NewTicker(e.passInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.render.off()
			logger.Info(ctx, "Control loop stopped")

			return
		case cmd := <-e.commands:
			cmd(time.Now())
			e.publish()
		case now := <-ticker.C:
			e.tick(ctx, now)
		}
	}
}

// tick is one cooperative pass.
func (e *Engine) tick(ctx context.Context, now time.Time) {
	switch e.button.poll(e.rig.Button.Pressed(), now) {
	case eventLongPress:
		e.toggleScanning(ctx)
	case eventShortPress:
		_ = e.selectMode(ctx, int(e.mode.Next()), now)
	case eventNone:
	}

	e.melody.tick(now)

	switch e.state {
	case turret.StateStartup:
		e.tickStartup(now)
	case turret.StateIdle:
		e.tickIdle(now)
	case turret.StateScanning:
		e.tickScanning(ctx, now)
	case turret.StateLocked:
		e.tickLocked(now)
	case turret.StateModeSwitching:
		e.tickModeSwitch(now)
	}

	e.publish()
}

// tickStartup plays the boot melody under a white pulse, then hands over to
// Idle when the melody's playing flag clears.
func (e *Engine) tickStartup(now time.Time) {
	if !e.booted {
		e.booted = true

		if e.audioAllowed() {
			e.melody.start(startupTune, now)
		}
	}

	if e.renderGate.ready(renderInterval, now) {
		e.render.startup(e.settings, now)
	}

	if !e.melody.playing {
		e.state = turret.StateIdle
	}
}

// tickIdle renders the ambient mode animation.
func (e *Engine) tickIdle(now time.Time) {
	if e.renderGate.ready(renderInterval, now) {
		e.render.idle(e.mode, e.settings, now)
	}
}

// tickScanning advances the sweep on its per-mode cadence and samples for
// objects. A sample strictly inside the configured range locks on; no echo
// and out-of-range samples keep scanning.
func (e *Engine) tickScanning(ctx context.Context, now time.Time) {
	if e.sweepGate.ready(e.mode.Params().SweepInterval, now) {
		e.angle, e.direction = step(e.angle, e.direction, e.settings.MinAngle, e.settings.MaxAngle)
		e.rig.Sweep.Move(e.angle)

		if dist, ok := e.rig.Sensor.Sample(); ok && dist < e.settings.MaxRangeCM {
			e.lock(ctx, dist, now)

			return
		}
	}

	if e.renderGate.ready(renderInterval, now) {
		e.render.idle(e.mode, e.settings, now)
	}
}

// lock records a detection, points the pointer at it, logs and announces it,
// and enters Locked.
func (e *Engine) lock(ctx context.Context, distCM int, now time.Time) {
	e.det = turret.Detection{Angle: e.angle, DistanceCM: distCM, At: now}
	e.hasDetection = true
	e.lockStart = now
	e.state = turret.StateLocked

	e.rig.Pointer.Move(e.angle)
	e.render.alert(e.mode, e.settings, distCM, now)

	if e.events != nil {
		line := fmt.Sprintf("[%s] %s: %dcm @ %d°", e.stamp(now), e.mode, distCM, e.angle)
		if err := e.events.Append(ctx, line); err != nil {
			logger.WarnKV(ctx, "Failed to append detection to event log", "error", err)
		}
	}

	if e.announcer != nil {
		e.announcer.Announce(ctx, e.det, e.mode)
	}

	logger.InfoKV(ctx, "Object detected",
		"angle", e.det.Angle,
		"distance_cm", e.det.DistanceCM,
		"mode", e.mode.String(),
	)
}

// tickLocked keeps re-rendering the held alert. The lock expires only when
// elapsed time strictly exceeds the configured duration.
func (e *Engine) tickLocked(now time.Time) {
	if now.Sub(e.lockStart) > e.settings.LockDuration() {
		e.state = turret.StateScanning
		e.rig.Pointer.Move(centerAngle)
		e.rig.Buzzer.NoTone()

		return
	}

	if e.renderGate.ready(renderInterval, now) {
		e.render.alert(e.mode, e.settings, e.det.DistanceCM, now)
	}
}

// tickModeSwitch flashes the new mode color for a fixed number of frames,
// then resumes where the turret was before the switch.
func (e *Engine) tickModeSwitch(now time.Time) {
	if !e.flashGate.ready(flashFrameInterval, now) {
		return
	}

	e.flashLeft--
	e.render.flash(e.mode, e.settings, e.flashLeft%2 == 0)

	if e.flashLeft <= 0 {
		if e.resumeScanning {
			e.state = turret.StateScanning
		} else {
			e.state = turret.StateIdle
		}
	}
}

// toggleScanning starts or stops the scan. Stopping is a hard interrupt from
// any active state: back to Idle, both servos centered, audio cut.
func (e *Engine) toggleScanning(ctx context.Context) {
	if e.state == turret.StateStartup {
		return
	}

	if e.running {
		e.running = false
		e.state = turret.StateIdle
		e.angle = centerAngle
		e.rig.Sweep.Move(centerAngle)
		e.rig.Pointer.Move(centerAngle)
		e.melody.stop()
		e.render.off()
	} else {
		e.running = true
		e.state = turret.StateScanning
		e.sweepGate = gate{}
	}

	logger.InfoKV(ctx, "Scanning toggled", "running", e.running, "mode", e.mode.String())
}

// selectMode validates and applies a mode change, entering the switch flash.
func (e *Engine) selectMode(ctx context.Context, index int, now time.Time) error {
	mode, ok := turret.ModeByIndex(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidMode, index)
	}

	if mode == e.mode {
		return nil
	}

	e.mode = mode
	e.resumeScanning = e.running
	e.flashLeft = modeFlashFrames
	e.flashGate = gate{}
	e.state = turret.StateModeSwitching

	if e.audioAllowed() {
		e.melody.start(stingerFor(mode), now)
	} else {
		e.melody.stop()
	}

	logger.InfoKV(ctx, "Mode selected", "mode", mode.String(), "resume_scanning", e.resumeScanning)

	return nil
}

// applySettings normalizes and adopts a tuning record, then persists it.
// Persistence failures degrade to a warning: the applied record still wins.
func (e *Engine) applySettings(ctx context.Context, s turret.Settings) turret.Settings {
	s.Normalize()
	e.settings = s

	if e.store != nil {
		if err := e.store.Save(ctx, &s); err != nil {
			logger.WarnKV(ctx, "Failed to persist turret settings", "error", err)
		}
	}

	logger.InfoKV(ctx, "Turret settings applied",
		"max_range_cm", s.MaxRangeCM,
		"lock_ms", s.LockMS,
		"min_angle", s.MinAngle,
		"max_angle", s.MaxAngle,
	)

	return s
}

// syncClock marks wall time as known for log timestamping.
func (e *Engine) syncClock(ctx context.Context, epoch int64, now time.Time) {
	e.timeSynced = true
	e.syncBase = time.Unix(epoch, 0)
	e.syncAt = now

	logger.InfoKV(ctx, "Wall clock synced", "epoch", epoch)
}

// stamp renders a log timestamp: wall clock once synced, uptime before that.
func (e *Engine) stamp(now time.Time) string {
	if e.timeSynced {
		return e.syncBase.Add(now.Sub(e.syncAt)).Format("15:04:05")
	}

	return fmt.Sprintf("+%ds", int(now.Sub(e.bootedAt).Seconds()))
}

// audioAllowed folds the global mute into the mode's audio flag.
func (e *Engine) audioAllowed() bool {
	return e.settings.AudioEnabled && e.mode.Params().Audio
}

// publish refreshes the lock-free status snapshot.
func (e *Engine) publish() {
	st := turret.Status{
		Angle:          e.angle,
		MaxRangeCM:     e.settings.MaxRangeCM,
		Running:        e.running,
		Mode:           e.mode,
		State:          e.state,
		HasDetection:   e.hasDetection,
		LastAngle:      e.det.Angle,
		LastDistanceCM: e.det.DistanceCM,
	}
	if e.state == turret.StateLocked {
		st.DistanceCM = e.det.DistanceCM
	}

	e.status.Store(&st)
}
