package engine

import (
	"context"
	"time"

	"github.com/oshokin/radar-turret/internal/domain/turret"
)

// The exported methods below are the network-facing surface of the engine.
// Reads come from the published snapshot and never touch loop state; writes
// are shipped to the loop goroutine as commands and executed between passes,
// so the request handler and the hardware logic interleave only at pass
// granularity.

// Status returns the latest published snapshot without blocking.
func (e *Engine) Status() turret.Status {
	return *e.status.Load()
}

// ToggleScanning flips the scan on or off and reports the resulting state.
func (e *Engine) ToggleScanning(ctx context.Context) (bool, error) {
	var running bool

	err := e.do(ctx, func(time.Time) {
		e.toggleScanning(ctx)
		running = e.running
	})

	return running, err
}

// SetMode selects an operating mode by panel index.
// Returns ErrInvalidMode without mutating anything for an out-of-range index.
func (e *Engine) SetMode(ctx context.Context, index int) error {
	if _, ok := turret.ModeByIndex(index); !ok {
		return ErrInvalidMode
	}

	var modeErr error

	err := e.do(ctx, func(now time.Time) {
		modeErr = e.selectMode(ctx, index, now)
	})
	if err != nil {
		return err
	}

	return modeErr
}

// Settings returns a copy of the active tuning record.
func (e *Engine) Settings(ctx context.Context) (turret.Settings, error) {
	var s turret.Settings

	err := e.do(ctx, func(time.Time) {
		s = e.settings
	})

	return s, err
}

// UpdateSettings normalizes, applies and persists a tuning record, returning
// the record as applied (after clamping and angle repair).
func (e *Engine) UpdateSettings(ctx context.Context, s turret.Settings) (turret.Settings, error) {
	var applied turret.Settings

	err := e.do(ctx, func(time.Time) {
		applied = e.applySettings(ctx, s)
	})

	return applied, err
}

// ResetSettings restores and persists the factory tuning.
func (e *Engine) ResetSettings(ctx context.Context) (turret.Settings, error) {
	return e.UpdateSettings(ctx, turret.DefaultSettings())
}

// SyncTime marks wall time as known for log timestamping.
func (e *Engine) SyncTime(ctx context.Context, epoch int64) error {
	return e.do(ctx, func(now time.Time) {
		e.syncClock(ctx, epoch, now)
	})
}

// do ships fn to the loop goroutine and waits for it to run.
func (e *Engine) do(ctx context.Context, fn func(now time.Time)) error {
	done := make(chan struct{})

	cmd := func(now time.Time) {
		defer close(done)
		fn(now)
	}

	select {
	case e.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
