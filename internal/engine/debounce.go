package engine

import "time"

// buttonEvent is a stable input event produced by the debouncer.
type buttonEvent uint8

const (
	eventNone buttonEvent = iota
	// eventShortPress fires on release of a press shorter than the
	// long-press threshold.
	eventShortPress
	// eventLongPress fires once while the button is still held, as soon as
	// the hold passes the threshold.
	eventLongPress
)

const (
	// debounceWindow is the minimum time a raw level must hold steady
	// before it is trusted.
	debounceWindow = 50 * time.Millisecond
	// longPressThreshold separates a mode-cycle tap from a scan toggle hold.
	longPressThreshold = 800 * time.Millisecond
)

// debouncer filters the bouncy momentary input into stable press events.
// Each physical press yields exactly one of ShortPress or LongPressStart,
// never both; contact noise shorter than the debounce window is rejected.
type debouncer struct {
	// lastRaw is the raw level seen on the previous poll.
	lastRaw bool
	// lastChange is when the raw level last flipped.
	lastChange time.Time
	// stable is the accepted, debounced level.
	stable bool
	// pressStart is when the stable level became pressed.
	pressStart time.Time
	// longConsumed blocks a second long-press event and the trailing
	// short-press once the threshold fired.
	longConsumed bool
}

// poll feeds one raw reading into the debouncer and returns the event it
// produced, if any.
func (d *debouncer) poll(raw bool, now time.Time) buttonEvent {
	// Any raw flip restarts the settling window.
	if raw != d.lastRaw {
		d.lastRaw = raw
		d.lastChange = now

		return eventNone
	}

	if now.Sub(d.lastChange) < debounceWindow {
		return eventNone
	}

	// Settled on a new stable level.
	if raw != d.stable {
		d.stable = raw

		if raw {
			d.pressStart = now
			d.longConsumed = false

			return eventNone
		}

		if !d.longConsumed {
			return eventShortPress
		}

		return eventNone
	}

	// Held: fire the long press exactly once past the threshold.
	if d.stable && !d.longConsumed && now.Sub(d.pressStart) > longPressThreshold {
		d.longConsumed = true

		return eventLongPress
	}

	return eventNone
}
