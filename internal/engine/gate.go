package engine

import "time"

// gate is the cooperative timer used by every periodic component: a stored
// last-fired timestamp re-armed by assignment, never a blocking delay.
// The zero value fires on first use.
type gate struct {
	last time.Time
}

// ready reports whether interval has elapsed since the gate last fired,
// re-arming it when so.
func (g *gate) ready(interval time.Duration, now time.Time) bool {
	if now.Sub(g.last) < interval {
		return false
	}

	g.last = now

	return true
}
