// Package engine implements the turret control loop: a single goroutine
// that sweeps the sensor across the arc, evaluates samples against the
// configured range, and drives the alert light, buzzer, pointer servo and
// melody sequencer through a cooperative state machine
// (startup/idle/scanning/locked/mode-switching).
//
// Every periodic behavior is paced by a stored last-fired timestamp checked
// each pass; nothing ever blocks the loop. Network callers interact through
// commands executed between passes and a lock-free status snapshot.
package engine
