// Package hardware defines the peripheral interfaces of the turret rig
// (ranging sensor, sweep and pointer servos, alert light, buzzer, button)
// and a simulated implementation used by default and in tests.
//
// The simulation places configurable targets in the sweep arc so the panel
// shows detections without any physical hardware attached.
package hardware
