// Package turret wires the controller process together: process config,
// persisted tuning, the simulated rig, the control engine, the optional
// MQTT announcer and the panel HTTP server.
package turret
