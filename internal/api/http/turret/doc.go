// Package turret implements the panel HTTP API.
//
// The Server exposes the embedded control page and a small GET surface
// the page drives with fetch() calls: status polling, scan toggle, mode
// selection, config read/save/reset, detection log read/clear and one-shot
// time sync. Requests never touch the control loop directly; every
// operation goes through the Controller interface.
package turret
