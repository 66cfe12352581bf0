// Package config defines process-level controller settings and provides
// helpers to load, validate and save them in YAML format.
//
// These settings cover the HTTP listen address, persistence paths, logging,
// the optional MQTT announcer and the simulated demo targets. They are
// distinct from the turret tuning record the panel edits at runtime.
package config
