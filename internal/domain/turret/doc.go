// Package turret contains core domain types for the radar turret:
// operating modes with their immutable parameter bundles, control states,
// the persisted tuning record with its clamp-and-repair rules, and the
// detection/status snapshots shared between the engine and its readers.
package turret
