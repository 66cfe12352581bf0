// Package settings implements persistence for the turret tuning record.
//
// The FileRepository stores and loads the record as YAML on disk and exposes
// a Repository interface that the engine and the HTTP surface depend on.
package settings
