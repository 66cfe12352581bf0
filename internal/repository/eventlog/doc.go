// Package eventlog implements the capped on-disk detection log.
//
// The FileLog appends one text line per detection and wipes itself whenever
// an append would exceed the configured size cap, mirroring the bounded
// log buffer of the original firmware.
package eventlog
