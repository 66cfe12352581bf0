// Package web carries the embedded control panel page.
package web

import _ "embed"

// Index is the control panel served at the root path: a single
// self-contained page with the radar canvas, mode buttons and the
// config and log modals.
//
//go:embed index.html
var Index []byte
