// Package tui collects field values in a terminal session. Every answer is
// typed into a fresh field binding keystroke by keystroke, so the value a
// user enters is masked, filtered and validated exactly as it would be in
// an interactive input.
package tui
