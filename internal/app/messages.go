// Package app is the player's Bubble Tea model: it maps keys to playback
// handle operations and renders the preview, info panel and player bar.
package app

import "time"

// TickMsg drives preview refresh and resume bookkeeping.
type TickMsg time.Time

// StderrMsg carries a line captured from native stderr.
type StderrMsg string
