package grove

import (
	"fmt"
	"time"
)

// tickStats holds per-tick counters. Only logged when debug mode is on.
type tickStats struct {
	interactors int
	events      int
	duration    time.Duration
}

// SetDebugMode enables or disables debug mode for this System only. When
// enabled, every dispatched event and per-tick stats are logged at debug
// level, and tree operations involving an interactable registered with this
// System panic if either side is disposed.
func (s *System) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// debugging reports whether ia was registered with a System in debug mode.
func (ia *Interactable) debugging() bool {
	return ia != nil && ia.sys != nil && ia.sys.debug
}

// debugLog writes per-tick stats through the system logger.
func (s *System) debugLog(stats tickStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("tick",
		"interactors", stats.interactors,
		"events", stats.events,
		"duration", stats.duration,
		"registered", s.registry.NumInteractors(),
		"interactables", s.registry.NumInteractables())
}

// debugCheckDisposed panics with a descriptive message when a disposed
// interactable is used in a tree operation.
func debugCheckDisposed(ia *Interactable, op string) {
	if ia.disposed {
		panic(fmt.Sprintf("grove debug: %s on disposed interactable %q (ID was %d)", op, ia.Name, ia.ID))
	}
}
