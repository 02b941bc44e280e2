package scrollstage

import (
	"fmt"
	"os"
	"time"
)

// globalDebug enables programming-error panics and per-frame stats. It is
// plain state: scrollstage is single-threaded.
var globalDebug bool

// SetDebug toggles debug mode. In debug mode precondition violations panic
// instead of degrading, and every coordinator frame logs timing to stderr.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// Debug reports whether debug mode is on.
func Debug() bool {
	return globalDebug
}

// frameStats holds per-frame timing and output size.
type frameStats struct {
	rebuildTime time.Duration
	applyTime   time.Duration
	progress    float64
	patchCount  int
	eventCount  int
}

// debugLog prints frame stats to stderr.
func debugLog(stats frameStats) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrollstage] progress: %.4f | rebuild: %v | apply: %v | patches: %d | events: %d\n",
		stats.progress, stats.rebuildTime, stats.applyTime, stats.patchCount, stats.eventCount)
}

// debugTransition prints a lifecycle transition to stderr.
func debugTransition(from, to State) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[scrollstage] state: %s -> %s\n", from, to)
}
