// Package debug provides conditional trace output for the matching
// pipeline. Every hook takes an enabled flag so callers can thread a
// single --debug switch through without touching global logger state.
package debug

import (
	"fmt"
	"log"
	"time"
)

// Header marks the start of a traced resolution.
func Header(enabled bool) {
	if enabled {
		log.Printf("=== TRACE START ===")
	}
}

// Footer marks the end of a traced resolution.
func Footer(enabled bool) {
	if enabled {
		log.Printf("=== TRACE END ===")
	}
}

// Printf emits one trace line when tracing is enabled.
func Printf(enabled bool, format string, args ...interface{}) {
	if enabled {
		timestamp := time.Now().Format("15:04:05.000")
		message := fmt.Sprintf(format, args...)
		log.Printf("[%s] %s", timestamp, message)
	}
}

// Timing logs the duration of an operation. Use with defer:
//
//	defer debug.Timing(enabled, "resolve")()
func Timing(enabled bool, operation string) func() {
	if !enabled {
		return func() {}
	}

	start := time.Now()
	Printf(enabled, "Starting: %s", operation)

	return func() {
		Printf(enabled, "Completed: %s (took %v)", operation, time.Since(start))
	}
}
