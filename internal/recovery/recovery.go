// internal/recovery/recovery.go
// Package recovery provides deferred panic handlers for main and for
// long-lived goroutines such as the sample-source readers.
package recovery

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandlePanic logs panic details to stderr and exits with code 1.
// Defer it at the top of main().
func HandlePanic() {
	if r := recover(); r != nil {
		_, _ = fmt.Fprintf(os.Stderr, "FATAL: %v\n\nStack trace:\n%s\n", r, debug.Stack())
		os.Exit(1)
	}
}

// HandlePanicFunc is HandlePanic with a cleanup hook that runs before the
// exit, e.g. closing a sample channel so the decode loop unblocks.
func HandlePanicFunc(cleanup func()) {
	if r := recover(); r != nil {
		_, _ = fmt.Fprintf(os.Stderr, "FATAL: %v\n\nStack trace:\n%s\n", r, debug.Stack())
		if cleanup != nil {
			cleanup()
		}
		os.Exit(1)
	}
}
