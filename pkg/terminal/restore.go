// ABOUTME: RestoreOnPanic recovers from panics, closes the terminal to restore its mode, and prints the stack.
// ABOUTME: Intended for use as a deferred call by the goroutine that owns the terminal.

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// RestoreOnPanic should be deferred right after Open succeeds. On panic
// it closes t, which puts the terminal back into its original mode,
// prints the panic value and stack trace, then exits with code 1.
func RestoreOnPanic(t io.Closer) {
	r := recover()
	if r == nil {
		return
	}

	_ = t.Close()

	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine is RestoreOnPanic for background goroutines: it
// restores the terminal but does NOT call os.Exit.
func RecoverGoroutine(t io.Closer) {
	r := recover()
	if r == nil {
		return
	}

	_ = t.Close()

	fmt.Fprintf(os.Stderr, "\ngoroutine panic: %v\n\n%s\n", r, debug.Stack())
}
