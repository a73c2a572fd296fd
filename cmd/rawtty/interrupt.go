// ABOUTME: Interrupt handling so SIGINT/SIGTERM/SIGHUP still restore the terminal mode
// ABOUTME: Raw mode here leaves ISIG on, so Ctrl+C arrives as a signal rather than a byte

package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mauromedda/rawtty/pkg/terminal"
)

// onInterrupt runs fn on the first termination signal. A panic in fn
// still closes t. The returned function stops listening.
func onInterrupt(t io.Closer, fn func()) (stop func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		defer terminal.RecoverGoroutine(t)
		select {
		case <-c:
			fn()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(c)
		close(done)
	}
}
