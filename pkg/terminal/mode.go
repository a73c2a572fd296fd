// ABOUTME: ModeController abstracts terminal discipline changes (raw/cooked, echo).
// ABOUTME: Backends: the stty helper process and direct termios ioctls.

package terminal

import (
	"fmt"
	"os"
	"strings"
)

// Backend names accepted by NewModeController.
const (
	BackendStty    = "stty"
	BackendTermios = "termios"
)

// ModeController captures, mutates and restores the line discipline of
// a terminal device. Tokens returned by Capture are opaque to callers and
// are only meaningful to Restore.
type ModeController interface {
	// MakeRaw disables canonical input processing and echo on f.
	MakeRaw(f *os.File) error
	// Capture returns the current mode of f as a token.
	Capture(f *os.File) (string, error)
	// Restore re-applies token to f. An empty token is a no-op.
	Restore(f *os.File, token string) error
}

// NewModeController returns the backend registered under name.
// An empty name selects the stty backend.
func NewModeController(name string) (ModeController, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendStty:
		return NewSttyController(), nil
	case BackendTermios:
		return TermiosController{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownModeBackend, name)
	}
}
