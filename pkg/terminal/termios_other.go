// ABOUTME: Fallback TermiosController for platforms without termios ioctls.
// ABOUTME: Every operation reports errors.ErrUnsupported; use the stty backend instead.

//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package terminal

import (
	"errors"
	"fmt"
	"os"
)

// TermiosController is unavailable on this platform.
type TermiosController struct{}

func (TermiosController) MakeRaw(*os.File) error {
	return fmt.Errorf("%w: %w", ErrModeApplyFailed, errors.ErrUnsupported)
}

func (TermiosController) Capture(*os.File) (string, error) {
	return "", fmt.Errorf("%w: %w", ErrModeCaptureFailed, errors.ErrUnsupported)
}

func (TermiosController) Restore(_ *os.File, token string) error {
	if token == "" {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrRestoreFailed, errors.ErrUnsupported)
}
