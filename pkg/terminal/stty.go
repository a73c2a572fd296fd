// ABOUTME: SttyController drives terminal modes through the external stty helper.
// ABOUTME: The device is passed as the helper's stdin; stdout is captured as the mode token.

package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"
)

const defaultSttyTimeout = 5 * time.Second

// SttyController implements ModeController by running stty with the
// terminal device as its standard input.
type SttyController struct {
	// Path is the stty executable. Empty means "stty" looked up in PATH.
	Path string
	// Timeout bounds each helper invocation. Zero means 5 seconds.
	Timeout time.Duration
}

// NewSttyController returns an SttyController with default settings.
func NewSttyController() *SttyController {
	return &SttyController{}
}

// MakeRaw runs `stty -echo -icanon` against f.
func (s *SttyController) MakeRaw(f *os.File) error {
	if _, err := s.run(f, "-echo", "-icanon"); err != nil {
		return fmt.Errorf("%w: %w", ErrModeApplyFailed, err)
	}
	return nil
}

// Capture runs `stty -g` against f and returns its trimmed output.
// Output that is empty or not valid UTF-8 is reported as a failure.
func (s *SttyController) Capture(f *os.File) (string, error) {
	out, err := s.run(f, "-g")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrModeCaptureFailed, err)
	}
	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: stty output is not valid UTF-8", ErrModeCaptureFailed)
	}
	token := strings.TrimSpace(string(out))
	if token == "" {
		return "", fmt.Errorf("%w: stty returned an empty mode", ErrModeCaptureFailed)
	}
	return token, nil
}

// Restore runs `stty <token>` against f.
func (s *SttyController) Restore(f *os.File, token string) error {
	if token == "" {
		return nil
	}
	if _, err := s.run(f, token); err != nil {
		return fmt.Errorf("%w: %w", ErrRestoreFailed, err)
	}
	return nil
}

// run executes the helper with f as stdin and returns its stdout.
func (s *SttyController) run(f *os.File, args ...string) ([]byte, error) {
	path := s.Path
	if path == "" {
		path = "stty"
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultSttyTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = f

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s %s: %w: %s", path, strings.Join(args, " "), err,
				strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s %s: %w", path, strings.Join(args, " "), err)
	}
	return out, nil
}
