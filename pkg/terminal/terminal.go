// ABOUTME: Defines the Terminal interface and the sentinel errors of the terminal package.
// ABOUTME: Implemented by the real TTY and by VirtualTerminal for consumers' tests.

package terminal

import "errors"

// Terminal abstracts a raw-mode terminal session: line writes,
// single-character reads, a dimension snapshot, and teardown.
type Terminal interface {
	WriteLine(line string) error
	ReadChar() (rune, bool)
	Size() (cols, rows int)
	Close() error
}

var (
	// ErrDeviceUnavailable is returned by Open when the terminal device
	// cannot be opened.
	ErrDeviceUnavailable = errors.New("terminal device unavailable")

	// ErrDimensionQueryFailed is returned by Open when the terminal size
	// cannot be determined or is not positive.
	ErrDimensionQueryFailed = errors.New("terminal dimension query failed")

	// ErrModeCaptureFailed marks a failure to read the current mode.
	// Open logs it and continues with an empty restore token.
	ErrModeCaptureFailed = errors.New("terminal mode capture failed")

	// ErrModeApplyFailed marks a failure to switch to raw/no-echo mode.
	// Open logs it and continues in whatever mode the device is in.
	ErrModeApplyFailed = errors.New("terminal mode apply failed")

	// ErrWriteFailed is returned by WriteLine when the device rejects
	// the write.
	ErrWriteFailed = errors.New("terminal write failed")

	// ErrRestoreFailed is returned by Close when the captured mode could
	// not be re-applied. The device is released regardless.
	ErrRestoreFailed = errors.New("terminal mode restore failed")

	// ErrInvalidModeToken is returned when a mode token cannot be parsed.
	ErrInvalidModeToken = errors.New("invalid terminal mode token")

	// ErrUnknownModeBackend is returned by NewModeController for names it
	// does not recognise.
	ErrUnknownModeBackend = errors.New("unknown terminal mode backend")
)
