// ABOUTME: TermiosController changes terminal modes with termios ioctls from golang.org/x/sys/unix.
// ABOUTME: Tokens use the same layout as `stty -g`, so either backend can restore the other's capture.

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// TermiosController implements ModeController with direct ioctls on the
// device descriptor. It never spawns a process.
type TermiosController struct{}

// MakeRaw clears ECHO and ICANON and configures blocking single-byte reads.
func (TermiosController) MakeRaw(f *os.File) error {
	fd := int(f.Fd())
	t, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("%w: reading termios: %w", ErrModeApplyFailed, err)
	}

	t.Lflag &^= unix.ECHO | unix.ICANON
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, t); err != nil {
		return fmt.Errorf("%w: writing termios: %w", ErrModeApplyFailed, err)
	}
	return nil
}

// Capture encodes the current termios of f as a mode token.
func (TermiosController) Capture(f *os.File) (string, error) {
	t, err := unix.IoctlGetTermios(int(f.Fd()), ioctlReadTermios)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrModeCaptureFailed, err)
	}
	return modeFromTermios(t).String(), nil
}

// Restore decodes token and applies it to f. Line discipline and speed
// fields not carried by the token keep their current values.
func (TermiosController) Restore(f *os.File, token string) error {
	if token == "" {
		return nil
	}
	m, err := ParseMode(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRestoreFailed, err)
	}

	fd := int(f.Fd())
	t, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("%w: reading termios: %w", ErrRestoreFailed, err)
	}
	applyMode(t, m)
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, t); err != nil {
		return fmt.Errorf("%w: writing termios: %w", ErrRestoreFailed, err)
	}
	return nil
}

func modeFromTermios(t *unix.Termios) Mode {
	cc := make([]byte, tokenCCFields)
	copy(cc, t.Cc[:])
	return Mode{
		Iflag: uint64(t.Iflag),
		Oflag: uint64(t.Oflag),
		Cflag: uint64(t.Cflag),
		Lflag: uint64(t.Lflag),
		Cc:    cc,
	}
}

// applyMode copies m into t. Control characters beyond the kernel's
// array are dropped.
func applyMode(t *unix.Termios, m Mode) {
	setFlag(&t.Iflag, m.Iflag)
	setFlag(&t.Oflag, m.Oflag)
	setFlag(&t.Cflag, m.Cflag)
	setFlag(&t.Lflag, m.Lflag)
	copy(t.Cc[:], m.Cc)
}

// setFlag narrows v to the platform's tcflag_t width.
func setFlag[T uint32 | uint64](dst *T, v uint64) {
	*dst = T(v)
}
