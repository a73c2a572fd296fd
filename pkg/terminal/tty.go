// ABOUTME: TTY owns the controlling terminal device for the length of a session.
// ABOUTME: Open captures the mode and switches to raw/no-echo; Close restores the mode and releases the device.

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"golang.org/x/text/encoding/charmap"

	rtlog "github.com/mauromedda/rawtty/internal/log"
)

// DevicePath is the controlling terminal opened by Open.
const DevicePath = "/dev/tty"

// SizeFunc reports the dimensions of the terminal behind f.
type SizeFunc func(f *os.File) (cols, rows int, err error)

// TermSize is the default SizeFunc, backed by golang.org/x/term.
func TermSize(f *os.File) (cols, rows int, err error) {
	return term.GetSize(int(f.Fd()))
}

// Option configures Open.
type Option func(*options)

type options struct {
	modes ModeController
	size  SizeFunc
}

// WithModeController selects the backend used to capture, change and
// restore the terminal mode. The default is the stty backend.
func WithModeController(m ModeController) Option {
	return func(o *options) {
		if m != nil {
			o.modes = m
		}
	}
}

// WithSizeFunc replaces the dimension query. The default is TermSize.
func WithSizeFunc(fn SizeFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.size = fn
		}
	}
}

// TTY is an open terminal in raw/no-echo mode. It is not safe for
// concurrent use; one goroutine should drive it from Open to Close.
type TTY struct {
	device  *os.File
	modes   ModeController
	cols    int
	rows    int
	saved   string
	raw     bool
	closed  bool
	history History
}

var _ Terminal = (*TTY)(nil)

// Open opens DevicePath, captures its current mode, switches it to
// raw/no-echo and records its dimensions. Mode failures are logged and
// tolerated; failures to open or measure the device are returned and
// leave nothing acquired. Callers must Close the returned TTY.
func Open(opts ...Option) (*TTY, error) {
	return open(DevicePath, opts...)
}

func open(path string, opts ...Option) (*TTY, error) {
	o := options{
		modes: NewSttyController(),
		size:  TermSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrDeviceUnavailable, path, err)
	}
	if !term.IsTerminal(int(f.Fd())) {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is not a terminal", ErrDeviceUnavailable, path)
	}

	t := &TTY{device: f, modes: o.modes}

	saved, err := o.modes.Capture(f)
	if err != nil {
		rtlog.Warn("terminal: capturing mode of %s: %v (mode will not be restored)", path, err)
		saved = ""
	}
	t.saved = saved

	if err := o.modes.MakeRaw(f); err != nil {
		rtlog.Warn("terminal: switching %s to raw mode: %v (continuing in current mode)", path, err)
	} else {
		t.raw = true
	}

	cols, rows, err := o.size(f)
	if err == nil && (cols <= 0 || rows <= 0) {
		err = fmt.Errorf("non-positive size %dx%d", cols, rows)
	}
	if err != nil {
		if cerr := t.Close(); cerr != nil {
			rtlog.Warn("terminal: releasing %s after failed size query: %v", path, cerr)
		}
		return nil, fmt.Errorf("%w: %w", ErrDimensionQueryFailed, err)
	}
	t.cols, t.rows = cols, rows

	rtlog.Debug("terminal: opened %s (%dx%d, raw=%t)", path, cols, rows, t.raw)
	return t, nil
}

// WriteLine writes line followed by a newline in a single write.
func (t *TTY) WriteLine(line string) error {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	if _, err := t.device.Write(buf); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// ReadChar blocks until one byte is available and returns it as a
// character, treating the byte as an ISO-8859-1 code point. It reports
// false on end of stream or any read error; callers should stop reading.
// Multi-byte sequences are returned one byte per call.
func (t *TTY) ReadChar() (rune, bool) {
	var buf [1]byte
	n, err := t.device.Read(buf[:])
	if err != nil || n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			rtlog.Debug("terminal: read: %v", err)
		}
		return 0, false
	}

	r := charmap.ISO8859_1.DecodeByte(buf[0])
	t.history.append(r)
	return r, true
}

// Size returns the dimensions measured by Open. It is not refreshed
// when the terminal is resized.
func (t *TTY) Size() (cols, rows int) {
	return t.cols, t.rows
}

// Raw reports whether the switch to raw/no-echo mode succeeded.
func (t *TTY) Raw() bool {
	return t.raw
}

// Fd returns the device descriptor. The TTY keeps ownership.
func (t *TTY) Fd() uintptr {
	return t.device.Fd()
}

// History returns the log of characters read so far.
func (t *TTY) History() *History {
	return &t.history
}

// Close restores the mode captured by Open and releases the device. The
// device is released even when the restore fails. Calling Close again
// returns an error wrapping os.ErrClosed and changes nothing.
func (t *TTY) Close() error {
	if t.closed {
		return fmt.Errorf("closing terminal: %w", os.ErrClosed)
	}
	t.closed = true

	var restoreErr error
	if err := t.modes.Restore(t.device, t.saved); err != nil {
		rtlog.Warn("terminal: restoring mode of %s: %v", t.device.Name(), err)
		restoreErr = err
		if !errors.Is(err, ErrRestoreFailed) {
			restoreErr = fmt.Errorf("%w: %w", ErrRestoreFailed, err)
		}
	}

	var closeErr error
	if err := t.device.Close(); err != nil {
		closeErr = fmt.Errorf("closing %s: %w", t.device.Name(), err)
	}

	return errors.Join(restoreErr, closeErr)
}
