// ABOUTME: Mode is a portable view of termios flags and control characters.
// ABOUTME: Encodes and parses mode tokens in the colon-separated hex layout of GNU `stty -g`.

package terminal

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode holds the four termios flag words and the control character array.
type Mode struct {
	Iflag uint64
	Oflag uint64
	Cflag uint64
	Lflag uint64
	Cc    []byte
}

// ParseMode decodes a token of the form
// "iflag:oflag:cflag:lflag:cc0:cc1:...", all fields in hexadecimal.
func ParseMode(token string) (Mode, error) {
	fields := strings.Split(strings.TrimSpace(token), ":")
	if len(fields) < 5 {
		return Mode{}, fmt.Errorf("%w: expected at least 5 fields, got %d", ErrInvalidModeToken, len(fields))
	}

	var m Mode
	for i, dst := range []*uint64{&m.Iflag, &m.Oflag, &m.Cflag, &m.Lflag} {
		v, err := strconv.ParseUint(fields[i], 16, 64)
		if err != nil {
			return Mode{}, fmt.Errorf("%w: flag field %d: %w", ErrInvalidModeToken, i, err)
		}
		*dst = v
	}

	m.Cc = make([]byte, 0, len(fields)-4)
	for i, f := range fields[4:] {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return Mode{}, fmt.Errorf("%w: control character %d: %w", ErrInvalidModeToken, i, err)
		}
		m.Cc = append(m.Cc, byte(v))
	}
	return m, nil
}

// String encodes m as a token accepted by ParseMode.
func (m Mode) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%x:%x:%x:%x", m.Iflag, m.Oflag, m.Cflag, m.Lflag)
	for _, c := range m.Cc {
		fmt.Fprintf(&b, ":%x", c)
	}
	return b.String()
}
