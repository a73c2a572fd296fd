// ABOUTME: History is an append-only log of characters read from a terminal.
// ABOUTME: Provides the last character and the input assembled into lines.

package terminal

import "sync"

// History records every character returned by a successful read.
// It is safe for concurrent use.
type History struct {
	mu    sync.Mutex
	runes []rune
}

func (h *History) append(r rune) {
	h.mu.Lock()
	h.runes = append(h.runes, r)
	h.mu.Unlock()
}

// Len returns the number of characters recorded.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.runes)
}

// Last returns the most recently read character.
func (h *History) Last() (rune, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.runes) == 0 {
		return 0, false
	}
	return h.runes[len(h.runes)-1], true
}

// Runes returns a copy of the recorded characters in read order.
func (h *History) Runes() []rune {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]rune, len(h.runes))
	copy(out, h.runes)
	return out
}

// Lines splits the recorded input at '\n' and '\r'. A "\r\n" pair ends a
// single line. A trailing unterminated fragment is included when non-empty.
func (h *History) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var lines []string
	start := 0
	for i := 0; i < len(h.runes); i++ {
		switch h.runes[i] {
		case '\r':
			lines = append(lines, string(h.runes[start:i]))
			if i+1 < len(h.runes) && h.runes[i+1] == '\n' {
				i++
			}
			start = i + 1
		case '\n':
			lines = append(lines, string(h.runes[start:i]))
			start = i + 1
		}
	}
	if start < len(h.runes) {
		lines = append(lines, string(h.runes[start:]))
	}
	return lines
}
