// ABOUTME: VirtualTerminal implements Terminal in memory for tests of terminal consumers.
// ABOUTME: Serves scripted input bytes and captures written lines.

package terminal

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// VirtualTerminal is a fake Terminal. Input is consumed one byte per
// ReadChar; output accumulates in a buffer.
type VirtualTerminal struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	input      []byte
	cols       int
	rows       int
	closeCount int
	writeErr   error
}

var _ Terminal = (*VirtualTerminal)(nil)

// NewVirtualTerminal returns a VirtualTerminal of the given size whose
// reads return the bytes of input in order.
func NewVirtualTerminal(cols, rows int, input string) *VirtualTerminal {
	return &VirtualTerminal{
		cols:  cols,
		rows:  rows,
		input: []byte(input),
	}
}

// WriteLine appends line and a newline to the output buffer.
func (v *VirtualTerminal) WriteLine(line string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closeCount > 0 {
		return fmt.Errorf("%w: %w", ErrWriteFailed, os.ErrClosed)
	}
	if v.writeErr != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, v.writeErr)
	}
	v.buf.WriteString(line)
	v.buf.WriteByte('\n')
	return nil
}

// ReadChar returns the next scripted byte, or false once input is
// exhausted or the terminal is closed.
func (v *VirtualTerminal) ReadChar() (rune, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closeCount > 0 || len(v.input) == 0 {
		return 0, false
	}
	b := v.input[0]
	v.input = v.input[1:]
	return rune(b), true
}

// Size returns the configured dimensions.
func (v *VirtualTerminal) Size() (cols, rows int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.cols, v.rows
}

// Close records the call.
func (v *VirtualTerminal) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closeCount++
	return nil
}

// --- Test helpers (not part of Terminal interface) ---

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Feed appends bytes to the pending input.
func (v *VirtualTerminal) Feed(input string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.input = append(v.input, input...)
}

// FailWrites makes subsequent writes fail with err. A nil err clears it.
func (v *VirtualTerminal) FailWrites(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writeErr = err
}

// CloseCount returns how many times Close was called.
func (v *VirtualTerminal) CloseCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.closeCount
}
