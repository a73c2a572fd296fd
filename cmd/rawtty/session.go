// ABOUTME: Key loop: reads one character at a time and describes it on the terminal
// ABOUTME: Ends on the quit key, Ctrl+D, or when the terminal stops delivering input

package main

import (
	"fmt"
	"unicode"

	"github.com/mauromedda/rawtty/internal/config"
	"github.com/mauromedda/rawtty/pkg/terminal"
	"github.com/mauromedda/rawtty/pkg/width"
)

const ctrlD = 0x04

type session struct {
	term   terminal.Terminal
	echo   bool
	quit   rune
	prompt string
}

func newSession(t terminal.Terminal, cfg *config.Settings) *session {
	return &session{
		term:   t,
		echo:   cfg.EchoEnabled(),
		quit:   cfg.Quit(),
		prompt: cfg.Prompt,
	}
}

// run writes a banner then loops until the session ends, returning the
// number of keys handled.
func (s *session) run() (int, error) {
	cols, rows := s.term.Size()
	if err := s.writeLine(fmt.Sprintf("rawtty %dx%d, press %s to quit", cols, rows, describe(s.quit))); err != nil {
		return 0, err
	}

	n := 0
	for {
		r, ok := s.term.ReadChar()
		if !ok || r == s.quit || r == ctrlD {
			return n, nil
		}
		n++
		if !s.echo {
			continue
		}
		if err := s.writeLine(fmt.Sprintf("%s 0x%02x", describe(r), r)); err != nil {
			return n, err
		}
	}
}

// writeLine prefixes the prompt and fits the line to the terminal width.
func (s *session) writeLine(line string) error {
	cols, _ := s.term.Size()
	return s.term.WriteLine(width.Truncate(s.prompt+line, cols, "…"))
}

// describe renders a key for display: control characters in caret
// notation, everything else quoted.
func describe(r rune) string {
	switch {
	case r == 0x7f:
		return "^?"
	case r < 0x20:
		return "^" + string(r+'@')
	case !unicode.IsPrint(r):
		return fmt.Sprintf("%U", r)
	default:
		return fmt.Sprintf("'%c'", r)
	}
}
