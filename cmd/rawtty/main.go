// ABOUTME: CLI entry point for rawtty: opens the controlling terminal in raw mode and describes each key
// ABOUTME: Loads config, guarantees mode restoration on exit, panic, and interrupt

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/mauromedda/rawtty/internal/config"
	rtlog "github.com/mauromedda/rawtty/internal/log"
	"github.com/mauromedda/rawtty/pkg/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("rawtty %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads settings, owns the terminal for the session, and prints the
// collected input lines once the terminal is restored.
func run(args cliArgs) error {
	if args.verbose {
		rtlog.SetLevel(rtlog.LevelDebug)
	}

	cfg, err := loadSettings(args)
	if err != nil {
		return err
	}
	if cfg.LogLevel != "" && !args.verbose {
		lvl, _ := rtlog.ParseLevel(cfg.LogLevel)
		rtlog.SetLevel(lvl)
	}

	modes, err := cfg.ModeController()
	if err != nil {
		return err
	}

	tty, err := terminal.Open(terminal.WithModeController(modes))
	if err != nil {
		return err
	}

	// Close may be reached from the interrupt handler and from the
	// normal return path; only the first call restores.
	var once sync.Once
	var closeErr error
	closeTTY := func() error {
		once.Do(func() { closeErr = tty.Close() })
		return closeErr
	}
	stop := onInterrupt(closerFunc(closeTTY), func() {
		_ = closeTTY()
		os.Exit(130)
	})
	defer stop()
	defer terminal.RestoreOnPanic(closerFunc(closeTTY))

	if !tty.Raw() {
		rtlog.Warn("terminal is not in raw mode; keys arrive after Enter and are echoed")
	}

	s := newSession(tty, cfg)
	n, sessErr := s.run()

	if err := closeTTY(); err != nil {
		rtlog.Warn("restoring terminal: %v", err)
	}
	if sessErr != nil {
		return sessErr
	}

	rtlog.Debug("read %d keys", n)
	for _, line := range tty.History().Lines() {
		fmt.Println(line)
	}
	return nil
}

func loadSettings(args cliArgs) (*config.Settings, error) {
	overrides := buildCLIOverrides(args)
	if args.config != "" {
		return config.LoadFile(args.config, overrides)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return config.Load(cwd, overrides)
}

// buildCLIOverrides maps CLI flags to a Settings struct for Load.
func buildCLIOverrides(args cliArgs) *config.Settings {
	s := &config.Settings{
		Mode:    args.mode,
		QuitKey: args.quit,
		Prompt:  args.prompt,
	}
	if args.noEcho {
		f := false
		s.Echo = &f
	}
	if args.verbose {
		s.LogLevel = "debug"
	}
	return s
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
