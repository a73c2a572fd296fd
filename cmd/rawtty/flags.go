// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --mode, --config, --quit, --no-echo, --verbose, --version

package main

import (
	"flag"
	"io"
)

type cliArgs struct {
	mode    string
	config  string
	quit    string
	prompt  string
	noEcho  bool
	verbose bool
	version bool
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("rawtty", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&args.mode, "mode", "", "Mode backend: stty or termios")
	fs.StringVar(&args.config, "config", "", "Read settings from this file only")
	fs.StringVar(&args.quit, "quit", "", "Key that ends the session (default q)")
	fs.StringVar(&args.prompt, "prompt", "", "Prefix for echoed lines")
	fs.BoolVar(&args.noEcho, "no-echo", false, "Do not describe keys as they are read")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	return args, nil
}
