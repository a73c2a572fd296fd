// ABOUTME: Settings loading with global + project YAML config merge and environment overrides
// ABOUTME: Selects the terminal mode backend, stty helper, log level, and key-loop behaviour

package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	rtlog "github.com/mauromedda/rawtty/internal/log"
	"github.com/mauromedda/rawtty/pkg/terminal"
)

// Environment variables that override file settings.
const (
	EnvMode     = "RAWTTY_MODE"
	EnvLogLevel = "RAWTTY_LOG_LEVEL"
	EnvStty     = "RAWTTY_STTY"
)

// Settings holds the merged configuration.
type Settings struct {
	Mode        string        `yaml:"mode,omitempty"`
	SttyPath    string        `yaml:"stty_path,omitempty"`
	SttyTimeout time.Duration `yaml:"stty_timeout,omitempty"`
	LogLevel    string        `yaml:"log_level,omitempty"`
	Echo        *bool         `yaml:"echo,omitempty"`
	QuitKey     string        `yaml:"quit_key,omitempty"`
	Prompt      string        `yaml:"prompt,omitempty"`
}

// EchoEnabled reports whether keys should be echoed; default true.
func (s *Settings) EchoEnabled() bool {
	return s.Echo == nil || *s.Echo
}

// Quit returns the quit key; default 'q'. Validate restricts it to ASCII.
func (s *Settings) Quit() rune {
	if s.QuitKey == "" {
		return 'q'
	}
	r, _ := utf8.DecodeRuneInString(s.QuitKey)
	return r
}

// ModeController builds the backend selected by Mode.
func (s *Settings) ModeController() (terminal.ModeController, error) {
	mc, err := terminal.NewModeController(s.Mode)
	if err != nil {
		return nil, err
	}
	if sc, ok := mc.(*terminal.SttyController); ok {
		sc.Path = s.SttyPath
		sc.Timeout = s.SttyTimeout
	}
	return mc, nil
}

// Validate checks field values that cannot be caught by YAML decoding.
func (s *Settings) Validate() error {
	var errs []error
	if _, err := terminal.NewModeController(s.Mode); err != nil {
		errs = append(errs, err)
	}
	if s.LogLevel != "" {
		if _, err := rtlog.ParseLevel(s.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	if utf8.RuneCountInString(s.QuitKey) > 1 {
		errs = append(errs, fmt.Errorf("quit_key %q must be a single character", s.QuitKey))
	} else if r := s.Quit(); r > unicode.MaxASCII {
		// Reads deliver one byte at a time, so only ASCII keys can match.
		errs = append(errs, fmt.Errorf("quit_key %q must be an ASCII character", s.QuitKey))
	}
	if s.SttyTimeout < 0 {
		errs = append(errs, fmt.Errorf("stty_timeout %s must not be negative", s.SttyTimeout))
	}
	return errors.Join(errs...)
}

// Load reads and merges global and project-local settings, applies
// environment overrides and then cli. Project settings override global
// settings; non-zero cli fields override everything.
func Load(projectRoot string, cli *Settings) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return finish(merge(global, project), cli)
}

// LoadFile reads a single explicit config file instead of the global and
// project pair. Unlike Load, a missing file is an error.
func LoadFile(path string, cli *Settings) (*Settings, error) {
	s, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return finish(s, cli)
}

func finish(s *Settings, cli *Settings) (*Settings, error) {
	ResolveEnvVars(s)
	s = merge(s, fromEnv())
	s = merge(s, cli)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// fromEnv collects RAWTTY_* overrides.
func fromEnv() *Settings {
	return &Settings{
		Mode:     os.Getenv(EnvMode),
		LogLevel: os.Getenv(EnvLogLevel),
		SttyPath: os.Getenv(EnvStty),
	}
}

// merge overlays non-zero fields of over onto base.
func merge(base, over *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if over == nil {
		return base
	}

	result := *base

	if over.Mode != "" {
		result.Mode = over.Mode
	}
	if over.SttyPath != "" {
		result.SttyPath = over.SttyPath
	}
	if over.SttyTimeout != 0 {
		result.SttyTimeout = over.SttyTimeout
	}
	if over.LogLevel != "" {
		result.LogLevel = over.LogLevel
	}
	if over.Echo != nil {
		echo := *over.Echo
		result.Echo = &echo
	}
	if over.QuitKey != "" {
		result.QuitKey = over.QuitKey
	}
	if over.Prompt != "" {
		result.Prompt = over.Prompt
	}

	return &result
}
