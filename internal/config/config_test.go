// ABOUTME: Tests for config loading, merging, validation, and environment overrides
// ABOUTME: Uses temp directories and a temp HOME for isolated file-based tests

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mauromedda/rawtty/pkg/terminal"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// isolate points HOME at a temp dir and clears RAWTTY_* variables.
func isolate(t *testing.T) (home, project string) {
	t.Helper()

	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvMode, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvStty, "")
	return home, project
}

func TestMerge(t *testing.T) {
	t.Parallel()

	no := false
	global := &Settings{Mode: "stty", LogLevel: "info", Prompt: "> "}
	project := &Settings{Mode: "termios", Echo: &no}

	result := merge(global, project)

	if result.Mode != "termios" {
		t.Errorf("Mode = %q, want %q", result.Mode, "termios")
	}
	if result.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", result.LogLevel, "info")
	}
	if result.EchoEnabled() {
		t.Error("EchoEnabled() = true, want false from project")
	}
	if result.Prompt != "> " {
		t.Errorf("Prompt = %q, want %q", result.Prompt, "> ")
	}
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	result := merge(nil, nil)
	if result == nil {
		t.Fatal("merge(nil, nil) should return non-nil")
	}
}

func TestSettings_Defaults(t *testing.T) {
	t.Parallel()

	var s Settings
	if !s.EchoEnabled() {
		t.Error("EchoEnabled() default should be true")
	}
	if s.Quit() != 'q' {
		t.Errorf("Quit() = %q, want 'q'", s.Quit())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("zero Settings should validate, got %v", err)
	}
}

func TestSettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{name: "termios backend", settings: Settings{Mode: "termios"}},
		{name: "unknown backend", settings: Settings{Mode: "curses"}, wantErr: true},
		{name: "bad log level", settings: Settings{LogLevel: "chatty"}, wantErr: true},
		{name: "multi-char quit key", settings: Settings{QuitKey: "qq"}, wantErr: true},
		{name: "negative timeout", settings: Settings{SttyTimeout: -time.Second}, wantErr: true},
		{name: "ascii control quit key", settings: Settings{QuitKey: "\x1b"}},
		{name: "non-ascii quit key", settings: Settings{QuitKey: "é"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.settings.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile_RejectsNonASCIIQuitKey(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "quit_key: é\n")

	_, err := LoadFile(path, nil)
	if err == nil || !strings.Contains(err.Error(), "ASCII") {
		t.Errorf("LoadFile error = %v, want ASCII quit_key rejection", err)
	}
}

func TestSettings_ModeController(t *testing.T) {
	t.Parallel()

	s := Settings{SttyPath: "/bin/stty", SttyTimeout: 2 * time.Second}
	mc, err := s.ModeController()
	if err != nil {
		t.Fatal(err)
	}
	sc, ok := mc.(*terminal.SttyController)
	if !ok {
		t.Fatalf("ModeController() = %T, want *terminal.SttyController", mc)
	}
	if sc.Path != "/bin/stty" || sc.Timeout != 2*time.Second {
		t.Errorf("stty controller = %+v, want path and timeout from settings", sc)
	}

	s = Settings{Mode: "nope"}
	if _, err := s.ModeController(); !errors.Is(err, terminal.ErrUnknownModeBackend) {
		t.Errorf("ModeController() error = %v, want ErrUnknownModeBackend", err)
	}
}

func TestLoadFile_NotExist(t *testing.T) {
	t.Parallel()

	s, err := loadFile("/nonexistent/path/config.yaml")
	if !os.IsNotExist(err) {
		t.Errorf("expected not exist error, got %v", err)
	}
	if s == nil {
		t.Error("expected non-nil default settings")
	}
}

func TestLoadFile_ValidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "mode: termios\nstty_timeout: 750ms\necho: false\nquit_key: x\n")

	s, err := loadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode != "termios" {
		t.Errorf("Mode = %q, want %q", s.Mode, "termios")
	}
	if s.SttyTimeout != 750*time.Millisecond {
		t.Errorf("SttyTimeout = %v, want 750ms", s.SttyTimeout)
	}
	if s.EchoEnabled() {
		t.Error("EchoEnabled() = true, want false")
	}
	if s.Quit() != 'x' {
		t.Errorf("Quit() = %q, want 'x'", s.Quit())
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "mode: [unterminated\n")

	if _, err := loadFile(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	home, project := isolate(t)

	writeConfig(t, filepath.Join(home, ".rawtty", "config.yaml"), "mode: stty\nlog_level: warn\n")
	writeConfig(t, filepath.Join(project, ".rawtty", "config.yaml"), "mode: termios\n")

	s, err := Load(project, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode != "termios" {
		t.Errorf("Mode = %q, want project value %q", s.Mode, "termios")
	}
	if s.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want global value %q", s.LogLevel, "warn")
	}
}

func TestLoad_EnvAndCLIOverrides(t *testing.T) {
	home, project := isolate(t)

	writeConfig(t, filepath.Join(home, ".rawtty", "config.yaml"), "mode: stty\nlog_level: warn\n")
	t.Setenv(EnvMode, "termios")
	t.Setenv(EnvLogLevel, "error")

	s, err := Load(project, &Settings{LogLevel: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode != "termios" {
		t.Errorf("Mode = %q, want env value %q", s.Mode, "termios")
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want cli value %q", s.LogLevel, "debug")
	}
}

func TestLoad_NoFiles(t *testing.T) {
	_, project := isolate(t)

	s, err := Load(project, nil)
	if err != nil {
		t.Fatalf("Load with no config files: %v", err)
	}
	if s.Mode != "" {
		t.Errorf("Mode = %q, want empty default", s.Mode)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	home, project := isolate(t)

	writeConfig(t, filepath.Join(home, ".rawtty", "config.yaml"), "mode: curses\n")

	if _, err := Load(project, nil); !errors.Is(err, terminal.ErrUnknownModeBackend) {
		t.Errorf("Load error = %v, want ErrUnknownModeBackend", err)
	}
}

func TestLoadFile_Explicit(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "prompt: \"${RAWTTY_TEST_PROMPT}>\"\n")
	t.Setenv("RAWTTY_TEST_PROMPT", "tty")

	s, err := LoadFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Prompt != "tty>" {
		t.Errorf("Prompt = %q, want %q", s.Prompt, "tty>")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want os.ErrNotExist", err)
	}
}
