// Package paths locates the rolodex configuration and data directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "rolodex"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "ROLODEX_CONFIG_DIR"
	EnvDataDir   = "ROLODEX_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $env/rolodex on Linux, falling back to ~/<fallback...>/rolodex.
// Elsewhere it returns os.UserConfigDir()/rolodex.
func xdgDir(env string, fallback ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), AppName)...), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/rolodex (fallback ~/.config/rolodex)
// macOS:   ~/Library/Application Support/rolodex
// Windows: %APPDATA%/rolodex
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/rolodex (fallback ~/.local/share/rolodex)
// macOS and Windows share the configuration directory.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// firstAbs returns the first non-empty candidate as an absolute path, or
// the result of fallback when every candidate is empty.
func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > ROLODEX_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > ROLODEX_DATA_DIR > data_dir from config.yaml > DefaultDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	return firstAbs(DefaultDataDir, flag, os.Getenv(EnvDataDir), configValue)
}
