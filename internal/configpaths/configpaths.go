// Package configpaths resolves candidate CLI configuration file paths,
// separate from the device protocol's on-disk main_config.json handled by
// internal/config. This is the flag-defaults file Kong loads before parsing
// argv, not the keyboard's wire-level settings.
package configpaths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigDir returns the platform-specific configuration directory
// for epomakerctl.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, "epomakerctl"), nil
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "epomakerctl"), nil
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "epomakerctl"), nil
	}
	return "", os.ErrNotExist
}

// CandidatePaths builds the JSON/YAML/TOML candidate paths Kong tries, in
// priority order: an explicit user-supplied path first (routed by its
// extension), then the working directory, then the config home.
func CandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	wd, _ := os.Getwd()
	add(&jsonPaths, filepath.Join(wd, "epomakerctl.json"))
	add(&yamlPaths, filepath.Join(wd, "epomakerctl.yaml"))
	add(&tomlPaths, filepath.Join(wd, "epomakerctl.toml"))

	if dir, err := DefaultConfigDir(); err == nil {
		add(&jsonPaths, filepath.Join(dir, "config.json"))
		add(&yamlPaths, filepath.Join(dir, "config.yaml"))
		add(&tomlPaths, filepath.Join(dir, "config.toml"))
	}
	return
}
