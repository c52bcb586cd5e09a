// ABOUTME: Configuration management for player commands and media extensions
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

// Package config manages the mediatui TOML configuration: the ordered list
// of candidate player commands and the recognized media file extensions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// PlayerCommand describes one external player candidate. Candidates are
// tried in the order they appear in the config; the first whose command
// resolves in PATH is used.
type PlayerCommand struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// Config holds all user-tunable settings
type Config struct {
	// Extensions recognized as playable media (leading dot, lower case)
	Extensions []string `toml:"extensions"`

	// Players are tried in order of preference
	Players []PlayerCommand `toml:"player"`
}

// DefaultConfig returns the built-in configuration: the standard media
// extension set and the mpv/mplayer/vlc preference order with flags that
// suppress each player's own terminal UI and console output
func DefaultConfig() Config {
	return Config{
		Extensions: []string{
			".mp3", ".flac", ".wav", ".ogg", ".m4a", ".aac", ".wma", ".opus",
			".mp4", ".avi", ".mkv", ".mov", ".webm",
		},
		Players: []PlayerCommand{
			{Command: "mpv", Args: []string{"--no-terminal", "--quiet"}},
			{Command: "mplayer", Args: []string{"-quiet"}},
			{Command: "vlc", Args: []string{"--intf", "dummy"}},
		},
	}
}

// LoadConfig loads configuration from a TOML file
// If the file doesn't exist or fails to load, returns default config
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	// Missing sections fall back to defaults so a partial config still works
	defaults := DefaultConfig()
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = defaults.Extensions
	}
	if len(cfg.Players) == 0 {
		cfg.Players = defaults.Players
	}

	normalizeExtensions(cfg.Extensions)

	return cfg, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, cfg Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("Warning: failed to close config file: %v\n", err)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/mediatui/config.toml
func GetConfigPath() string {
	// First try current directory
	if _, err := os.Stat("./mediatui.toml"); err == nil {
		return "./mediatui.toml"
	}

	// Then try ~/.config/mediatui/config.toml
	home, err := os.UserHomeDir()
	if err != nil {
		return "./mediatui.toml"
	}

	return filepath.Join(home, ".config", "mediatui", "config.toml")
}

// IsMediaExtension reports whether ext (with or without leading dot, any
// case) belongs to the configured extension set
func (c Config) IsMediaExtension(ext string) bool {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}

	return false
}

// normalizeExtensions lower-cases entries and ensures a leading dot in place
func normalizeExtensions(exts []string) {
	for i, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}

		exts[i] = e
	}
}
