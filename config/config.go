// Package config persists engine settings and the daily stats record
// as JSON documents under one directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tomo/session"
)

// ResolveDir picks the config directory: an explicit flag path wins,
// then TOMO_CONFIG_PATH, then the OS default location.
func ResolveDir(flagPath string) (string, error) {
	if flagPath != "" {
		return absPath(flagPath)
	}
	if envPath := os.Getenv("TOMO_CONFIG_PATH"); envPath != "" {
		return absPath(envPath)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(base, "tomo"), nil
}

func absPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

// Store reads and writes the settings and stats documents.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}

func (s *Store) settingsPath() string { return filepath.Join(s.dir, "settings.json") }
func (s *Store) statsPath() string    { return filepath.Join(s.dir, "stats.json") }

// LoadSettings returns the stored settings merged over the hard-coded
// defaults. An absent or unreadable file is not an error: the defaults
// win. Out-of-range fields are replaced by their defaults.
func (s *Store) LoadSettings() session.Settings {
	defaults := session.DefaultSettings()
	data, err := os.ReadFile(s.settingsPath())
	if err != nil {
		return defaults
	}
	loaded := defaults
	if err := json.Unmarshal(data, &loaded); err != nil {
		return defaults
	}
	loaded.Sanitize(defaults)
	return loaded
}

// SaveSettings writes the settings document.
func (s *Store) SaveSettings(settings session.Settings) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(s.settingsPath(), data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
