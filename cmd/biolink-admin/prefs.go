package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs are the console settings kept between runs.
type Prefs struct {
	Addr string `toml:"addr"`
}

const (
	defaultPrefsPath = "~/.config/biolink/console.toml"
	defaultAddr      = "http://localhost:8080"
)

// loadPrefs reads path, falling back to defaults when the file is missing or
// unreadable.
func loadPrefs(path string) Prefs {
	prefs := Prefs{Addr: defaultAddr}

	resolved, err := expandPath(path)
	if err != nil {
		return prefs
	}
	b, err := os.ReadFile(resolved)
	if err != nil {
		return prefs
	}

	var loaded Prefs
	if err := toml.Unmarshal(b, &loaded); err != nil {
		return prefs
	}
	if strings.TrimSpace(loaded.Addr) != "" {
		prefs.Addr = strings.TrimSpace(loaded.Addr)
	}
	return prefs
}

func savePrefs(path string, p Prefs) error {
	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	b, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, b, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
