package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Paths lists the files the application keeps in its config directory.
type Paths struct {
	Dir      string
	Settings string
	Presets  string
	History  string
}

// ConfigDir returns the OS-standard configuration directory, falling back to
// a directory under the user's home.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(runtime.GOOS, homeDir), nil
}

// AppPaths returns the paths for appName inside the config directory.
func AppPaths(appName string) (Paths, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return Paths{}, err
	}
	return PathsIn(filepath.Join(configDir, appName)), nil
}

// PathsIn returns the paths rooted at dir.
func PathsIn(dir string) Paths {
	return Paths{
		Dir:      dir,
		Settings: filepath.Join(dir, "settings.yaml"),
		Presets:  filepath.Join(dir, "presets.toml"),
		History:  filepath.Join(dir, "history.db"),
	}
}

func fallbackConfigDir(goos, homeDir string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support")
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming")
	default:
		return filepath.Join(homeDir, ".config")
	}
}
