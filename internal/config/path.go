package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the directory holding harview settings and scripts.
func Dir() string {
	if override := os.Getenv("HARVIEW_CONFIG_DIR"); override != "" {
		return override
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".harview"
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "harview")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "harview")
	default:
		return filepath.Join(home, ".config", "harview")
	}
}

// ResolvePath makes p absolute against base. Empty paths stay empty.
func ResolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
