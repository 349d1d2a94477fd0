// Package paths provides CLI directory and file path resolution.
// Linux and macOS follow XDG-style locations under the home directory,
// Windows uses APPDATA / LOCALAPPDATA.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	projectOrg  = "apimgr"
	projectName = "swapi"
)

// ConfigDir returns the CLI config directory
// Linux: ~/.config/apimgr/swapi/
// Windows: %APPDATA%\apimgr\swapi\
func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), projectOrg, projectName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", projectOrg, projectName)
}

// CacheDir returns the CLI cache directory
// Linux: ~/.cache/apimgr/swapi/
// Windows: %LOCALAPPDATA%\apimgr\swapi\cache\
func CacheDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "cache")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", projectOrg, projectName)
}

// LogDir returns the CLI log directory
// Linux: ~/.local/log/apimgr/swapi/
// Windows: %LOCALAPPDATA%\apimgr\swapi\log\
func LogDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "log")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "log", projectOrg, projectName)
}

// ConfigFile returns the CLI config file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "cli.yml")
}

// LogFile returns the CLI log file path
func LogFile() string {
	return filepath.Join(LogDir(), "cli.log")
}

// EnsureDirs creates the config and log directories with owner-only
// permissions. The cache directory is created on demand by the cache.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), LogDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
		if err := os.Chmod(dir, 0700); err != nil {
			return fmt.Errorf("chmod dir %s: %w", dir, err)
		}
	}
	return nil
}

// EnsureParent creates the parent directory of path
func EnsureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// ResolveConfigPath resolves the --config flag to an absolute path.
// Relative names are looked up in ConfigDir and get a .yml extension when
// they have none.
func ResolveConfigPath(configFlag string) string {
	if configFlag == "" {
		return ConfigFile()
	}

	configFlag = ExpandHome(configFlag)
	if filepath.IsAbs(configFlag) {
		return addExtIfNeeded(configFlag)
	}
	return addExtIfNeeded(filepath.Join(ConfigDir(), configFlag))
}

func addExtIfNeeded(path string) string {
	ext := filepath.Ext(path)
	if ext != "" {
		return path
	}

	// use an existing .yml or .yaml file, default to .yml for new files
	if _, err := os.Stat(path + ".yml"); err == nil {
		return path + ".yml"
	}
	if _, err := os.Stat(path + ".yaml"); err == nil {
		return path + ".yaml"
	}
	return path + ".yml"
}
