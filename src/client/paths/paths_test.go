package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", home)
	t.Setenv("LOCALAPPDATA", home)
	return home
}

// Tests for directory helpers

func TestDirsContainProject(t *testing.T) {
	dirs := map[string]string{
		"ConfigDir": ConfigDir(),
		"CacheDir":  CacheDir(),
		"LogDir":    LogDir(),
	}

	for name, dir := range dirs {
		t.Run(name, func(t *testing.T) {
			if dir == "" {
				t.Fatalf("%s() returned empty string", name)
			}
			if !strings.Contains(dir, projectOrg) {
				t.Errorf("%s() = %q, should contain %q", name, dir, projectOrg)
			}
			if !strings.Contains(dir, projectName) {
				t.Errorf("%s() = %q, should contain %q", name, dir, projectName)
			}
		})
	}
}

func TestDirsPlatformSpecific(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix layout")
	}

	if !strings.Contains(ConfigDir(), ".config") {
		t.Errorf("ConfigDir() = %q, should use .config", ConfigDir())
	}
	if !strings.Contains(CacheDir(), ".cache") {
		t.Errorf("CacheDir() = %q, should use .cache", CacheDir())
	}
	if !strings.Contains(LogDir(), filepath.Join(".local", "log")) {
		t.Errorf("LogDir() = %q, should use .local/log", LogDir())
	}
}

func TestAllDirsAreDifferent(t *testing.T) {
	dirs := []string{ConfigDir(), CacheDir(), LogDir()}
	seen := map[string]bool{}
	for _, d := range dirs {
		if seen[d] {
			t.Errorf("directory %q used twice", d)
		}
		seen[d] = true
	}
}

func TestConfigFile(t *testing.T) {
	f := ConfigFile()
	if filepath.Base(f) != "cli.yml" {
		t.Errorf("ConfigFile() = %q, want cli.yml", f)
	}
	if filepath.Dir(f) != ConfigDir() {
		t.Errorf("ConfigFile() should live in ConfigDir()")
	}
}

func TestLogFile(t *testing.T) {
	f := LogFile()
	if filepath.Base(f) != "cli.log" {
		t.Errorf("LogFile() = %q, want cli.log", f)
	}
	if filepath.Dir(f) != LogDir() {
		t.Errorf("LogFile() should live in LogDir()")
	}
}

// Tests for EnsureDirs / EnsureParent

func TestEnsureDirs(t *testing.T) {
	setHome(t)

	if err := EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error = %v", err)
	}

	for _, dir := range []string{ConfigDir(), LogDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("%s not created: %v", dir, err)
		}
		if runtime.GOOS != "windows" && info.Mode().Perm() != 0700 {
			t.Errorf("%s perm = %o, want 0700", dir, info.Mode().Perm())
		}
	}
}

func TestEnsureDirsFixesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	setHome(t)

	os.MkdirAll(ConfigDir(), 0755)

	if err := EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error = %v", err)
	}
	info, _ := os.Stat(ConfigDir())
	if info.Mode().Perm() != 0700 {
		t.Errorf("perm = %o, want 0700", info.Mode().Perm())
	}
}

func TestEnsureParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "file.log")

	if err := EnsureParent(path); err != nil {
		t.Fatalf("EnsureParent() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}

// Tests for ExpandHome

func TestExpandHome(t *testing.T) {
	home := setHome(t)

	tests := map[string]string{
		"~":             home,
		"~/logs/x.log":  filepath.Join(home, "logs", "x.log"),
		"/abs/path.log": "/abs/path.log",
		"relative.log":  "relative.log",
		"~user/file":    "~user/file",
	}
	for in, want := range tests {
		if got := ExpandHome(in); got != want {
			t.Errorf("ExpandHome(%q) = %q, want %q", in, got, want)
		}
	}
}

// Tests for ResolveConfigPath

func TestResolveConfigPathEmpty(t *testing.T) {
	if got := ResolveConfigPath(""); got != ConfigFile() {
		t.Errorf("ResolveConfigPath(\"\") = %q, want %q", got, ConfigFile())
	}
}

func TestResolveConfigPathAbsolute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	if got := ResolveConfigPath(path); got != path {
		t.Errorf("ResolveConfigPath() = %q, want %q", got, path)
	}
}

func TestResolveConfigPathTilde(t *testing.T) {
	home := setHome(t)

	got := ResolveConfigPath("~/swapi.yml")
	if got != filepath.Join(home, "swapi.yml") {
		t.Errorf("ResolveConfigPath() = %q", got)
	}
}

func TestResolveConfigPathRelative(t *testing.T) {
	setHome(t)

	got := ResolveConfigPath("work")
	want := filepath.Join(ConfigDir(), "work.yml")
	if got != want {
		t.Errorf("ResolveConfigPath() = %q, want %q", got, want)
	}
}

// Tests for addExtIfNeeded

func TestAddExtIfNeeded(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "config")

	if got := addExtIfNeeded(base); got != base+".yml" {
		t.Errorf("no file: got %q, want .yml", got)
	}

	os.WriteFile(base+".yaml", []byte("api: {}\n"), 0600)
	if got := addExtIfNeeded(base); got != base+".yaml" {
		t.Errorf("yaml exists: got %q, want .yaml", got)
	}

	os.WriteFile(base+".yml", []byte("api: {}\n"), 0600)
	if got := addExtIfNeeded(base); got != base+".yml" {
		t.Errorf("both exist: got %q, want .yml", got)
	}

	if got := addExtIfNeeded(base + ".toml"); got != base+".toml" {
		t.Errorf("other extension: got %q", got)
	}
}
