package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", info.OS, runtime.GOOS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, want %q", info.Arch, runtime.GOARCH)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
}

func TestInfoString(t *testing.T) {
	info := Info{Version: "1.2.0", OS: "linux", Arch: "amd64"}
	if got := info.String(); got != "1.2.0 (linux/amd64)" {
		t.Errorf("String() = %q", got)
	}
}

func TestInfoFull(t *testing.T) {
	full := Get().Full()
	for _, label := range []string{"Version:", "Commit:", "Build Date:", "Go Version:", "OS/Arch:"} {
		if !strings.Contains(full, label) {
			t.Errorf("Full() should contain %q", label)
		}
	}
}

func TestShortCommit(t *testing.T) {
	tests := map[string]string{
		"0123456789abcdef": "0123456",
		"abc":              "abc",
		"unknown":          "unknown",
	}
	for commit, want := range tests {
		if got := (Info{Commit: commit}).ShortCommit(); got != want {
			t.Errorf("ShortCommit(%q) = %q, want %q", commit, got, want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	info := Info{Version: "1.2.0"}
	if got := info.UserAgent("swapi-cli"); got != "swapi-cli/1.2.0" {
		t.Errorf("UserAgent() = %q", got)
	}
}

func TestIsDev(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	tests := map[string]bool{
		"dev":       true,
		"":          true,
		"1.3.0-dev": true,
		"1.3.0":     false,
	}
	for v, want := range tests {
		Version = v
		if got := IsDev(); got != want {
			t.Errorf("IsDev() with %q = %v, want %v", v, got, want)
		}
	}
}
