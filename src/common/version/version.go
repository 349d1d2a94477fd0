// Package version provides build info and version strings.
// Values are set via -ldflags at build time, e.g.
//
//	-X github.com/apimgr/swapi/src/common/version.Version=1.2.0
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	// Version is the semantic version (e.g., "1.0.0")
	Version = "dev"

	// Commit is the git commit hash
	Commit = "unknown"

	// BuildDate is the build timestamp
	BuildDate = "unknown"
)

// Info contains all version information
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get returns the current version info
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String returns a formatted version string
func (i Info) String() string {
	return fmt.Sprintf("%s (%s/%s)", i.Version, i.OS, i.Arch)
}

// Full returns a detailed version string
func (i Info) Full() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version:    %s\n", i.Version)
	fmt.Fprintf(&sb, "Commit:     %s\n", i.ShortCommit())
	fmt.Fprintf(&sb, "Build Date: %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "Go Version: %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:    %s/%s", i.OS, i.Arch)
	return sb.String()
}

// ShortCommit returns the first 7 characters of the commit hash
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// UserAgent returns a User-Agent string for HTTP clients
func (i Info) UserAgent(binaryName string) string {
	return fmt.Sprintf("%s/%s", binaryName, i.Version)
}

// IsDev returns true if this is a development build
func IsDev() bool {
	return Version == "dev" || Version == "" || strings.HasSuffix(Version, "-dev")
}
