// Package version provides version information for the raml2doc binary.
// Values are injected with -ldflags at release time; for `go install`
// builds they are filled from the embedded build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/yeisme/raml2doc/pkg/raml"
)

var (
	// Version is the current version of the application
	Version = "dev"
	// GitCommit is the git commit hash
	GitCommit = "unknown"
	// BuildDate is when the binary was built
	BuildDate = "unknown"
	// Modified indicates if the source tree was modified (string: "true" or "false")
	Modified = "false"
	// ModSum is the module checksum
	ModSum = "unknown"
)

// RAMLVersion is the RAML version the converter reads.
const RAMLVersion = raml.SupportedVersion

// Info contains version information
type Info struct {
	Version     string `json:"version"`
	GitCommit   string `json:"git_commit"`
	BuildDate   string `json:"build_date"`
	GoVersion   string `json:"go_version"`
	Platform    string `json:"platform"`
	Modified    string `json:"modified"`
	ModSum      string `json:"mod_sum"`
	RAMLVersion string `json:"raml_version"`
}

// GetVersion returns the version information
func GetVersion() Info {
	info := Info{
		Version:     Version,
		GitCommit:   GitCommit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		Modified:    Modified,
		ModSum:      ModSum,
		RAMLVersion: RAMLVersion,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(&info, bi)
	}
	return info
}

// fromBuildInfo fills the fields ldflags left at their defaults.
func fromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	if info.ModSum == "unknown" && bi.Main.Sum != "" {
		info.ModSum = bi.Main.Sum
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value
		}
	}
}

// GetVersionString returns the detailed version line
func GetVersionString() string {
	info := GetVersion()
	return fmt.Sprintf("raml2doc has version %s built with %s from %s (%s, modified: %s, mod sum: %q) on %s, reads RAML %s",
		info.Version,
		info.GoVersion,
		info.GitCommit,
		info.Platform,
		info.Modified,
		info.ModSum,
		info.BuildDate,
		info.RAMLVersion,
	)
}

// GetShortVersionString returns a short version string similar to gh
func GetShortVersionString() string {
	info := GetVersion()

	dateStr := info.BuildDate
	if buildTime, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		dateStr = buildTime.Format("2006-01-02")
	}

	return fmt.Sprintf("raml2doc version %s (%s)\nhttps://github.com/yeisme/raml2doc/releases/tag/%s",
		info.Version,
		dateStr,
		releaseTag(info.Version),
	)
}

func releaseTag(v string) string {
	if len(v) > 0 && v[0] == 'v' {
		return v
	}
	return "v" + v
}
