package version

import (
	"fmt"
	"runtime"
)

var (
	// These variables are set at build time using ldflags
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildDate = "unknown"
)

// Info holds version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	GitTag    string `json:"gitTag"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// SetFromBuildInfo uses the module version recorded by `go install` when no
// version was injected through ldflags.
func SetFromBuildInfo(moduleVersion string) {
	if Version != "dev" || moduleVersion == "" || moduleVersion == "(devel)" {
		return
	}
	Version = moduleVersion
}

// Get returns version information
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	s := fmt.Sprintf("usplit %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
	if i.GitCommit != "unknown" {
		s += fmt.Sprintf("\ncommit %s", i.GitCommit)
		if i.GitTag != "unknown" {
			s += fmt.Sprintf(" (%s)", i.GitTag)
		}
	}
	if i.BuildDate != "unknown" {
		s += fmt.Sprintf("\nbuilt %s", i.BuildDate)
	}
	return s
}
