package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name     string
		info     Info
		expected string
	}{
		{
			name:     "development build",
			info:     Info{Version: "dev", GitCommit: "unknown", GitTag: "unknown", BuildDate: "unknown", GoVersion: "go1.24.0", Platform: "linux/amd64"},
			expected: "usplit dev (go1.24.0, linux/amd64)",
		},
		{
			name:     "release build",
			info:     Info{Version: "1.2.0", GitCommit: "abc1234", GitTag: "v1.2.0", BuildDate: "2026-01-02", GoVersion: "go1.24.0", Platform: "darwin/arm64"},
			expected: "usplit 1.2.0 (go1.24.0, darwin/arm64)\ncommit abc1234 (v1.2.0)\nbuilt 2026-01-02",
		},
		{
			name:     "commit without tag",
			info:     Info{Version: "dev", GitCommit: "abc1234", GitTag: "unknown", BuildDate: "unknown", GoVersion: "go1.24.0", Platform: "linux/amd64"},
			expected: "usplit dev (go1.24.0, linux/amd64)\ncommit abc1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			req.Equal(tt.expected, tt.info.String())
		})
	}
}

func TestGet(t *testing.T) {
	req := require.New(t)
	info := Get()
	req.Equal(Version, info.Version)
	req.Equal(runtime.Version(), info.GoVersion)
	req.True(strings.Contains(info.Platform, runtime.GOOS))
}

func TestSetFromBuildInfo(t *testing.T) {
	req := require.New(t)
	saved := Version
	t.Cleanup(func() { Version = saved })

	Version = "dev"
	SetFromBuildInfo("(devel)")
	req.Equal("dev", Version)
	SetFromBuildInfo("")
	req.Equal("dev", Version)
	SetFromBuildInfo("v0.3.1")
	req.Equal("v0.3.1", Version)

	// ldflags win
	Version = "1.0.0"
	SetFromBuildInfo("v0.3.1")
	req.Equal("1.0.0", Version)
}
