package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siyuan-infoblox/use-splitter/pkg/cache"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	req := require.New(t)
	cfg := Default()
	req.Empty(cfg.Rules)
	req.Equal([]string{"vendor"}, cfg.Finder.Exclude)
	req.True(cfg.Runner.Cache)
	req.Equal(0, cfg.Runner.Jobs)
	req.Equal(cache.DefaultFileName, cfg.CachePath())
	req.Empty(cfg.Path)
}

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		name      string
		content   string
		expectErr string
		check     func(*require.Assertions, Config)
	}{
		{
			name: "full file",
			content: `
[rules]
single_import_per_statement = false

[finder]
exclude = ["vendor", "var/cache"]

[runner]
jobs = 4
cache = false
cache_file = "build/usplit.cache"
`,
			check: func(req *require.Assertions, cfg Config) {
				req.Equal(map[string]bool{"single_import_per_statement": false}, cfg.Rules)
				req.Equal([]string{"vendor", "var/cache"}, cfg.Finder.Exclude)
				req.Equal(4, cfg.Runner.Jobs)
				req.False(cfg.Runner.Cache)
				req.Equal(filepath.Join(tempDir, "build", "usplit.cache"), cfg.CachePath())
			},
		},
		{
			name:    "unset keys keep defaults",
			content: "[runner]\njobs = 2\n",
			check: func(req *require.Assertions, cfg Config) {
				req.Equal(2, cfg.Runner.Jobs)
				req.True(cfg.Runner.Cache)
				req.Equal([]string{"vendor"}, cfg.Finder.Exclude)
				req.Equal(filepath.Join(tempDir, cache.DefaultFileName), cfg.CachePath())
				req.NotNil(cfg.Rules)
			},
		},
		{
			name:    "empty file",
			content: "",
			check: func(req *require.Assertions, cfg Config) {
				req.True(cfg.Runner.Cache)
			},
		},
		{
			name:      "unknown key",
			content:   "[runner]\nworkers = 2\n",
			expectErr: "runner.workers",
		},
		{
			name:      "negative jobs",
			content:   "[runner]\njobs = -1\n",
			expectErr: "jobs must not be negative",
		},
		{
			name:      "invalid toml",
			content:   "[rules\n",
			expectErr: "failed to parse TOML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			path := writeConfig(t, tempDir, tt.content)

			cfg, err := Load(path)
			if tt.expectErr != "" {
				req.Error(err)
				req.Contains(err.Error(), tt.expectErr)
				return
			}
			req.NoError(err)
			req.Equal(path, cfg.Path)
			tt.check(req, cfg)
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	req := require.New(t)
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	req.Error(err)
}

func TestDiscover(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	sub := filepath.Join(root, "src", "Entity")
	req.NoError(os.MkdirAll(sub, 0755))

	// nothing yet: defaults
	cfg, err := Discover(sub)
	req.NoError(err)
	req.Empty(cfg.Path)

	path := writeConfig(t, root, "[finder]\nexclude = [\"generated\"]\n")
	cfg, err = Discover(sub)
	req.NoError(err)
	req.Equal(path, cfg.Path)
	req.Equal([]string{"generated"}, cfg.Finder.Exclude)
}

func TestCachePath_absolute(t *testing.T) {
	req := require.New(t)
	cfg := Default()
	cfg.Path = "/project/.usplit.toml"
	cfg.Runner.CacheFile = "/tmp/usplit.cache"
	req.Equal("/tmp/usplit.cache", cfg.CachePath())
}
