// Package config loads .usplit.toml project settings.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/siyuan-infoblox/use-splitter/pkg/cache"
	"github.com/siyuan-infoblox/use-splitter/pkg/errors"
	"github.com/siyuan-infoblox/use-splitter/pkg/utils"
)

// FileName is the config file looked up from the target path upwards.
const FileName = ".usplit.toml"

// Config mirrors the file layout.
type Config struct {
	// Rules switches rules on or off by name; rules not listed stay enabled.
	Rules  map[string]bool `toml:"rules"`
	Finder FinderConfig    `toml:"finder"`
	Runner RunnerConfig    `toml:"runner"`

	// Path is the file the config was read from, "" for defaults.
	Path string `toml:"-"`
}

type FinderConfig struct {
	Exclude []string `toml:"exclude"`
}

type RunnerConfig struct {
	// Jobs is the number of files processed at once, 0 means one per CPU.
	Jobs      int    `toml:"jobs"`
	Cache     bool   `toml:"cache"`
	CacheFile string `toml:"cache_file"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Rules: map[string]bool{},
		Finder: FinderConfig{
			Exclude: []string{"vendor"},
		},
		Runner: RunnerConfig{
			Cache:     true,
			CacheFile: cache.DefaultFileName,
		},
	}
}

// Load reads path over the defaults. Keys the file does not set keep their
// default value; keys nothing knows about are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %s: %w", path, errors.ErrMsgFailedToParseConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: %s: %s", path, errors.ErrMsgUnknownConfigKeys, strings.Join(keys, ", "))
	}
	if cfg.Runner.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: %s", path, errors.ErrMsgInvalidJobs)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]bool{}
	}
	if cfg.Runner.CacheFile == "" {
		cfg.Runner.CacheFile = cache.DefaultFileName
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads the nearest config file at or above start, or returns the
// defaults when there is none.
func Discover(start string) (Config, error) {
	path := utils.FindUpward(start, FileName)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// CachePath resolves the cache file. A relative name is taken from the
// directory holding the config file, or the working directory for defaults.
func (c Config) CachePath() string {
	if filepath.IsAbs(c.Runner.CacheFile) || c.Path == "" {
		return c.Runner.CacheFile
	}
	return filepath.Join(filepath.Dir(c.Path), c.Runner.CacheFile)
}
