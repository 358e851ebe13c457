// ABOUTME: Settings loading: defaults, global + project YAML files, PI_GLOB_* env, overrides
// ABOUTME: Layered with viper; decoded with mapstructure hooks for durations and lists

package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PI_GLOB_MAX_RESULTS.
const EnvPrefix = "PI_GLOB"

// Setting keys.
const (
	KeyMaxResults     = "max_results"
	KeyWorkers        = "workers"
	KeyFollowSymlinks = "follow_symlinks"
	KeySkipDirs       = "skip_dirs"
	KeyTimeout        = "timeout"
	KeyLogLevel       = "log_level"
	KeyFormat         = "format"
)

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "yaml"}

// Settings holds the merged configuration.
type Settings struct {
	MaxResults     int           `mapstructure:"max_results" yaml:"max_results"`
	Workers        int           `mapstructure:"workers" yaml:"workers"`
	FollowSymlinks bool          `mapstructure:"follow_symlinks" yaml:"follow_symlinks"`
	SkipDirs       []string      `mapstructure:"skip_dirs" yaml:"skip_dirs"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	Format         string        `mapstructure:"format" yaml:"format"`

	// Workspace is the project root searches resolve against. Set by Load,
	// never read from files.
	Workspace string `mapstructure:"-" yaml:"-"`
	// Sources lists the config files that were read, in merge order.
	Sources []string `mapstructure:"-" yaml:"-"`
}

// LoadOptions selects where settings come from.
type LoadOptions struct {
	// Workspace is the project root; its .pi-glob/config.yaml is merged
	// over the global file.
	Workspace string
	// File, when set, replaces both the global and project files.
	File string
	// Overrides are applied last, keyed by setting key.
	Overrides map[string]any
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		MaxResults:     100,
		Workers:        runtime.NumCPU(),
		FollowSymlinks: true,
		SkipDirs:       []string{".git"},
		LogLevel:       "info",
		Format:         "text",
	}
}

// Load reads and merges settings. Precedence, lowest first: defaults, global
// file, project file (or the explicit File instead of both), PI_GLOB_* env,
// overrides. Missing default-location files are not an error; a missing
// explicit File is.
func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	d := Defaults()
	v.SetDefault(KeyMaxResults, d.MaxResults)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyFollowSymlinks, d.FollowSymlinks)
	v.SetDefault(KeySkipDirs, d.SkipDirs)
	v.SetDefault(KeyTimeout, d.Timeout)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyFormat, d.Format)

	var sources []string
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
		sources = append(sources, opts.File)
	} else {
		for _, path := range []string{GlobalConfigFile(), ProjectConfigFile(opts.Workspace)} {
			ok, err := mergeFile(v, path)
			if err != nil {
				return nil, err
			}
			if ok {
				sources = append(sources, path)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for k, val := range opts.Overrides {
		v.Set(k, val)
	}

	var s Settings
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&s, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	s.SkipDirs = cleanList(s.SkipDirs)
	s.Workspace = opts.Workspace
	s.Sources = sources

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// mergeFile merges path into v when it exists.
func mergeFile(v *viper.Viper, path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return false, fmt.Errorf("read config %s: %w", path, err)
	}
	return true, nil
}

// cleanList trims entries and drops empty ones.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	switch {
	case s.MaxResults < 1:
		return fmt.Errorf("%s must be at least 1, got %d", KeyMaxResults, s.MaxResults)
	case s.Workers < 1:
		return fmt.Errorf("%s must be at least 1, got %d", KeyWorkers, s.Workers)
	case s.Timeout < 0:
		return fmt.Errorf("%s must not be negative, got %s", KeyTimeout, s.Timeout)
	case !slices.Contains(Formats, s.Format):
		return fmt.Errorf("%s must be one of %s, got %q", KeyFormat, strings.Join(Formats, ", "), s.Format)
	}
	return nil
}
