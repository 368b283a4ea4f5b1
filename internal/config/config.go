// Package config loads engine options for an embedding application.
//
// Options come from an optional TOML file overlaid with SITEFORGE_*
// environment variables. A missing file is not an error; every option has
// a working default so the zero-configuration path just runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Options are the tunables for the rendering engine.
type Options struct {
	// CacheDir is where the local document cache lives. Empty disables
	// the file cache.
	CacheDir string `toml:"cache_dir"`

	// MaxNestingDepth bounds container recursion during resolution.
	MaxNestingDepth int `toml:"max_nesting_depth"`

	// WaitForRenderers makes resolution block on lazy renderer
	// construction instead of emitting loading placeholders.
	WaitForRenderers bool `toml:"wait_for_renderers"`

	// TemplatePath points at an optional Lua template catalog that
	// extends the builtin site templates. Trusted input only.
	TemplatePath string `toml:"template_path"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// Default returns the options used when nothing is configured.
func Default() Options {
	return Options{
		MaxNestingDepth:  32,
		WaitForRenderers: false,
		LogLevel:         "warn",
	}
}

// Load reads options from a TOML file, then applies environment
// overrides. A missing file yields the defaults, not an error.
func Load(path string) (Options, error) {
	opts := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return opts, fmt.Errorf("reading options file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, &opts); err != nil {
			return opts, fmt.Errorf("parsing options file %s: %w", path, err)
		}
	}

	applyEnv(&opts)

	if opts.MaxNestingDepth <= 0 {
		opts.MaxNestingDepth = Default().MaxNestingDepth
	}
	return opts, nil
}

// Parse decodes options from TOML source with environment overrides
// applied. Used by embedders that manage their own files.
func Parse(data []byte) (Options, error) {
	opts := Default()
	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing options: %w", err)
	}
	applyEnv(&opts)
	return opts, nil
}

// envPrefix scopes the environment overrides.
const envPrefix = "SITEFORGE_"

func applyEnv(opts *Options) {
	if v, ok := lookupEnv("CACHE_DIR"); ok {
		opts.CacheDir = v
	}
	if v, ok := lookupEnv("MAX_NESTING_DEPTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			opts.MaxNestingDepth = n
		}
	}
	if v, ok := lookupEnv("WAIT_FOR_RENDERERS"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.WaitForRenderers = b
		}
	}
	if v, ok := lookupEnv("TEMPLATE_PATH"); ok {
		opts.TemplatePath = v
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		opts.LogLevel = strings.ToLower(v)
	}
}

func lookupEnv(name string) (string, bool) {
	return os.LookupEnv(envPrefix + name)
}
