// Package config loads tool configuration from an optional YAML file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Matcher struct {
		Threshold    float64 `yaml:"threshold"`     // fuzzy ratio a window must exceed
		WindowBehind int     `yaml:"window_behind"` // lines scanned before the hint
		WindowAhead  int     `yaml:"window_ahead"`  // lines scanned after the hint
		MovedNotice  int     `yaml:"moved_notice"`  // hint deviation that triggers a moved notice
	} `yaml:"matcher"`

	Resolver struct {
		StripPrefixes []string `yaml:"strip_prefixes"` // patch-dir prefixes removed from patch paths
		RootMarkers   []string `yaml:"root_markers"`   // segments up to which recorded paths are cut
	} `yaml:"resolver"`

	Log struct {
		File string `yaml:"file"` // JSON log file path (empty disables logging)
	} `yaml:"log"`

	Verbose bool `yaml:"verbose"` // report per-file change statistics
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Matcher.Threshold = 0.8
	cfg.Matcher.WindowBehind = 100
	cfg.Matcher.WindowAhead = 200
	cfg.Matcher.MovedNotice = 100
	cfg.Resolver.StripPrefixes = []string{"MacOS-patches/"}
	cfg.Resolver.RootMarkers = []string{"OpenSpace/"}
	return cfg
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	defaults := Default()
	if cfg.Matcher.Threshold == 0 {
		cfg.Matcher.Threshold = defaults.Matcher.Threshold
	}
	if cfg.Matcher.WindowBehind == 0 {
		cfg.Matcher.WindowBehind = defaults.Matcher.WindowBehind
	}
	if cfg.Matcher.WindowAhead == 0 {
		cfg.Matcher.WindowAhead = defaults.Matcher.WindowAhead
	}
	if cfg.Matcher.MovedNotice == 0 {
		cfg.Matcher.MovedNotice = defaults.Matcher.MovedNotice
	}
	if cfg.Resolver.StripPrefixes == nil {
		cfg.Resolver.StripPrefixes = defaults.Resolver.StripPrefixes
	}
	if cfg.Resolver.RootMarkers == nil {
		cfg.Resolver.RootMarkers = defaults.Resolver.RootMarkers
	}

	return &cfg, nil
}
