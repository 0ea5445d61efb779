// Package config loads viewer configuration from a YAML file discovered
// by walking up from the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file searched for in each directory on the walk
// up from the working directory.
const FileName = "hankerlytics.yaml"

// EnvConfigPath overrides discovery when set.
const EnvConfigPath = "HANKERLYTICS_CONFIG"

// Config is the full viewer configuration.
type Config struct {
	Fetch   FetchConfig  `yaml:"fetch"`
	Cache   CacheConfig  `yaml:"cache"`
	Palette []string     `yaml:"palette"`
	Layout  LayoutConfig `yaml:"layout"`
}

// FetchConfig tunes the remote fetcher.
type FetchConfig struct {
	BaseURL       string `yaml:"base_url"`
	Concurrency   int    `yaml:"concurrency"`
	ProgressEvery int    `yaml:"progress_every"`
	MaxNodes      int    `yaml:"max_nodes"`
	MaxDepth      int    `yaml:"max_depth"`
}

// CacheConfig tunes local persistence.
type CacheConfig struct {
	Path            string `yaml:"path"`
	ThreadCapacity  int    `yaml:"thread_capacity"`
	ListingCapacity int    `yaml:"listing_capacity"`
}

// LayoutConfig overrides layout spacing constants. Zero values keep the
// built-in defaults.
type LayoutConfig struct {
	BandHeight    float64 `yaml:"band_height"`
	ColumnSpacing float64 `yaml:"column_spacing"`
	RowSpacing    float64 `yaml:"row_spacing"`
	MosaicColumns int     `yaml:"mosaic_columns"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Fetch: FetchConfig{
			Concurrency:   12,
			ProgressEvery: 25,
		},
		Cache: CacheConfig{
			Path:            filepath.Join(home, ".hankerlytics", "cache.db"),
			ThreadCapacity:  20,
			ListingCapacity: 6,
		},
	}
}

// Load reads and parses the config file at path, layered over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the config: the env override first, then a
// walk up from the working directory looking for FileName. Returns the
// defaults when nothing is found; a present-but-broken file is an error.
func Discover() (Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	dir, err := os.Getwd()
	if err != nil {
		return Default(), nil
	}
	home, _ := os.UserHomeDir()

	for {
		path := filepath.Join(dir, FileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // filesystem root
		}
		// Don't walk above the home directory.
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return Default(), nil
}
