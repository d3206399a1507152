// Package config loads rtxt settings. The defaults are the device constants;
// a YAML file can override them for a different screen.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/rtxt/internal/bookmark"
	"github.com/kk-code-lab/rtxt/internal/reader"
	"github.com/kk-code-lab/rtxt/internal/textutil"
)

// Config holds the application configuration.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Reader    ReaderConfig    `yaml:"reader"`
	Bookmarks BookmarksConfig `yaml:"bookmarks"`
	Menu      MenuConfig      `yaml:"menu"`
	DataDir   string          `yaml:"-"` // set by caller, not from config file
}

// DisplayConfig describes the reading window.
type DisplayConfig struct {
	Width          int    `yaml:"width"`
	LinesPerScreen int    `yaml:"lines_per_screen"`
	Charset        string `yaml:"charset"`
}

// ReaderConfig sizes the pagination engine.
type ReaderConfig struct {
	RawLineCapacity int `yaml:"raw_line_capacity"`
	IndexCapacity   int `yaml:"index_capacity"`
	MaxWrapsPerLine int `yaml:"max_wraps_per_line"`
}

// BookmarksConfig controls how often and under which keys positions are saved.
type BookmarksConfig struct {
	SaveEvery int `yaml:"save_every"`
	KeyLimit  int `yaml:"key_limit"`
}

// MenuConfig bounds the file menu.
type MenuConfig struct {
	MaxFiles int `yaml:"max_files"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	geometry := reader.DefaultOptions()
	return Config{
		Display: DisplayConfig{
			Width:          geometry.Width,
			LinesPerScreen: 4,
			Charset:        textutil.DefaultCharset,
		},
		Reader: ReaderConfig{
			RawLineCapacity: geometry.RawLineCapacity,
			IndexCapacity:   geometry.IndexCapacity,
			MaxWrapsPerLine: geometry.MaxWrapsPerLine,
		},
		Bookmarks: BookmarksConfig{
			SaveEvery: bookmark.DefaultSaveEvery,
			KeyLimit:  bookmark.DefaultKeyLimit,
		},
		Menu: MenuConfig{
			MaxFiles: 50,
		},
	}
}

// Load reads configPath over the defaults. A missing file is not an error.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	cfg.DataDir = dataDir

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults fills fields the file left empty.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Display.Charset == "" {
		c.Display.Charset = defaults.Display.Charset
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}
	checks := []struct {
		name  string
		value int
	}{
		{"display.width", c.Display.Width},
		{"display.lines_per_screen", c.Display.LinesPerScreen},
		{"reader.raw_line_capacity", c.Reader.RawLineCapacity},
		{"reader.index_capacity", c.Reader.IndexCapacity},
		{"reader.max_wraps_per_line", c.Reader.MaxWrapsPerLine},
		{"bookmarks.save_every", c.Bookmarks.SaveEvery},
		{"bookmarks.key_limit", c.Bookmarks.KeyLimit},
		{"menu.max_files", c.Menu.MaxFiles},
	}
	for _, check := range checks {
		if check.value < 1 {
			return fmt.Errorf("%s must be at least 1", check.name)
		}
	}
	if _, err := textutil.NewDecoder(c.Display.Charset); err != nil {
		return fmt.Errorf("display.charset: %w", err)
	}
	return nil
}

// ReaderOptions converts the settings into reader geometry.
func (c *Config) ReaderOptions() reader.Options {
	return reader.Options{
		Width:           c.Display.Width,
		RawLineCapacity: c.Reader.RawLineCapacity,
		IndexCapacity:   c.Reader.IndexCapacity,
		MaxWrapsPerLine: c.Reader.MaxWrapsPerLine,
	}
}

// LogFile is the default log location inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "rtxt.log")
}

// DefaultConfigPath returns the config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "rtxt", "config.yaml")
}

// DefaultDataDir returns the data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "rtxt")
}
