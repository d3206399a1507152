package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/data")
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Display.Width)
	assert.Equal(t, 4, cfg.Display.LinesPerScreen)
	assert.Equal(t, "latin1", cfg.Display.Charset)
	assert.Equal(t, 127, cfg.Reader.RawLineCapacity)
	assert.Equal(t, 4096, cfg.Reader.IndexCapacity)
	assert.Equal(t, 8, cfg.Reader.MaxWrapsPerLine)
	assert.Equal(t, 10, cfg.Bookmarks.SaveEvery)
	assert.Equal(t, 14, cfg.Bookmarks.KeyLimit)
	assert.Equal(t, 50, cfg.Menu.MaxFiles)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Equal(t, filepath.Join("/data", "rtxt.log"), cfg.LogFile())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
display:
  width: 21
  charset: cp437
reader:
  index_capacity: 100
`)
	cfg, err := Load(path, "/data")
	require.NoError(t, err)

	assert.Equal(t, 21, cfg.Display.Width)
	assert.Equal(t, 4, cfg.Display.LinesPerScreen)
	assert.Equal(t, "cp437", cfg.Display.Charset)

	opts := cfg.ReaderOptions()
	assert.Equal(t, 21, opts.Width)
	assert.Equal(t, 100, opts.IndexCapacity)
	assert.Equal(t, 127, opts.RawLineCapacity)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"zero width", "display:\n  width: 0\n", "display.width"},
		{"negative capacity", "reader:\n  index_capacity: -1\n", "reader.index_capacity"},
		{"unknown charset", "display:\n  charset: utf-16\n", "display.charset"},
		{"bad yaml", "display: [", "parse config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), "/data")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_RequiresDataDir(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data directory")
}
