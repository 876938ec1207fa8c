package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "")
	t.Setenv("CANVAS_WIDTH", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "data/db/figures.db", cfg.DBPath)
	assert.Equal(t, 1200, cfg.CanvasWidth)
	assert.Equal(t, 800, cfg.CanvasHeight)
	assert.Equal(t, 32, cfg.BodyLimitMB)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figured.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"4000\"\ncanvas_width: 640\nlog_level: debug\n"), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "5000")
	t.Setenv("CANVAS_WIDTH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("READ_TIMEOUT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 640, cfg.CanvasWidth)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.ReadTimeout)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
}
