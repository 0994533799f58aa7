package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calciumlabs/calcium/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 6, cfg.Precision)
	assert.Equal(t, 0, cfg.Rectangles)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "calcium.toml", `
precision = 10
rectangles = 5000
log_level = "debug"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Precision)
	assert.Equal(t, 5000, cfg.Rectangles)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset fields keep their defaults.
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "calcium.yaml", `
precision: 12
log_format: json
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Precision)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_UnknownExtension(t *testing.T) {
	path := writeFile(t, "calcium.ini", "precision = 3")
	_, err := config.Load(path)
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"precision", "precision = 99", "precision"},
		{"rectangles", "rectangles = -1", "rectangles"},
		{"level", `log_level = "loud"`, "log level"},
		{"format", `log_format = "xml"`, "log format"},
	}
	for _, tc := range cases {
		path := writeFile(t, tc.name+".toml", tc.content)
		_, err := config.Load(path)
		assert.ErrorContains(t, err, tc.want, tc.name)
	}
}
