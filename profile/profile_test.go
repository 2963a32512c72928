package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/grove"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Formats(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"toml", "grove.toml", "drag_dead_zone = 0.05\nmax_samples = 8\nlog_level = \"debug\"\n"},
		{"yaml", "grove.yaml", "drag_dead_zone: 0.05\nmax_samples: 8\nlog_level: debug\n"},
		{"yml", "grove.yml", "drag_dead_zone: 0.05\nmax_samples: 8\nlog_level: debug\n"},
		{"json", "grove.json", `{"drag_dead_zone": 0.05, "max_samples": 8, "log_level": "debug"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 0.05, cfg.DragDeadZone)
			assert.Equal(t, 8, cfg.MaxSamples)
			assert.Equal(t, "debug", cfg.LogLevel)

			// Unset keys keep their defaults.
			def := grove.DefaultConfig()
			assert.Equal(t, def.PointerExtent, cfg.PointerExtent)
			assert.Equal(t, def.LockFocusOnSelect, cfg.LockFocusOnSelect)
		})
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "grove.ini", "x=1")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", `{"dead_zone": 1}`},
		{"wrong type", `{"max_samples": "many"}`},
		{"negative dead zone", `{"drag_dead_zone": -1}`},
		{"zero extent", `{"pointer_extent": 0}`},
		{"fractional samples", `{"max_samples": 1.5}`},
		{"bad level", `{"log_level": "loud"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON)
			assert.ErrorIs(t, err, ErrSchema)
		})
	}
}

func TestParse_TOMLSchemaSeesIntegers(t *testing.T) {
	_, err := Parse([]byte("max_samples = 0\n"), FormatTOML)
	assert.ErrorIs(t, err, ErrSchema)

	cfg, err := Parse([]byte("max_samples = 3\nid_seed = 77\n"), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxSamples)
	assert.Equal(t, uint64(77), cfg.IDSeed)
}

func TestParse_InvalidSyntax(t *testing.T) {
	_, err := Parse([]byte("{"), FormatJSON)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSchema)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("GROVE_POINTER_EXTENT", "25")
	t.Setenv("GROVE_DEBUG", "true")

	cfg, err := Parse([]byte(`{"pointer_extent": 5}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.PointerExtent)
	assert.True(t, cfg.Debug)
}

func TestParse_EnvProducesInvalidConfig(t *testing.T) {
	t.Setenv("GROVE_MAX_SAMPLES", "0")
	_, err := Parse([]byte(`{}`), FormatJSON)
	assert.ErrorIs(t, err, grove.ErrInvalidConfig)
}

func TestParse_EnvBadValue(t *testing.T) {
	t.Setenv("GROVE_MAX_SAMPLES", "lots")
	_, err := Parse([]byte(`{}`), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GROVE_LOCK_FOCUS_ON_SELECT", "false")
	t.Setenv("GROVE_ID_SEED", "12")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.LockFocusOnSelect)
	assert.Equal(t, uint64(12), cfg.IDSeed)
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("a/b/C.YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatOf("noext")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
