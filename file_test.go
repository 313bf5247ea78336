package omniconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ── format detection ──────────────────────────────────────────────────────────

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("config.json"))
	assert.Equal(t, FormatINI, DetectFormat("config.ini"))
	assert.Equal(t, FormatTOML, DetectFormat("config.toml"))
	assert.Equal(t, FormatYAML, DetectFormat("config.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("config.yml"))
	// Unknown extensions default to JSON.
	assert.Equal(t, FormatJSON, DetectFormat("config.conf"))
}

// ── JSON ──────────────────────────────────────────────────────────────────────

// TestFileSource_JSON verifies that top-level keys become configuration keys
// and nested structures are preserved as nested values.
func TestFileSource_JSON(t *testing.T) {
	path := writeTempConfig(t, "config.json",
		`{"host": "localhost", "port": 8080, "db": {"user": "app"}}`)

	values, err := NewFileSource(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "localhost", values["HOST"])
	assert.Equal(t, float64(8080), values["PORT"])
	assert.Equal(t, map[string]any{"user": "app"}, values["DB"])
}

// TestFileSource_MissingFile verifies that a nonexistent path is a load
// failure, never silently skipped.
func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "absent.json")).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestFileSource_MalformedJSON verifies that unparsable content fails.
func TestFileSource_MalformedJSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{"broken":`)

	_, err := NewFileSource(path).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse JSON")
}

// ── INI ───────────────────────────────────────────────────────────────────────

// TestFileSource_INIFlattensSections verifies the SECTION_KEY flattening and
// that keys before any section header keep their bare name.
func TestFileSource_INIFlattensSections(t *testing.T) {
	path := writeTempConfig(t, "config.ini", `
debug = true

[database]
host = localhost
port = 5432

[cache]
ttl = 60
`)

	values, err := NewFileSource(path).Load()

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"DEBUG":         "true",
		"DATABASE_HOST": "localhost",
		"DATABASE_PORT": "5432",
		"CACHE_TTL":     "60",
	}, values)
}

// ── TOML ──────────────────────────────────────────────────────────────────────

func TestFileSource_TOML(t *testing.T) {
	path := writeTempConfig(t, "config.toml", `
title = "demo"

[server]
port = 9090
`)

	values, err := NewFileSource(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "demo", values["TITLE"])
	assert.Equal(t, map[string]any{"port": int64(9090)}, values["SERVER"])
}

// ── YAML ──────────────────────────────────────────────────────────────────────

func TestFileSource_YAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
host: localhost
limits:
  rps: 25
`)

	values, err := NewFileSource(path).Load()

	require.NoError(t, err)
	assert.Equal(t, "localhost", values["HOST"])
	assert.Equal(t, map[string]any{"rps": 25}, values["LIMITS"])
}

// TestFileSource_UnsupportedFormat verifies the explicit format check.
func TestFileSource_UnsupportedFormat(t *testing.T) {
	path := writeTempConfig(t, "config.xml", `<config/>`)

	_, err := (&FileSource{Path: path, Format: "xml"}).Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "xml"`)
}
