package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "outputs", cfg.OutputDir)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
	assert.Equal(t,
		"https://ads.atmosphere.copernicus.eu/_next/data/2-bipz9DZL-VVNkdRqXty/en/datasets.json",
		cfg.Endpoints.Resolve(cfg.Endpoints.Atmosphere))
	assert.Equal(t,
		"https://ewds.climate.copernicus.eu/_next/data/2-bipz9DZL-VVNkdRqXty/en/datasets.json",
		cfg.Endpoints.Resolve(cfg.Endpoints.EmergencyProducts))
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "copcat.json5"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copcat.json5")
	writeFile(t, path, `{
		// portals were redeployed
		endpoints: {
			next_build_id: "abc123",
		},
		timeout_seconds: 30,
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, "abc123", cfg.Endpoints.NextBuildID)
	// Untouched fields keep their defaults.
	assert.Equal(t, "outputs", cfg.OutputDir)
	assert.Equal(t, Defaults().Endpoints.Marine, cfg.Endpoints.Marine)
	assert.Equal(t,
		"https://ads.atmosphere.copernicus.eu/_next/data/abc123/en/datasets.json",
		cfg.Endpoints.Resolve(cfg.Endpoints.Atmosphere))
}

func TestLoad_LocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "copcat.json5"), `{output_dir: "shared", timeout_seconds: 45}`)
	writeFile(t, filepath.Join(dir, "copcat.local.json5"), `{output_dir: "mine"}`)

	cfg, err := Load(filepath.Join(dir, "copcat.json5"))
	require.NoError(t, err)

	assert.Equal(t, "mine", cfg.OutputDir)
	assert.Equal(t, 45, cfg.TimeoutSeconds)
}

func TestLoad_LocalOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "copcat.local.json5"), `{endpoints: {activation_time: "2020-01,2020-12"}}`)

	cfg, err := Load(filepath.Join(dir, "copcat.json5"))
	require.NoError(t, err)
	assert.Equal(t, "2020-01,2020-12", cfg.Endpoints.ActivationTime)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `{output_dir: `},
		{"bad url", `{endpoints: {climate: "ftp://example.com/catalogue"}}`},
		{"negative timeout", `{timeout_seconds: -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "copcat.json5")
			writeFile(t, path, tt.content)

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.OutputDir = ""
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.TimeoutSeconds = 0
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Endpoints.NextBuildID = ""
	assert.Error(t, cfg.Validate())
}
