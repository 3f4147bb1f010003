package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Server.URL, cfg.Server.URL)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "all", cfg.Search.Type)
	assert.True(t, cfg.Search.Thumbnails)
	assert.False(t, cfg.Search.ClearOnSubmit)
	assert.Equal(t, 4, cfg.Search.ThumbnailWorkers)
	assert.Equal(t, "https://www.youtube.com/watch?v=%s", cfg.Player.URLTemplate)
	assert.Equal(t, 50, cfg.UI.ListPercent)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
server:
  url: http://localhost:3000
  timeout: 5s
search:
  type: video
  region: DE
  clear_on_submit: true
player:
  command: mpv
  args: ["--fs", "--ytdl-format=best[height<=720]"]
cache:
  dir: ""
ui:
  list_percent: 60
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.Server.URL)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "video", cfg.Search.Type)
	assert.Equal(t, "DE", cfg.Search.Region)
	assert.True(t, cfg.Search.ClearOnSubmit)
	assert.True(t, cfg.Search.Thumbnails, "unset keys keep defaults")
	assert.Equal(t, "mpv", cfg.Player.Command)
	assert.Equal(t, []string{"--fs", "--ytdl-format=best[height<=720]"}, cfg.Player.Args)
	assert.Equal(t, "", cfg.Cache.Dir)
	assert.Equal(t, 60, cfg.UI.ListPercent)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "server:\n  url: http://localhost:3000\n")
	t.Setenv("VIDSEARCH_SERVER_URL", "https://inv.example")
	t.Setenv("VIDSEARCH_SEARCH_TYPE", "channel")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://inv.example", cfg.Server.URL)
	assert.Equal(t, "channel", cfg.Search.Type)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "server: [unclosed"},
		{"bad url", "server:\n  url: not-a-url\n"},
		{"bad type", "search:\n  type: movie\n"},
		{"bad workers", "search:\n  thumbnail_workers: 0\n"},
		{"bad split", "ui:\n  list_percent: 95\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestSaveConfigAs_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.URL = "https://inv.example"
	cfg.Server.Timeout = 10 * time.Second
	cfg.Search.Region = "FR"
	cfg.Player.Command = "celluloid"
	cfg.Cache.Dir = ""

	dir := filepath.Join(t.TempDir(), "nested")
	require.NoError(t, SaveConfigAs(cfg, filepath.Join(dir, "config.yaml")))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://inv.example", loaded.Server.URL)
	assert.Equal(t, 10*time.Second, loaded.Server.Timeout)
	assert.Equal(t, "FR", loaded.Search.Region)
	assert.Equal(t, "celluloid", loaded.Player.Command)
	assert.Equal(t, "", loaded.Cache.Dir)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "logs", "a.log"), ExpandHome("~/logs/a.log"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/var/log/a.log", ExpandHome("/var/log/a.log"))
	assert.Equal(t, "~user/a", ExpandHome("~user/a"))
	assert.Equal(t, "", ExpandHome(""))
}
