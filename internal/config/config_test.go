package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("ATCDEL_CONFIG_PATH", path)
}

func TestLoad_File(t *testing.T) {
	writeConfig(t, `
aeroapi_token: aero
avwx_token: avwx
db_path: /tmp/departures.db
rules_path: katl.yaml
runway_config: WEST
http:
  timeout: 5s
  max_retries: 4
log:
  level: WARN
  format: json
`)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "aero", cfg.AeroAPIToken)
	assert.Equal(t, "avwx", cfg.AVWXToken)
	assert.Equal(t, "/tmp/departures.db", cfg.DBPath)
	assert.Equal(t, "katl.yaml", cfg.RulesPath)
	assert.Equal(t, "WEST", cfg.RunwayConfig)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 4, cfg.HTTP.MaxRetries)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Defaults(t *testing.T) {
	writeConfig(t, "{}\n")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "atcdel.db", cfg.DBPath)
	assert.Equal(t, "rules.yaml", cfg.RulesPath)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 2, cfg.HTTP.MaxRetries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.AeroAPIToken)
}

func TestLoad_EnvAndFlagsOverride(t *testing.T) {
	writeConfig(t, "aeroapi_token: file\nrunway_config: WEST\n")
	t.Setenv("ATCDEL_AEROAPI_TOKEN", "env")
	t.Setenv("ATCDEL_LOG_FORMAT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("runway-config", "", "")
	flags.Bool("verbose", false, "")
	require.NoError(t, flags.Parse([]string{"--runway-config", "EAST", "--verbose"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.AeroAPIToken)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "EAST", cfg.RunwayConfig)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"log level", "log:\n  level: loud\n"},
		{"log format", "log:\n  format: xml\n"},
		{"timeout", "http:\n  timeout: 0s\n"},
		{"retries", "http:\n  max_retries: 99\n"},
		{"metrics addr", "metrics_addr: not an address\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.content)
			_, err := Load(nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	writeConfig(t, "aeroapi_token: [unterminated\n")
	_, err := Load(nil)
	assert.Error(t, err)
}
