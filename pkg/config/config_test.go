package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 50, cfg.Analysis.CloudLimit)
	require.Equal(t, 1, cfg.Analysis.Workers)
	require.Equal(t, DecodePolicyError, cfg.Analysis.DecodePolicy)
	require.Equal(t, "info", cfg.Logging.Level)
	require.True(t, cfg.Metrics.Enabled)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
analysis:
  cloudLimit: 10
  workers: 4
  stem: true
  stripMarkup: true
  decodePolicy: empty
logging:
  level: debug
  format: json
tracing:
  enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.Analysis.CloudLimit)
	require.Equal(t, 4, cfg.Analysis.Workers)
	require.True(t, cfg.Analysis.Stem)
	require.True(t, cfg.Analysis.StripMarkup)
	require.Equal(t, DecodePolicyEmpty, cfg.Analysis.DecodePolicy)
	require.Equal(t, "json", cfg.Logging.Format)
	require.True(t, cfg.Tracing.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RA_CLOUD_LIMIT", "0")
	t.Setenv("RA_WORKERS", "8")
	t.Setenv("RA_DECODE_POLICY", "EMPTY")
	t.Setenv("RA_STEM", "true")
	t.Setenv("RA_METRICS_ENABLED", "false")

	cfg, err := Load(writeConfig(t, "analysis:\n  cloudLimit: 25\n"))
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Analysis.CloudLimit)
	require.Equal(t, 8, cfg.Analysis.Workers)
	require.Equal(t, DecodePolicyEmpty, cfg.Analysis.DecodePolicy)
	require.True(t, cfg.Analysis.Stem)
	require.False(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown policy", "analysis:\n  decodePolicy: ignore\n"},
		{"negative limit", "analysis:\n  cloudLimit: -1\n"},
		{"negative workers", "analysis:\n  workers: -2\n"},
		{"bad yaml", "analysis: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
