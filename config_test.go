package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigParsesDurations(t *testing.T) {
	path := writeTempConfig(t, `
service:
  url: https://review.example.com/api
timeouts:
  statusQuery: 5s
  read: 15s
  analysis: 90s
pacing:
  interval: 250ms
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://review.example.com/api", cfg.Service.URL)
	assert.Equal(t, time.Second*5, cfg.Timeouts.StatusQuery.orElse(0))
	assert.Equal(t, time.Second*15, cfg.Timeouts.Read.orElse(0))
	assert.Equal(t, time.Second*90, cfg.Timeouts.Analysis.orElse(0))
	assert.Equal(t, time.Millisecond*250, cfg.Pacing.Interval.orElse(0))
}

func TestLoadConfigDefaultsApplyWhenUnset(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultStatusQueryTimeout, cfg.Timeouts.StatusQuery.orElse(defaultStatusQueryTimeout))
	assert.Equal(t, defaultPacingInterval, cfg.Pacing.Interval.orElse(defaultPacingInterval))
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := writeTempConfig(t, `
timeouts:
  read: soon
`)
	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
