package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "fortimon", cfg.MetricsNamespace)
	assert.Equal(t, 8, cfg.WorkerConcurrency)
	assert.True(t, cfg.EvaluationDefaults().CriticalOnBranchChange)
	assert.Empty(t, cfg.EncryptionKey)
}

func TestLoadConfigLayers(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fortimon.yaml"), []byte(
		"LOG_LEVEL: debug\nWORKER_CONCURRENCY: 2\nCRITICAL_ON_BRANCH_CHANGE: false\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"WORKER_CONCURRENCY=4\n"), 0o600))
	t.Setenv("SERVER_ADDRESS", ":9090")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.WorkerConcurrency)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.False(t, cfg.EvaluationDefaults().CriticalOnBranchChange)
}
