package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_PATH", "PORT", "BACKEND_BASE_URL", "BACKEND_SOCKET_URL", "STORAGE_DRIVER",
		"STORAGE_PATH", "STORAGE_VALKEY_ADDR", "STORAGE_PREFIX", "LOG_LEVEL",
		"ASSESSMENT_THRESHOLD_STRESS", "ASSESSMENT_THRESHOLD_SLEEP",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	// 避免读取仓库里的 configs/config.yaml
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "file", cfg.Storage.Driver)
	require.Equal(t, 2, cfg.Assessment.Thresholds.StressManagement)
	require.Equal(t, 0, cfg.Assessment.Thresholds.LifeBalance)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
storage:
  driver: memory
assessment:
  thresholds:
    sleep: 3
`), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "7070")
	t.Setenv("ASSESSMENT_THRESHOLD_STRESS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Server.Addr)
	require.Equal(t, "memory", cfg.Storage.Driver)
	require.Equal(t, 3, cfg.Assessment.Thresholds.Sleep)
	require.Equal(t, 4, cfg.Assessment.Thresholds.StressManagement)
	require.Equal(t, 1, cfg.Assessment.Thresholds.Mindfulness)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "80 80")
	_, err := Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("ASSESSMENT_THRESHOLD_SLEEP", "high")
	_, err = Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "valkey")
	_, err = Load()
	require.ErrorContains(t, err, "valkey address")
}

func TestParseAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", ":9090": ":9090", "127.0.0.1:1234": "127.0.0.1:1234"}
	for in, want := range cases {
		got, err := parseAddr(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}
