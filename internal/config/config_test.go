package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APP_PORT", "DB_DRIVER", "DATABASE_URL", "SQLITE_PATH", "LOG_LEVEL", "LOG_FORMAT", "SEED_DATA"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("port: \"9090\"\ndb_driver: sqlite\nsqlite_path: /tmp/emp.db\nseed_data: false\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("APP_PORT", "127.0.0.1:7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7070", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/emp.db", cfg.SQLitePath)
	assert.False(t, cfg.SeedData)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		desc string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"bad seed flag", map[string]string{"SEED_DATA": "maybe"}},
	}

	for i, tc := range tests {
		clearEnv(t)
		for key, value := range tc.env {
			t.Setenv(key, value)
		}

		_, err := Load("")
		assert.Error(t, err, "TEST[%d], failed.\n%s", i, tc.desc)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
