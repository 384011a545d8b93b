package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"jwt_secret": "secret",
		"database": {"host": "localhost", "port": 5432, "user": "app", "password": "app", "db_name": "chronotes"},
		"mail": {"host": "smtp.example.com", "port": 587, "from": "noreply@example.com"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1440, cfg.JWTTTLMinutes)
	require.Equal(t, "memory", cfg.CodeStore.Type)
	require.Equal(t, 4096, cfg.CodeStore.Size)
	require.Equal(t, "info", cfg.LogConfig.Level)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing port", content: `{"jwt_secret":"s","database":{"host":"h"},"mail":{"host":"m","port":587,"from":"f"}}`},
		{name: "missing secret", content: `{"port":8080,"database":{"host":"h"},"mail":{"host":"m","port":587,"from":"f"}}`},
		{name: "missing database", content: `{"port":8080,"jwt_secret":"s","mail":{"host":"m","port":587,"from":"f"}}`},
		{name: "missing mail", content: `{"port":8080,"jwt_secret":"s","database":{"host":"h"}}`},
		{name: "redis without addr", content: `{"port":8080,"jwt_secret":"s","database":{"host":"h"},"mail":{"host":"m","port":587,"from":"f"},"code_store":{"type":"redis"}}`},
		{name: "bad store type", content: `{"port":8080,"jwt_secret":"s","database":{"host":"h"},"mail":{"host":"m","port":587,"from":"f"},"code_store":{"type":"etcd"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}
