package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
database:
  host: localhost
  port: "5432"
  user: postgres
  password: postgres
  name: ideahub
  sslmode: disable

server:
  host: 0.0.0.0
  port: "8080"

logger:
  level: info
  format: console

auth:
  bcrypt_cost: 10
`

func writeTestConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testConfig), 0o644))
	t.Chdir(dir)
}

func TestLoadFromFile(t *testing.T) {
	writeTestConfig(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "ideahub", cfg.Database.Name)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

// Переменные окружения имеют приоритет над значениями из файла
func TestLoadEnvOverrides(t *testing.T) {
	writeTestConfig(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "db", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=db sslmode=disable", c.GetDSN())
}

func TestGetAddress(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: "8080"}
	assert.Equal(t, "0.0.0.0:8080", s.GetAddress())
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load()
	require.Error(t, err)
}
