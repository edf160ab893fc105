package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "parkride"
user = "postgres"

[pricing]
peak_multiplier = 1.75
timezone = "Asia/Kolkata"

[noshow]
grace_minutes = 15
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "parkride", cfg.Database.DBName)
	assert.Equal(t, 1.75, cfg.Pricing.PeakMultiplier)
	assert.Equal(t, 2.0, cfg.Pricing.SurgeMultiplier)
	assert.Equal(t, 1000.0, cfg.Pooling.RadiusMeters)
	assert.Equal(t, 15*time.Minute, cfg.NoShow.Grace())
	assert.Equal(t, "@every 5m", cfg.NoShow.Schedule)

	loc, err := cfg.Pricing.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "parkride"
password = "from-file"
`)
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing dbname", content: `[server]
http_port = 8080`},
		{name: "bad timezone", content: `[database]
dbname = "x"
[pricing]
timezone = "Mars/Olympus"`},
		{name: "zero radius", content: `[database]
dbname = "x"
[pooling]
radius_meters = -1.0`},
		{name: "broken toml", content: `[database`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.DSN())
}
