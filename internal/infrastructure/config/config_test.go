package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults apply without a config file", func(t *testing.T) {
		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "opticore", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, 500, cfg.Import.ChunkSize)
		assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("OPTICORE_DATABASE_HOST", "db.internal")
		t.Setenv("OPTICORE_IMPORT_CHUNK_SIZE", "200")
		t.Setenv("OPTICORE_LOG_LEVEL", "debug")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 200, cfg.Import.ChunkSize)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("production env defaults to json logs", func(t *testing.T) {
		t.Setenv("OPTICORE_APP_ENV", "production")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("rejects a row cap below the chunk size", func(t *testing.T) {
		t.Setenv("OPTICORE_IMPORT_CHUNK_SIZE", "1000")
		t.Setenv("OPTICORE_IMPORT_MAX_ROWS_PER_CALL", "100")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_rows_per_call")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	dsn := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", DBName: "opticore", SSLMode: "disable",
	}.DSN()

	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=opticore sslmode=disable", dsn)
}
