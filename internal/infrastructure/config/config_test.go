package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"STORE_APP_NAME":          os.Getenv("STORE_APP_NAME"),
		"STORE_APP_ENV":           os.Getenv("STORE_APP_ENV"),
		"STORE_APP_PORT":          os.Getenv("STORE_APP_PORT"),
		"STORE_DATABASE_HOST":     os.Getenv("STORE_DATABASE_HOST"),
		"STORE_DATABASE_PORT":     os.Getenv("STORE_DATABASE_PORT"),
		"STORE_DATABASE_USER":     os.Getenv("STORE_DATABASE_USER"),
		"STORE_DATABASE_PASSWORD": os.Getenv("STORE_DATABASE_PASSWORD"),
		"STORE_DATABASE_DBNAME":   os.Getenv("STORE_DATABASE_DBNAME"),
		"STORE_DATABASE_SSLMODE":  os.Getenv("STORE_DATABASE_SSLMODE"),
		"STORE_JWT_SECRET":        os.Getenv("STORE_JWT_SECRET"),
		"STORE_SESSION_SECRET":    os.Getenv("STORE_SESSION_SECRET"),
		"STORE_SESSION_SECURE":    os.Getenv("STORE_SESSION_SECURE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "storefront-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "storefront", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "storefront_session", cfg.Session.Name)
		assert.Equal(t, "lax", cfg.Session.SameSite)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	})

	t.Run("loads values from environment variables with STORE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("STORE_APP_NAME", "test-app")
		os.Setenv("STORE_APP_PORT", "9000")
		os.Setenv("STORE_DATABASE_HOST", "testdb.local")
		os.Setenv("STORE_DATABASE_PORT", "5433")
		os.Setenv("STORE_DATABASE_PASSWORD", "testpass")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testpass", cfg.Database.Password)
	})

	t.Run("production requires secrets and TLS", func(t *testing.T) {
		clearEnv()
		os.Setenv("STORE_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production passes with full secure configuration", func(t *testing.T) {
		clearEnv()
		os.Setenv("STORE_APP_ENV", "production")
		os.Setenv("STORE_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("STORE_SESSION_SECRET", "another-long-session-cookie-secret")
		os.Setenv("STORE_SESSION_SECURE", "true")
		os.Setenv("STORE_DATABASE_PASSWORD", "prodpass")
		os.Setenv("STORE_DATABASE_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "store",
		Password: "p@ss/word",
		DBName:   "storefront",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.local:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
