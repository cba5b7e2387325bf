package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "retail-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "http://localhost:8080", cfg.App.BaseURL)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 20*time.Second, cfg.Import.FetchTimeout)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	t.Run("defaults pass in development", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := base()
		cfg.Database.MaxIdleConns = 100
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires a strong jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"

		assert.Error(t, cfg.validate())

		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.validate())

		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, cfg.validate())
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		assert.Error(t, cfg.validate())
	})

	t.Run("production rejects wildcard cors", func(t *testing.T) {
		cfg := base()
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		assert.Error(t, cfg.validate())
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "retail",
		Password: "p@ss/word",
		DBName:   "retail",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	require.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word") // password must be escaped
}
