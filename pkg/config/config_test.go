package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pedidos/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("DB_PORT", "6543")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.App.Storage)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 65, cfg.Matching.Threshold)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10, cfg.DB.Pool.MaxConns)
	assert.Equal(t, time.Hour, cfg.DB.Pool.MaxConnLifetime)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_PoolDesdeEntorno(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_MIN_CONNS", "1")
	t.Setenv("DB_MAX_CONN_LIFETIME", "15m")
	t.Setenv("DB_HEALTH_CHECK_PERIOD", "30s")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.PoolConfig{
		MaxConns:          4,
		MinConns:          1,
		MaxConnLifetime:   15 * time.Minute,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: 30 * time.Second,
		ConnectTimeout:    10 * time.Second,
	}, cfg.DB.Pool)
}

func TestLoad_PoolInvalido(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Setenv("STORAGE", "sqlite")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_UmbralFueraDeRango(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("MATCH_THRESHOLD", "101")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "pedidos", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/pedidos?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
