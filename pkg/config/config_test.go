package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	// vacío cuenta como no definido
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("INVENTORY_TX_TIMEOUT_MS", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Inventory.TxTimeout)
	assert.Equal(t, 256, cfg.Notify.QueueSize)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("INVENTORY_TX_TIMEOUT_MS", "1500")
	t.Setenv("NOTIFY_REDIS_ADDR", "localhost:6379")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 1500*time.Millisecond, cfg.Inventory.TxTimeout)
	assert.Equal(t, 3*time.Second, cfg.Inventory.LockTimeout)
	assert.Equal(t, "localhost:6379", cfg.Notify.RedisAddr)
	assert.Equal(t, "bodega.stock-alerts", cfg.Notify.RedisChannel)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "bodega", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/bodega?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x/y"
	assert.Equal(t, "postgres://x/y", c.ConnectionString())
}
