package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.Orders.AllowCancelShipped)
	assert.Equal(t, 2*time.Second, cfg.Kafka.SendTimeout)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ORDERS_ALLOW_CANCEL_SHIPPED", "true")
	t.Setenv("NOTIFY_TIMEOUT_MS", "500")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Orders.AllowCancelShipped)
	assert.Equal(t, 500*time.Millisecond, cfg.Kafka.SendTimeout)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "wms", Password: "p@ss/w", DBName: "wms", SSLMode: "disable"}
	assert.Equal(t, "postgres://wms:p%40ss%2Fw@db:5432/wms?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
