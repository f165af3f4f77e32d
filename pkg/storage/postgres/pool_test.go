package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig(Options{
		Username:           "fitter",
		Password:           "secret",
		Host:               "db",
		Port:               5433,
		Database:           "fits",
		SslMode:            "disable",
		StatementTimeout:   90 * time.Second,
		MaxOpenConnections: 4,
		MaxIdleConnections: 10,
		ConnMaxLifetime:    time.Minute,
	})
	require.NoError(t, err)

	require.Equal(t, "db", cfg.ConnConfig.Host)
	require.EqualValues(t, 5433, cfg.ConnConfig.Port)
	require.Equal(t, "fits", cfg.ConnConfig.Database)
	require.Equal(t, DefaultApplicationName, cfg.ConnConfig.RuntimeParams["application_name"])
	require.Equal(t, "90000", cfg.ConnConfig.RuntimeParams["statement_timeout"])
	require.EqualValues(t, 4, cfg.MaxConns)
	require.EqualValues(t, 4, cfg.MinConns)
	require.Equal(t, time.Minute, cfg.MaxConnLifetime)
}

func TestPoolConfig_Defaults(t *testing.T) {
	cfg, err := poolConfig(Options{Host: "localhost", Port: 5432, ApplicationName: "fit-worker", SslMode: "disable"})
	require.NoError(t, err)

	require.Equal(t, "fit-worker", cfg.ConnConfig.RuntimeParams["application_name"])
	require.NotContains(t, cfg.ConnConfig.RuntimeParams, "statement_timeout")
}

func TestPoolConfig_Invalid(t *testing.T) {
	_, err := poolConfig(Options{Host: "localhost", Port: 5432, SslMode: "sometimes"})
	require.Error(t, err)
}
