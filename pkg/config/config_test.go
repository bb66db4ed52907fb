package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-lambdas/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreDynamoDB, cfg.Store.Driver)
	assert.Equal(t, "Inventory", cfg.Store.Table)
	assert.Empty(t, cfg.Store.KeyAttributes)
	assert.True(t, cfg.App.ExposeErrorDetail)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("STORE_TABLE", "InventoryTest")
	t.Setenv("STORE_KEY_ATTRIBUTES", "item_id, item_location_id ,")
	t.Setenv("EXPOSE_ERROR_DETAIL", "false")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LAMBDA_HANDLER", "get_item")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
	assert.Equal(t, "InventoryTest", cfg.Store.Table)
	assert.Equal(t, []string{"item_id", "item_location_id"}, cfg.Store.KeyAttributes)
	assert.False(t, cfg.App.ExposeErrorDetail)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "get_item", cfg.Lambda.Handler)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x/y"
	assert.Equal(t, "postgres://x/y", c.ConnectionString())
}

func TestLoad_ReglasDeValidacion(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{name: "handler desconocido", key: "LAMBDA_HANDLER", value: "list_items", want: "Lambda.Handler=list_items"},
		{name: "puerto fuera de rango", key: "HTTP_PORT", value: "70000", want: "HTTP.Port=70000"},
		{name: "nivel de log", key: "LOG_LEVEL", value: "verbose", want: "App.LogLevel=verbose"},
		{name: "endpoint sin puerto", key: "OTEL_EXPORTER_OTLP_ENDPOINT", value: "collector", want: "Telemetry.Endpoint=collector"},
		{name: "claves repetidas", key: "STORE_KEY_ATTRIBUTES", value: "item_id,item_id", want: "Store.KeyAttributes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_Telemetria(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "Authorization=Basic abc, x-team = inv ,malformado")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "collector:4318", cfg.Telemetry.Endpoint)
	assert.Equal(t, "/v1/traces", cfg.Telemetry.URLPath)
	assert.True(t, cfg.Telemetry.Insecure)
	assert.Equal(t, map[string]string{"Authorization": "Basic abc", "x-team": "inv"}, cfg.Telemetry.Headers)
}
