package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/jhoicas/inventario-lambdas/pkg/config"
	"github.com/jhoicas/inventario-lambdas/pkg/telemetry"
)

func TestSetupTracing_SinEndpointNoInstalaNada(t *testing.T) {
	tracing, err := telemetry.SetupTracing(context.Background(), config.TelemetryConfig{URLPath: "/v1/traces"}, "svc", "test")
	require.NoError(t, err)

	assert.False(t, tracing.Enabled())
	assert.NoError(t, tracing.Flush(context.Background()))
	assert.NoError(t, tracing.Shutdown(context.Background()))
}

func TestSetupTracing_ExportaAlCollector(t *testing.T) {
	var exports atomic.Int32
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v1/traces" {
			exports.Add(1)
		}
		w.Header().Set("Content-Type", "application/x-protobuf")
		w.WriteHeader(http.StatusOK)
	}))
	defer collector.Close()

	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracing, err := telemetry.SetupTracing(ctx, config.TelemetryConfig{
		Endpoint: collector.Listener.Addr().String(),
		URLPath:  "/v1/traces",
		Insecure: true,
	}, "svc", "test")
	require.NoError(t, err)
	require.True(t, tracing.Enabled())

	_, span := otel.Tracer("test").Start(ctx, "operacion")
	assert.True(t, span.IsRecording())
	span.End()

	require.NoError(t, tracing.Flush(ctx))
	assert.GreaterOrEqual(t, exports.Load(), int32(1))
	assert.NoError(t, tracing.Shutdown(ctx))
}
