package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jhoicas/inventario-lambdas/internal/application/inventory"
	"github.com/jhoicas/inventario-lambdas/internal/infrastructure/store"
	"github.com/jhoicas/inventario-lambdas/internal/interfaces/handler"
	lambdaadapter "github.com/jhoicas/inventario-lambdas/internal/interfaces/lambda"
	"github.com/jhoicas/inventario-lambdas/pkg/config"
	"github.com/jhoicas/inventario-lambdas/pkg/logger"
	"github.com/jhoicas/inventario-lambdas/pkg/telemetry"
)

// Un mismo binario sirve las tres funciones; LAMBDA_HANDLER elige cuál.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		Name:  cfg.Lambda.Handler,
	})

	// El cliente y el key schema se resuelven una vez por contenedor (cold start).
	ctx := context.Background()
	tracing, err := telemetry.SetupTracing(ctx, cfg.Telemetry, cfg.Lambda.Handler, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	repo, closeStore, err := store.New(ctx, *cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("inicializar almacén de registros")
	}
	defer closeStore()

	uc := inventory.NewRecordUseCase(repo, log)
	handlers := handler.NewHandlers(uc, log, handler.Options{ExposeErrorDetail: cfg.App.ExposeErrorDetail})

	fn, ok := handlers.ByName(cfg.Lambda.Handler)
	if !ok {
		log.Fatal().Str("handler", cfg.Lambda.Handler).Msg("LAMBDA_HANDLER desconocido")
	}

	log.Info().
		Str("handler", cfg.Lambda.Handler).
		Str("driver", cfg.Store.Driver).
		Str("table", cfg.Store.Table).
		Msg("iniciando función")

	adapted := lambdaadapter.Adapt(fn)
	invoke := func(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
		resp, err := adapted(ctx, payload)
		// El entorno se congela al responder: los spans se exportan antes.
		if ferr := tracing.Flush(ctx); ferr != nil {
			log.Warn().Err(ferr).Msg("exportar trazas")
		}
		return resp, err
	}

	lambda.StartWithOptions(invoke, lambda.WithEnableSIGTERM(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("apagado de trazas")
		}
		closeStore()
	}))
}
