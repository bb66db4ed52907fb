package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/inventario-lambdas/internal/application/inventory"
	"github.com/jhoicas/inventario-lambdas/internal/infrastructure/store"
	"github.com/jhoicas/inventario-lambdas/internal/interfaces/handler"
	httpRouter "github.com/jhoicas/inventario-lambdas/internal/interfaces/http"
	"github.com/jhoicas/inventario-lambdas/pkg/config"
	"github.com/jhoicas/inventario-lambdas/pkg/logger"
	"github.com/jhoicas/inventario-lambdas/pkg/telemetry"
)

//go:generate swag init -g main.go -d ./,../../internal/interfaces/http,../../internal/application/dto -o ../../docs --outputTypes json,yaml

// Servidor HTTP local con las mismas rutas que API Gateway.
//
//	@title			Inventory records API
//	@version		1.0
//	@description	Consulta y borrado de registros de inventario (ítem × ubicación).
//	@BasePath		/
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		Name:  cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	tracing, err := telemetry.SetupTracing(ctx, cfg.Telemetry, cfg.App.Name, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	repo, closeStore, err := store.New(ctx, *cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén de registros")
	}
	defer closeStore()

	uc := inventory.NewRecordUseCase(repo, log)
	handlers := handler.NewHandlers(uc, log, handler.Options{ExposeErrorDetail: cfg.App.ExposeErrorDetail})

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI en local: http://localhost:<port>/docs
	httpRouter.MountDocs(app, "./docs/swagger.json", "Inventory records API")

	httpRouter.Router(app, httpRouter.RouterDeps{
		Handlers: handlers,
		AppName:  cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
