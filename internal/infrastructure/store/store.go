package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
	"github.com/jhoicas/inventario-lambdas/internal/domain/repository"
	"github.com/jhoicas/inventario-lambdas/internal/infrastructure/dynamo"
	"github.com/jhoicas/inventario-lambdas/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-lambdas/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-lambdas/pkg/config"
)

// DefaultKeySchema esquema usado por los drivers que no pueden leerlo de la tabla.
var DefaultKeySchema = entity.KeySchema{entity.AttrItemID, entity.AttrItemLocationID}

// New construye el almacén de registros según STORE_DRIVER. El closer libera
// las conexiones (no-op para DynamoDB y memoria).
func New(ctx context.Context, cfg config.Config) (repository.RecordRepository, func(), error) {
	schema := entity.KeySchema(cfg.Store.KeyAttributes)

	switch cfg.Store.Driver {
	case config.StoreDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.AWS)
		if err != nil {
			return nil, nil, err
		}
		repo, err := dynamo.NewRecordRepository(ctx, client, cfg.Store.Table, schema)
		if err != nil {
			return nil, nil, fmt.Errorf("dynamodb %s: %w", cfg.Store.Table, err)
		}
		return repo, func() {}, nil

	case config.StorePostgres:
		if len(schema) == 0 {
			schema = DefaultKeySchema
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		repo, err := postgres.NewRecordRepository(pool, cfg.Store.Table, schema)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repo, pool.Close, nil

	case config.StoreMemory:
		if len(schema) == 0 {
			schema = DefaultKeySchema
		}
		return memory.NewRecordRepository(schema), func() {}, nil
	}
	return nil, nil, fmt.Errorf("STORE_DRIVER no soportado: %q", cfg.Store.Driver)
}
