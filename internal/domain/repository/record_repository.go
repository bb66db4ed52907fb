package repository

import (
	"context"

	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
)

// RecordRepository define el puerto hacia el almacén de registros de inventario.
// Las implementaciones traducen sus errores a los sentinels de domain (envueltos con %w).
type RecordRepository interface {
	// QueryByPartitionKey devuelve todos los registros cuyo partition key es igual a value.
	QueryByPartitionKey(ctx context.Context, attribute, value string) ([]entity.Record, error)
	// Scan recorre la tabla completa y devuelve los registros con attribute == value.
	Scan(ctx context.Context, attribute string, value any) ([]entity.Record, error)
	// DeleteByKey elimina el registro identificado por su clave primaria completa.
	DeleteByKey(ctx context.Context, key entity.Key) error
	// KeySchema devuelve los atributos de la clave primaria, en orden.
	KeySchema(ctx context.Context) (entity.KeySchema, error)
}
