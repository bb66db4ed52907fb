package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-lambdas/internal/domain"
	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
	"github.com/jhoicas/inventario-lambdas/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo almacén de registros en memoria. Conserva el orden de inserción,
// que es el orden en que devuelve consultas y scans.
type RecordRepo struct {
	mu      sync.RWMutex
	schema  entity.KeySchema
	records []entity.Record
}

// NewRecordRepository construye el almacén con el key schema dado (partition key primero).
func NewRecordRepository(schema entity.KeySchema) *RecordRepo {
	return &RecordRepo{schema: append(entity.KeySchema(nil), schema...)}
}

// Put inserta el registro o reemplaza el que tenga la misma clave primaria.
func (r *RecordRepo) Put(_ context.Context, record entity.Record) error {
	key, err := r.schema.KeyOf(record)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.records {
		if matchesKey(existing, key) {
			r.records[i] = copyRecord(record)
			return nil
		}
	}
	r.records = append(r.records, copyRecord(record))
	return nil
}

// Len cantidad de registros almacenados.
func (r *RecordRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// QueryByPartitionKey devuelve los registros cuyo partition key es igual a value.
func (r *RecordRepo) QueryByPartitionKey(_ context.Context, attribute, value string) ([]entity.Record, error) {
	if attribute != r.schema.PartitionKey() {
		return nil, fmt.Errorf("%q no es el partition key: %w", attribute, domain.ErrMalformedInput)
	}
	return r.filter(attribute, value), nil
}

// Scan devuelve los registros con attribute == value.
func (r *RecordRepo) Scan(_ context.Context, attribute string, value any) ([]entity.Record, error) {
	return r.filter(attribute, value), nil
}

// DeleteByKey elimina el registro con esa clave. Borrar una clave inexistente no es error.
func (r *RecordRepo) DeleteByKey(_ context.Context, key entity.Key) error {
	if len(key) != len(r.schema) {
		return fmt.Errorf("clave incompleta %v: %w", key, domain.ErrMalformedInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.records {
		if matchesKey(existing, key) {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

// KeySchema devuelve el esquema configurado.
func (r *RecordRepo) KeySchema(context.Context) (entity.KeySchema, error) {
	return append(entity.KeySchema(nil), r.schema...), nil
}

func (r *RecordRepo) filter(attribute string, value any) []entity.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Record
	for _, rec := range r.records {
		if v, ok := rec[attribute]; ok && equalValues(v, value) {
			out = append(out, copyRecord(rec))
		}
	}
	return out
}

func matchesKey(rec entity.Record, key entity.Key) bool {
	for attr, want := range key {
		got, ok := rec[attr]
		if !ok || !equalValues(got, want) {
			return false
		}
	}
	return true
}

// equalValues compara números por valor (un decimal 3 es igual al int 3) y el resto por igualdad.
func equalValues(a, b any) bool {
	da, aNum := toDecimal(a)
	db, bNum := toDecimal(b)
	if aNum || bNum {
		return aNum && bNum && da.Equal(db)
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Decimal{}, false
		}
		return *n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	}
	return decimal.Decimal{}, false
}

func copyRecord(r entity.Record) entity.Record {
	out := make(entity.Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
