package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jhoicas/inventario-lambdas/internal/application/inventory"
	"github.com/jhoicas/inventario-lambdas/internal/domain"
	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
	"github.com/jhoicas/inventario-lambdas/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-lambdas/pkg/logger"
)

type flakyDeletes struct {
	*memory.RecordRepo
	failAt int
	calls  int
}

func (f *flakyDeletes) DeleteByKey(ctx context.Context, key entity.Key) error {
	f.calls++
	if f.calls == f.failAt {
		return domain.ErrStoreUnavailable
	}
	return f.RecordRepo.DeleteByKey(ctx, key)
}

func seeded(t *testing.T, n int) *memory.RecordRepo {
	t.Helper()
	repo := memory.NewRecordRepository(entity.KeySchema{"item_id", "item_location_id"})
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Put(context.Background(), entity.Record{
			"item_id":          "X",
			"item_location_id": decimal.NewFromInt(int64(i)),
			"location_id":      decimal.NewFromInt(int64(i % 2)),
		}))
	}
	return repo
}

func TestDeleteItem_CuentaBorrados(t *testing.T) {
	repo := seeded(t, 4)
	uc := inventory.NewRecordUseCase(repo, logger.Nop())

	n, err := uc.DeleteItem(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Zero(t, repo.Len())
}

func TestDeleteItem_ParcialDevuelveConteoReal(t *testing.T) {
	repo := &flakyDeletes{RecordRepo: seeded(t, 4), failAt: 3}
	uc := inventory.NewRecordUseCase(repo, logger.Nop())

	n, err := uc.DeleteItem(context.Background(), "X")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, repo.Len())
}

func TestDeleteItem_NoEncontrado(t *testing.T) {
	uc := inventory.NewRecordUseCase(seeded(t, 1), nil)

	n, err := uc.DeleteItem(context.Background(), "Y")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, n)
}

func TestGetItem(t *testing.T) {
	uc := inventory.NewRecordUseCase(seeded(t, 3), logger.Nop())

	recs, err := uc.GetItem(context.Background(), "X")
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	_, err = uc.GetItem(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetLocationItems_VacioNoEsError(t *testing.T) {
	uc := inventory.NewRecordUseCase(seeded(t, 3), logger.Nop())

	recs, err := uc.GetLocationItems(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, recs, 1)

	recs, err = uc.GetLocationItems(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSpans_RegistranOperacionYError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	repo := &flakyDeletes{RecordRepo: seeded(t, 3), failAt: 2}
	uc := inventory.NewRecordUseCase(repo, logger.Nop(), inventory.WithTracerProvider(tp))

	_, err := uc.GetItem(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.DeleteItem(context.Background(), "X")
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "RecordUseCase.GetItem", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)

	assert.Equal(t, "RecordUseCase.DeleteItem", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	var deleted int64 = -1
	for _, kv := range spans[1].Attributes() {
		if kv.Key == "deleted_records" {
			deleted = kv.Value.AsInt64()
		}
	}
	assert.Equal(t, int64(1), deleted)
}
