package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-lambdas/internal/domain"
	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
	"github.com/jhoicas/inventario-lambdas/internal/domain/repository"
	"github.com/jhoicas/inventario-lambdas/pkg/logger"
)

const tracerName = "github.com/jhoicas/inventario-lambdas/internal/application/inventory"

// RecordUseCase consultas y borrados sobre el almacén de registros de inventario.
// No guarda estado entre invocaciones: solo las dependencias inyectadas.
type RecordUseCase struct {
	repo   repository.RecordRepository
	log    *logger.Logger
	tracer trace.Tracer
}

// Option ajusta el caso de uso al construirlo.
type Option func(*RecordUseCase)

// WithTracerProvider usa tp en lugar del proveedor global de otel.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(uc *RecordUseCase) {
		uc.tracer = tp.Tracer(tracerName)
	}
}

// NewRecordUseCase construye el caso de uso.
func NewRecordUseCase(repo repository.RecordRepository, log *logger.Logger, opts ...Option) *RecordUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &RecordUseCase{
		repo:   repo,
		log:    log,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GetItem devuelve todos los registros con item_id = itemID.
// Devuelve domain.ErrNotFound si no hay ninguno.
func (uc *RecordUseCase) GetItem(ctx context.Context, itemID string) (_ []entity.Record, err error) {
	ctx, span := uc.tracer.Start(ctx, "RecordUseCase.GetItem",
		trace.WithAttributes(attribute.String(entity.AttrItemID, itemID)))
	defer func() { endSpan(span, err) }()

	records, err := uc.repo.QueryByPartitionKey(ctx, entity.AttrItemID, itemID)
	if err != nil {
		return nil, fmt.Errorf("query item %s: %w", itemID, err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	span.SetAttributes(attribute.Int("records", len(records)))
	uc.log.Debug().Str(entity.AttrItemID, itemID).Int("records", len(records)).Msg("registros del ítem")
	return records, nil
}

// DeleteItem borra, uno a uno y en el orden de la consulta, todos los registros con item_id = itemID.
// No es atómico: ante un fallo a mitad devuelve el conteo de borrados efectivos junto con el error.
func (uc *RecordUseCase) DeleteItem(ctx context.Context, itemID string) (deleted int, err error) {
	ctx, span := uc.tracer.Start(ctx, "RecordUseCase.DeleteItem",
		trace.WithAttributes(attribute.String(entity.AttrItemID, itemID)))
	defer func() {
		span.SetAttributes(attribute.Int("deleted_records", deleted))
		endSpan(span, err)
	}()

	records, err := uc.repo.QueryByPartitionKey(ctx, entity.AttrItemID, itemID)
	if err != nil {
		return 0, fmt.Errorf("query item %s: %w", itemID, err)
	}
	if len(records) == 0 {
		return 0, domain.ErrNotFound
	}

	schema, err := uc.repo.KeySchema(ctx)
	if err != nil {
		return 0, fmt.Errorf("key schema: %w", err)
	}

	for _, record := range records {
		key, err := schema.KeyOf(record)
		if err != nil {
			return deleted, err
		}
		if err := uc.repo.DeleteByKey(ctx, key); err != nil {
			uc.log.Warn().
				Str(entity.AttrItemID, itemID).
				Int("deleted_records", deleted).
				Int("pending_records", len(records)-deleted).
				Err(err).
				Msg("borrado parcial de registros")
			return deleted, fmt.Errorf("delete item %s: %w", itemID, err)
		}
		deleted++
	}

	uc.log.Info().Str(entity.AttrItemID, itemID).Int("deleted_records", deleted).Msg("registros eliminados")
	return deleted, nil
}

// GetLocationItems recorre la tabla y devuelve los registros con location_id = locationID.
// Una lista vacía no es error.
func (uc *RecordUseCase) GetLocationItems(ctx context.Context, locationID int64) (_ []entity.Record, err error) {
	ctx, span := uc.tracer.Start(ctx, "RecordUseCase.GetLocationItems",
		trace.WithAttributes(attribute.Int64(entity.AttrLocationID, locationID)))
	defer func() { endSpan(span, err) }()

	records, err := uc.repo.Scan(ctx, entity.AttrLocationID, locationID)
	if err != nil {
		return nil, fmt.Errorf("scan location %d: %w", locationID, err)
	}
	span.SetAttributes(attribute.Int("records", len(records)))
	uc.log.Debug().Int64(entity.AttrLocationID, locationID).Int("records", len(records)).Msg("registros de la ubicación")
	return records, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
