package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-lambdas/internal/application/dto"
	"github.com/jhoicas/inventario-lambdas/internal/application/inventory"
	"github.com/jhoicas/inventario-lambdas/internal/domain"
	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-lambdas/internal/domain/inventory"
	"github.com/jhoicas/inventario-lambdas/pkg/logger"
)

// Nombres de handler (LAMBDA_HANDLER).
const (
	NameDeleteItem       = "delete_item"
	NameGetItem          = "get_item"
	NameGetLocationItems = "get_location_items"
)

// Func firma común de los handlers: petición → respuesta, sin errores fuera del borde.
type Func func(ctx context.Context, req dto.HandlerRequest) Response

// Options ajustes de presentación de errores.
type Options struct {
	// ExposeErrorDetail incluye el texto del error subyacente en el campo "error" de los 500.
	ExposeErrorDetail bool
}

// Handlers agrupa los tres handlers sobre un mismo caso de uso.
type Handlers struct {
	uc   *inventory.RecordUseCase
	log  *logger.Logger
	opts Options
}

// NewHandlers construye los handlers.
func NewHandlers(uc *inventory.RecordUseCase, log *logger.Logger, opts Options) *Handlers {
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{
		uc:   uc,
		log:  log,
		opts: opts,
	}
}

// ByName devuelve el handler registrado con ese nombre.
func (h *Handlers) ByName(name string) (Func, bool) {
	switch name {
	case NameDeleteItem:
		return h.DeleteItem, true
	case NameGetItem:
		return h.GetItem, true
	case NameGetLocationItems:
		return h.GetLocationItems, true
	}
	return nil, false
}

// DeleteItem DELETE /item/{id}: borra todos los registros con ese item_id.
func (h *Handlers) DeleteItem(ctx context.Context, req dto.HandlerRequest) (resp Response) {
	log := h.requestLogger(req, NameDeleteItem)
	defer h.recoverInto(&resp, log, "Error deleting item")

	itemID, ok := ExtractIdentifier(req, DeleteItemSources)
	if !ok {
		return messageResponse(http.StatusBadRequest, "Missing item id")
	}

	deleted, err := h.uc.DeleteItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return messageResponse(http.StatusNotFound, "Item not found")
		}
		log.Error().Err(err).Str(entity.AttrItemID, itemID).Int("deleted_records", deleted).Msg("error eliminando ítem")
		return h.internalError("Error deleting item", err)
	}

	return jsonResponse(http.StatusOK, dto.DeleteItemResponse{
		Message:        "Item deleted successfully",
		ItemID:         itemID,
		DeletedRecords: deleted,
	})
}

// GetItem GET /item/{id}: devuelve el arreglo de registros con ese item_id.
func (h *Handlers) GetItem(ctx context.Context, req dto.HandlerRequest) (resp Response) {
	log := h.requestLogger(req, NameGetItem)
	defer h.recoverInto(&resp, log, "Error retrieving item")

	itemID, ok := ExtractIdentifier(req, GetItemSources)
	if !ok {
		return messageResponse(http.StatusBadRequest, "Missing 'id' path parameter")
	}

	records, err := h.uc.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return messageResponse(http.StatusNotFound, "Item not found")
		}
		log.Error().Err(err).Str(entity.AttrItemID, itemID).Msg("error consultando ítem")
		return h.internalError("Error retrieving item", err)
	}

	return jsonResponse(http.StatusOK, domaininv.NormalizeRecords(records))
}

// GetLocationItems GET /location/{id}: devuelve los registros de esa ubicación (posiblemente []).
// Un id no numérico responde 500, no 400: el parseo ocurre después del chequeo de presencia.
func (h *Handlers) GetLocationItems(ctx context.Context, req dto.HandlerRequest) (resp Response) {
	log := h.requestLogger(req, NameGetLocationItems)
	defer h.recoverInto(&resp, log, "Error retrieving items for location")

	raw, ok := ExtractIdentifier(req, LocationItemsSources)
	if !ok {
		return messageResponse(http.StatusBadRequest, "Missing location id")
	}

	locationID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		err = fmt.Errorf("location_id %q: %w: %w", raw, domain.ErrMalformedInput, err)
		log.Error().Err(err).Msg("location_id no numérico")
		return h.internalError("Error retrieving items for location", err)
	}

	records, err := h.uc.GetLocationItems(ctx, locationID)
	if err != nil {
		log.Error().Err(err).Int64(entity.AttrLocationID, locationID).Msg("error consultando ubicación")
		return h.internalError("Error retrieving items for location", err)
	}

	return jsonResponse(http.StatusOK, domaininv.NormalizeRecords(records))
}

func (h *Handlers) internalError(message string, err error) Response {
	body := dto.MessageResponse{Message: message}
	if h.opts.ExposeErrorDetail {
		body.Error = err.Error()
	}
	return jsonResponse(http.StatusInternalServerError, body)
}

// recoverInto convierte un panic en una respuesta 500.
func (h *Handlers) recoverInto(resp *Response, log *logger.Logger, message string) {
	if r := recover(); r != nil {
		err := fmt.Errorf("panic: %v", r)
		log.Error().Err(err).Msg("panic en handler")
		*resp = h.internalError(message, err)
	}
}

func (h *Handlers) requestLogger(req dto.HandlerRequest, name string) *logger.Logger {
	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return h.log.WithRequestID(requestID).WithStr("handler", name)
}
