package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventario-lambdas/internal/application/dto"
	"github.com/jhoicas/inventario-lambdas/internal/interfaces/handler"
)

// InventoryHandler expone los handlers de registros sobre Fiber.
type InventoryHandler struct {
	h *handler.Handlers
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(h *handler.Handlers) *InventoryHandler {
	return &InventoryHandler{h: h}
}

// DeleteItem godoc
// @Summary      Eliminar todos los registros de un ítem
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "item_id"
// @Success      200  {object}  dto.DeleteItemResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /item/{id} [delete]
func (ih *InventoryHandler) DeleteItem(c *fiber.Ctx) error {
	return serve(c, ih.h.DeleteItem, true)
}

// GetItem godoc
// @Summary      Registros de un ítem (uno por ubicación)
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "item_id"
// @Success      200  {array}   object
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /item/{id} [get]
func (ih *InventoryHandler) GetItem(c *fiber.Ctx) error {
	return serve(c, ih.h.GetItem, false)
}

// GetLocationItems godoc
// @Summary      Registros de una ubicación
// @Tags         inventory
// @Produce      json
// @Param        id           path   int  true   "location_id"
// @Param        location_id  query  int  false  "location_id (si no va en la ruta)"
// @Success      200  {array}   object
// @Failure      400  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.MessageResponse
// @Router       /location/{id} [get]
func (ih *InventoryHandler) GetLocationItems(c *fiber.Ctx) error {
	return serve(c, ih.h.GetLocationItems, false)
}

// serve arma la petición del handler desde el contexto Fiber y escribe su respuesta tal cual.
// Solo las rutas con readBody leen el cuerpo.
func serve(c *fiber.Ctx, fn handler.Func, readBody bool) error {
	req := dto.HandlerRequest{
		PathParameters:        c.AllParams(),
		QueryStringParameters: c.Queries(),
		RequestID:             c.Get(fiber.HeaderXRequestID),
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	// Cuerpo opcional {"item_id": "..."} (DELETE sin id en la ruta). Un cuerpo que no
	// se puede leer cuenta como ausente: el handler decide si falta el identificador.
	if readBody && len(c.Body()) > 0 && c.Is("json") {
		var payload struct {
			ItemID string `json:"item_id"`
		}
		if err := c.BodyParser(&payload); err == nil {
			req.ItemID = payload.ItemID
		}
	}

	resp := fn(c.UserContext(), req)
	for k, v := range resp.Headers {
		c.Set(k, v)
	}
	c.Set(fiber.HeaderXRequestID, req.RequestID)
	return c.Status(resp.StatusCode).SendString(resp.Body)
}
