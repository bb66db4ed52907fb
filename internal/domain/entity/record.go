package entity

import (
	"fmt"

	"github.com/jhoicas/inventario-lambdas/internal/domain"
)

// Atributos conocidos del registro de inventario.
const (
	AttrItemID         = "item_id"
	AttrLocationID     = "location_id"
	AttrItemLocationID = "item_location_id"
)

// Record es un registro de inventario tal como lo devuelve el almacén.
// Los números llegan como decimal.Decimal; el resto de atributos es opaco para el núcleo.
type Record map[string]any

// ItemID devuelve el identificador del ítem si está presente como string.
func (r Record) ItemID() string {
	s, _ := r[AttrItemID].(string)
	return s
}

// Key es la clave primaria completa de un registro (solo atributos del key schema).
type Key map[string]any

// KeySchema lista ordenada de atributos que forman la clave primaria (partition key primero).
type KeySchema []string

// PartitionKey devuelve el primer atributo del esquema.
func (s KeySchema) PartitionKey() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// KeyOf extrae del registro exactamente los atributos del esquema.
func (s KeySchema) KeyOf(r Record) (Key, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("key schema vacío: %w", domain.ErrMalformedInput)
	}
	key := make(Key, len(s))
	for _, attr := range s {
		v, ok := r[attr]
		if !ok || v == nil {
			return nil, fmt.Errorf("registro sin atributo de clave %q: %w", attr, domain.ErrMalformedInput)
		}
		key[attr] = v
	}
	return key, nil
}
