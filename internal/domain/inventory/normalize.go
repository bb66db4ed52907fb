package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
)

// Normalize convierte los decimal.Decimal del almacén en tipos numéricos serializables,
// recorriendo listas y mapas sin alterar su forma.
// Un decimal sin parte fraccionaria se emite como entero (int64, o *big.Int si no cabe);
// cualquier otro como float64. El resto de valores pasa sin cambios.
func Normalize(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = Normalize(e)
		}
		return out
	case map[string]any:
		return normalizeMap(val)
	case entity.Record:
		return normalizeMap(val)
	case decimal.Decimal:
		return normalizeDecimal(val)
	case *decimal.Decimal:
		if val == nil {
			return nil
		}
		return normalizeDecimal(*val)
	default:
		return v
	}
}

// NormalizeRecords normaliza una lista de registros para la respuesta JSON.
// Nunca devuelve nil: una lista vacía se serializa como [].
func NormalizeRecords(records []entity.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		out = append(out, normalizeMap(r))
	}
	return out
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, e := range m {
		out[k] = Normalize(e)
	}
	return out
}

func normalizeDecimal(d decimal.Decimal) any {
	if d.IsInteger() {
		n := d.BigInt()
		if n.IsInt64() {
			return n.Int64()
		}
		return n
	}
	return d.InexactFloat64()
}
