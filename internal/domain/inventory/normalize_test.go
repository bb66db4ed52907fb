package inventory_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
	"github.com/jhoicas/inventario-lambdas/internal/domain/inventory"
)

func TestNormalize_DecimalEnteroDevuelveInt64(t *testing.T) {
	cases := []string{"0", "5", "-12", "5.000", "1e3"}
	for _, in := range cases {
		d := decimal.RequireFromString(in)
		got := inventory.Normalize(d)
		require.IsType(t, int64(0), got, "entrada %s", in)
		assert.Equal(t, d.IntPart(), got.(int64), "entrada %s", in)
	}
}

func TestNormalize_DecimalFraccionarioDevuelveFloat(t *testing.T) {
	got := inventory.Normalize(decimal.RequireFromString("2.5"))
	assert.Equal(t, 2.5, got)

	got = inventory.Normalize(decimal.RequireFromString("-0.125"))
	assert.Equal(t, -0.125, got)
}

func TestNormalize_EnteroFueraDeRangoInt64(t *testing.T) {
	d := decimal.RequireFromString("123456789012345678901234567890")
	got := inventory.Normalize(d)
	n, ok := got.(*big.Int)
	require.True(t, ok, "se esperaba *big.Int, llegó %T", got)
	assert.Equal(t, "123456789012345678901234567890", n.String())
}

func TestNormalize_PunteroDecimal(t *testing.T) {
	d := decimal.NewFromInt(7)
	assert.Equal(t, int64(7), inventory.Normalize(&d))
	var nilDec *decimal.Decimal
	assert.Nil(t, inventory.Normalize(nilDec))
}

func TestNormalize_PreservaEstructura(t *testing.T) {
	in := map[string]any{
		"qty":  decimal.NewFromInt(3),
		"tags": []any{"a", decimal.RequireFromString("1.5"), decimal.NewFromInt(2)},
		"dims": map[string]any{"w": decimal.RequireFromString("10.0"), "unit": "cm"},
		"ok":   true,
		"none": nil,
	}

	out, ok := inventory.Normalize(in).(map[string]any)
	require.True(t, ok)
	assert.Len(t, out, len(in))
	assert.Equal(t, int64(3), out["qty"])
	assert.Equal(t, []any{"a", 1.5, int64(2)}, out["tags"])
	assert.Equal(t, map[string]any{"w": int64(10), "unit": "cm"}, out["dims"])
	assert.Equal(t, true, out["ok"])
	assert.Nil(t, out["none"])
	assert.Contains(t, out, "none")
}

func TestNormalize_OtrosTiposSinCambios(t *testing.T) {
	assert.Equal(t, "abc", inventory.Normalize("abc"))
	assert.Equal(t, []byte("x"), inventory.Normalize([]byte("x")))
	assert.Equal(t, 4, inventory.Normalize(4))
}

func TestNormalizeRecords_SerializaSinDecimales(t *testing.T) {
	records := []entity.Record{
		{"item_id": "42", "location_id": decimal.NewFromInt(3), "qty": decimal.NewFromInt(5)},
	}

	body, err := json.Marshal(inventory.NormalizeRecords(records))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"item_id":"42","location_id":3,"qty":5}]`, string(body))
}

func TestNormalizeRecords_VacioEsArreglo(t *testing.T) {
	body, err := json.Marshal(inventory.NormalizeRecords(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}
