package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-lambdas/internal/domain"
	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
	"github.com/jhoicas/inventario-lambdas/internal/domain/repository"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo almacén de registros sobre PostgreSQL: cada registro es un documento JSONB
// en la columna doc de la tabla configurada. Esquema esperado:
//
//	CREATE TABLE inventory (doc jsonb NOT NULL);
//	CREATE INDEX ON inventory ((doc->>'item_id'));
type RecordRepo struct {
	q      Querier
	table  string
	schema entity.KeySchema
}

// NewRecordRepository construye el adaptador. Pasar pool o tx (Querier).
// El key schema no se puede deducir de un documento JSONB, así que es obligatorio.
func NewRecordRepository(q Querier, table string, schema entity.KeySchema) (*RecordRepo, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("postgres requiere STORE_KEY_ATTRIBUTES: %w", domain.ErrInvalidInput)
	}
	return &RecordRepo{
		q:      q,
		table:  pgx.Identifier{table}.Sanitize(),
		schema: append(entity.KeySchema(nil), schema...),
	}, nil
}

// QueryByPartitionKey devuelve los documentos con doc->>attribute = value.
func (r *RecordRepo) QueryByPartitionKey(ctx context.Context, attribute, value string) ([]entity.Record, error) {
	query := `SELECT doc FROM ` + r.table + ` WHERE doc->>($1::text) = $2`
	return r.collect(ctx, "query records", query, attribute, value)
}

// Scan recorre la tabla filtrando por igualdad; los números se comparan como NUMERIC.
func (r *RecordRepo) Scan(ctx context.Context, attribute string, value any) ([]entity.Record, error) {
	if d, ok := numericValue(value); ok {
		query := `
			SELECT doc FROM ` + r.table + `
			WHERE CASE WHEN jsonb_typeof(doc->($1::text)) = 'number'
			           THEN (doc->>($1::text))::numeric = $2
			           ELSE false END`
		return r.collect(ctx, "scan records", query, attribute, d)
	}
	if s, ok := value.(string); ok {
		query := `
			SELECT doc FROM ` + r.table + `
			WHERE jsonb_typeof(doc->($1::text)) = 'string' AND doc->>($1::text) = $2`
		return r.collect(ctx, "scan records", query, attribute, s)
	}
	return nil, fmt.Errorf("valor de filtro no soportado %T: %w", value, domain.ErrMalformedInput)
}

// DeleteByKey elimina el documento cuya clave coincide atributo por atributo (igualdad JSONB).
func (r *RecordRepo) DeleteByKey(ctx context.Context, key entity.Key) error {
	query, args, err := r.deleteStatement(key)
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return classify("delete record", err)
	}
	return nil
}

// KeySchema devuelve el esquema configurado.
func (r *RecordRepo) KeySchema(context.Context) (entity.KeySchema, error) {
	return append(entity.KeySchema(nil), r.schema...), nil
}

func (r *RecordRepo) deleteStatement(key entity.Key) (string, []any, error) {
	if len(key) != len(r.schema) {
		return "", nil, fmt.Errorf("clave incompleta %v: %w", key, domain.ErrMalformedInput)
	}
	var sb strings.Builder
	sb.WriteString(`DELETE FROM ` + r.table + ` WHERE `)
	args := make([]any, 0, 2*len(r.schema))
	for i, attr := range r.schema {
		v, ok := key[attr]
		if !ok {
			return "", nil, fmt.Errorf("falta atributo de clave %q: %w", attr, domain.ErrMalformedInput)
		}
		raw, err := jsonValue(v)
		if err != nil {
			return "", nil, fmt.Errorf("atributo de clave %q: %w: %w", attr, domain.ErrMalformedInput, err)
		}
		if i > 0 {
			sb.WriteString(" AND ")
		}
		fmt.Fprintf(&sb, "doc->($%d::text) = $%d::jsonb", len(args)+1, len(args)+2)
		args = append(args, attr, string(raw))
	}
	return sb.String(), args, nil
}

func (r *RecordRepo) collect(ctx context.Context, op, query string, args ...any) ([]entity.Record, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, classify(op, err)
	}
	out := make([]entity.Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := decodeDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// decodeDocument decodifica un documento JSONB dejando cada número como decimal.Decimal.
func decodeDocument(doc []byte) (entity.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decodificar documento: %w", err)
	}
	out, err := numbersToDecimal(m)
	if err != nil {
		return nil, err
	}
	return entity.Record(out.(map[string]any)), nil
}

func numbersToDecimal(v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		return decimal.NewFromString(val.String())
	case []any:
		for i, e := range val {
			x, err := numbersToDecimal(e)
			if err != nil {
				return nil, err
			}
			val[i] = x
		}
		return val, nil
	case map[string]any:
		for k, e := range val {
			x, err := numbersToDecimal(e)
			if err != nil {
				return nil, err
			}
			val[k] = x
		}
		return val, nil
	default:
		return v, nil
	}
}

// jsonValue serializa un valor de clave; los decimales van como número JSON, no como string.
func jsonValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case decimal.Decimal:
		return []byte(val.String()), nil
	case *decimal.Decimal:
		return []byte(val.String()), nil
	default:
		return json.Marshal(v)
	}
}

func numericValue(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	}
	return decimal.Decimal{}, false
}
