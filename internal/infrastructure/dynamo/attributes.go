package dynamo

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
)

// toRecord convierte un ítem de DynamoDB en un registro. Todo número (N, NS) se
// decodifica como decimal.Decimal sin pérdida de precisión.
func toRecord(item map[string]types.AttributeValue) (entity.Record, error) {
	rec := make(entity.Record, len(item))
	for k, av := range item {
		v, err := fromAttributeValue(av)
		if err != nil {
			return nil, fmt.Errorf("atributo %q: %w", k, err)
		}
		rec[k] = v
	}
	return rec, nil
}

func fromAttributeValue(av types.AttributeValue) (any, error) {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return v.Value, nil
	case *types.AttributeValueMemberN:
		return decimal.NewFromString(v.Value)
	case *types.AttributeValueMemberBOOL:
		return v.Value, nil
	case *types.AttributeValueMemberNULL:
		return nil, nil
	case *types.AttributeValueMemberB:
		return v.Value, nil
	case *types.AttributeValueMemberL:
		out := make([]any, len(v.Value))
		for i, e := range v.Value {
			x, err := fromAttributeValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	case *types.AttributeValueMemberM:
		out := make(map[string]any, len(v.Value))
		for k, e := range v.Value {
			x, err := fromAttributeValue(e)
			if err != nil {
				return nil, err
			}
			out[k] = x
		}
		return out, nil
	case *types.AttributeValueMemberSS:
		out := make([]any, len(v.Value))
		for i, s := range v.Value {
			out[i] = s
		}
		return out, nil
	case *types.AttributeValueMemberNS:
		out := make([]any, len(v.Value))
		for i, s := range v.Value {
			d, err := decimal.NewFromString(s)
			if err != nil {
				return nil, err
			}
			out[i] = d
		}
		return out, nil
	case *types.AttributeValueMemberBS:
		out := make([]any, len(v.Value))
		for i, b := range v.Value {
			out[i] = b
		}
		return out, nil
	default:
		return nil, fmt.Errorf("tipo de atributo no soportado %T", av)
	}
}

// toKey convierte la clave primaria de un registro en el mapa que espera DeleteItem.
func toKey(key entity.Key) (map[string]types.AttributeValue, error) {
	out := make(map[string]types.AttributeValue, len(key))
	for k, v := range key {
		av, err := toAttributeValue(v)
		if err != nil {
			return nil, fmt.Errorf("atributo de clave %q: %w", k, err)
		}
		out[k] = av
	}
	return out, nil
}

func toAttributeValue(v any) (types.AttributeValue, error) {
	switch val := v.(type) {
	case decimal.Decimal:
		return &types.AttributeValueMemberN{Value: val.String()}, nil
	case *decimal.Decimal:
		return &types.AttributeValueMemberN{Value: val.String()}, nil
	case string:
		return &types.AttributeValueMemberS{Value: val}, nil
	case []byte:
		return &types.AttributeValueMemberB{Value: val}, nil
	default:
		return attributevalue.Marshal(v)
	}
}
