package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jhoicas/inventario-lambdas/internal/domain"
	"github.com/jhoicas/inventario-lambdas/internal/domain/entity"
	"github.com/jhoicas/inventario-lambdas/internal/domain/repository"
	"github.com/jhoicas/inventario-lambdas/pkg/config"
)

var _ repository.RecordRepository = (*RecordRepo)(nil)

// Client subconjunto del cliente DynamoDB que usa el repositorio (permite un fake en tests).
type Client interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// NewClient crea el cliente DynamoDB con la cadena de credenciales por defecto.
// Si DynamoDBEndpoint está definido (DynamoDB Local, LocalStack) se usa como endpoint base.
func NewClient(ctx context.Context, cfg config.AWSConfig) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	}), nil
}

// RecordRepo implementación de RecordRepository sobre una tabla DynamoDB.
type RecordRepo struct {
	client Client
	table  string
	schema entity.KeySchema
}

// NewRecordRepository construye el adaptador. Si schema está vacío, el key schema se lee
// de la tabla con DescribeTable (una sola vez, al construir).
func NewRecordRepository(ctx context.Context, client Client, table string, schema entity.KeySchema) (*RecordRepo, error) {
	r := &RecordRepo{client: client, table: table, schema: schema}
	if len(schema) == 0 {
		s, err := r.describeKeySchema(ctx)
		if err != nil {
			return nil, err
		}
		r.schema = s
	}
	return r, nil
}

// QueryByPartitionKey consulta por partition key y lee todas las páginas.
func (r *RecordRepo) QueryByPartitionKey(ctx context.Context, attribute, value string) ([]entity.Record, error) {
	keyCond := expression.Key(attribute).Equal(expression.Value(value))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("construir key condition: %w: %w", domain.ErrMalformedInput, err)
	}

	p := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var out []entity.Record
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, classify("query", err)
		}
		recs, err := toRecords(page.Items)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

// Scan recorre la tabla con un filtro de igualdad y lee todas las páginas
// (el filtro se aplica por página; una coincidencia puede estar en cualquiera).
func (r *RecordRepo) Scan(ctx context.Context, attribute string, value any) ([]entity.Record, error) {
	filter := expression.Name(attribute).Equal(expression.Value(value))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("construir filtro: %w: %w", domain.ErrMalformedInput, err)
	}

	p := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var out []entity.Record
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, classify("scan", err)
		}
		recs, err := toRecords(page.Items)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

// DeleteByKey elimina un ítem por su clave primaria completa.
func (r *RecordRepo) DeleteByKey(ctx context.Context, key entity.Key) error {
	av, err := toKey(key)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMalformedInput, err)
	}
	_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       av,
	})
	return classify("delete item", err)
}

// KeySchema devuelve el key schema de la tabla (HASH primero, luego RANGE).
func (r *RecordRepo) KeySchema(context.Context) (entity.KeySchema, error) {
	return append(entity.KeySchema(nil), r.schema...), nil
}

func (r *RecordRepo) describeKeySchema(ctx context.Context) (entity.KeySchema, error) {
	out, err := r.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(r.table)})
	if err != nil {
		return nil, classify("describe table", err)
	}
	if out.Table == nil || len(out.Table.KeySchema) == 0 {
		return nil, fmt.Errorf("tabla %s sin key schema: %w", r.table, domain.ErrStoreUnavailable)
	}

	var hash, rest entity.KeySchema
	for _, k := range out.Table.KeySchema {
		name := aws.ToString(k.AttributeName)
		if k.KeyType == types.KeyTypeHash {
			hash = append(hash, name)
		} else {
			rest = append(rest, name)
		}
	}
	return append(hash, rest...), nil
}

func toRecords(items []map[string]types.AttributeValue) ([]entity.Record, error) {
	out := make([]entity.Record, 0, len(items))
	for _, item := range items {
		rec, err := toRecord(item)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
