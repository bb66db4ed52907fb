package lambda

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/jhoicas/inventario-lambdas/internal/application/dto"
	"github.com/jhoicas/inventario-lambdas/internal/interfaces/handler"
)

// rawEvent campos del evento que API Gateway no modela pero los invocadores directos sí envían.
// item_id solo cuenta si es string; cualquier otro tipo se trata como ausente.
type rawEvent struct {
	ItemID any `json:"item_id"`
}

// Adapt expone un handler como función de Lambda. Recibe el payload crudo para no perder
// el campo item_id de nivel superior que usan las invocaciones directas.
func Adapt(fn handler.Func) func(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
		req, err := ToHandlerRequest(ctx, payload)
		if err != nil {
			body, _ := json.Marshal(dto.MessageResponse{Message: "Invalid request", Error: err.Error()})
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       string(body),
			}, nil
		}
		return ToProxyResponse(fn(ctx, req)), nil
	}
}

// ToHandlerRequest decodifica un evento de API Gateway (o uno directo) al esquema del handler.
func ToHandlerRequest(ctx context.Context, payload json.RawMessage) (dto.HandlerRequest, error) {
	var evt events.APIGatewayProxyRequest
	if err := json.Unmarshal(payload, &evt); err != nil {
		return dto.HandlerRequest{}, err
	}
	var extra rawEvent
	if err := json.Unmarshal(payload, &extra); err != nil {
		return dto.HandlerRequest{}, err
	}

	itemID, _ := extra.ItemID.(string)

	requestID := evt.RequestContext.RequestID
	if lc, ok := lambdacontext.FromContext(ctx); ok && requestID == "" {
		requestID = lc.AwsRequestID
	}

	return dto.HandlerRequest{
		PathParameters:        evt.PathParameters,
		QueryStringParameters: evt.QueryStringParameters,
		ItemID:                itemID,
		RequestID:             requestID,
	}, nil
}

// ToProxyResponse traduce la respuesta del handler al formato de API Gateway.
func ToProxyResponse(resp handler.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}
