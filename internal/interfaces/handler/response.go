package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jhoicas/inventario-lambdas/internal/application/dto"
)

// Response respuesta estructurada que se devuelve al dispatcher.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

func jsonResponse(status int, body any) Response {
	b, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		b, _ = json.Marshal(dto.MessageResponse{Message: "Error serializing response", Error: err.Error()})
	}
	return Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}
}

func messageResponse(status int, message string) Response {
	return jsonResponse(status, dto.MessageResponse{Message: message})
}
