package dto

// HandlerRequest es el esquema explícito de la petición que entrega el dispatcher
// (API Gateway, Fiber o un evento directo). Todos los campos son opcionales;
// cada handler decide de dónde leer su identificador y ignora el resto.
type HandlerRequest struct {
	PathParameters        map[string]string `json:"pathParameters"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	ItemID                string            `json:"item_id"`
	RequestID             string            `json:"-"`
}

// MessageResponse cuerpo de respuestas simples y de error.
// Error solo se llena en errores internos (texto del error subyacente).
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// DeleteItemResponse cuerpo de DELETE /item/{id}.
type DeleteItemResponse struct {
	Message        string `json:"message"`
	ItemID         string `json:"item_id"`
	DeletedRecords int    `json:"deleted_records"`
}
