package handler

import "github.com/jhoicas/inventario-lambdas/internal/application/dto"

// IdentifierLocation indica en qué parte de la petición se busca un identificador.
type IdentifierLocation int

const (
	PathParameter IdentifierLocation = iota
	QueryParameter
	RequestField
)

// IdentifierSource un lugar (location, nombre de campo) donde puede venir el identificador.
type IdentifierSource struct {
	Location IdentifierLocation
	Field    string
}

// Orden de prioridad de cada handler.
var (
	DeleteItemSources = []IdentifierSource{
		{PathParameter, "id"},
		{PathParameter, "item_id"},
		{RequestField, "item_id"},
	}
	GetItemSources = []IdentifierSource{
		{PathParameter, "id"},
	}
	LocationItemsSources = []IdentifierSource{
		{PathParameter, "id"},
		{PathParameter, "location_id"},
		{QueryParameter, "id"},
		{QueryParameter, "location_id"},
	}
)

// ExtractIdentifier evalúa las fuentes en orden; gana el primer valor no vacío.
func ExtractIdentifier(req dto.HandlerRequest, sources []IdentifierSource) (string, bool) {
	for _, src := range sources {
		if v := lookup(req, src); v != "" {
			return v, true
		}
	}
	return "", false
}

func lookup(req dto.HandlerRequest, src IdentifierSource) string {
	switch src.Location {
	case PathParameter:
		return req.PathParameters[src.Field]
	case QueryParameter:
		return req.QueryStringParameters[src.Field]
	case RequestField:
		if src.Field == "item_id" {
			return req.ItemID
		}
	}
	return ""
}
