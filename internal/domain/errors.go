package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrStoreUnavailable = errors.New("almacén de registros no disponible")
	ErrPermissionDenied = errors.New("acceso denegado al almacén de registros")
	ErrMalformedInput   = errors.New("entrada mal formada para el almacén")
)
