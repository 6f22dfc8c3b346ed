package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrDuplicateUser      = errors.New("el nombre de usuario ya está registrado")
	ErrWarehouseNotFound  = errors.New("el almacén referenciado no existe")
	ErrWarehouseInUse     = errors.New("el almacén está siendo usado por uno o más productos")
)
