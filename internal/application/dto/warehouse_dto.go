package dto

import "time"

// SaveWarehouseRequest entrada para crear o actualizar un almacén.
type SaveWarehouseRequest struct {
	Name string `json:"nombre"`
}

// WarehouseResponse salida de un almacén, con metadatos de última modificación.
type WarehouseResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"nombre"`
	ModifiedAt time.Time `json:"fecha_modificacion"`
	ModifiedBy string    `json:"usuario_modificacion"`
}
