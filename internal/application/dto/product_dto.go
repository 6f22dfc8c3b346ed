package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveProductRequest entrada para crear o actualizar un producto.
// El mismo cuerpo sirve para POST y PUT: la operación sobrescribe todos los campos.
type SaveProductRequest struct {
	Name        string          `json:"nombre"`
	Price       decimal.Decimal `json:"precio"`
	Quantity    int             `json:"cantidad"`
	Department  string          `json:"departamento"`
	WarehouseID int64           `json:"almacen"`
}

// ProductResponse salida de un producto, con metadatos de última modificación.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nombre"`
	Price       decimal.Decimal `json:"precio"`
	Quantity    int             `json:"cantidad"`
	Department  string          `json:"departamento"`
	WarehouseID int64           `json:"almacen"`
	ModifiedAt  time.Time       `json:"fecha_modificacion"`
	ModifiedBy  string          `json:"usuario_modificacion"`
}
