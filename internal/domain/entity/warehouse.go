package entity

import "time"

// Warehouse representa un almacén donde se guardan productos.
// No puede eliminarse mientras algún producto lo referencie.
type Warehouse struct {
	ID         int64
	Name       string
	ModifiedAt time.Time // fecha_modificacion
	ModifiedBy string    // nombre del último usuario que modificó el registro
}
