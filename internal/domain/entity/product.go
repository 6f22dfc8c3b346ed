package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario. WarehouseID debe apuntar a un
// Warehouse existente en el momento de la escritura (FK en la base de datos).
type Product struct {
	ID          int64
	Name        string
	Price       decimal.Decimal // precio de venta, nunca negativo
	Quantity    int             // existencias, nunca negativo
	Department  string          // categoría de texto libre
	WarehouseID int64           // FK → almacenes.id
	ModifiedAt  time.Time       // fecha_modificacion
	ModifiedBy  string          // nombre del último usuario que modificó el registro
}
