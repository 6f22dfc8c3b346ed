package repository

import (
	"context"

	"github.com/jmcasillas/inventario-web/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	List(ctx context.Context) ([]*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	// Delete elimina el almacén. Devuelve domain.ErrWarehouseInUse si algún
	// producto lo referencia y domain.ErrNotFound si el id no existe.
	Delete(ctx context.Context, id int64) error
	// CountProducts cuenta los productos que referencian el almacén.
	CountProducts(ctx context.Context, id int64) (int, error)
}
