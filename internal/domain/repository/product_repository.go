package repository

import (
	"context"

	"github.com/jmcasillas/inventario-web/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create persiste un producto nuevo y devuelve el id asignado.
	// Devuelve domain.ErrWarehouseNotFound si WarehouseID no resuelve.
	Create(ctx context.Context, product *entity.Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// Update sobrescribe todos los campos editables. Mismas reglas de FK que Create;
	// domain.ErrNotFound si el id no existe.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}
