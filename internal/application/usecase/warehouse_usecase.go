package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmcasillas/inventario-web/internal/application/dto"
	"github.com/jmcasillas/inventario-web/internal/domain"
	"github.com/jmcasillas/inventario-web/internal/domain/entity"
	"github.com/jmcasillas/inventario-web/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para almacenes. El borrado es atómico:
// se ejecuta en una transacción que primero confirma que ningún producto
// referencia el almacén.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
	tx   TxRunner
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, tx TxRunner) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, tx: tx}
}

// Create persiste un almacén nuevo con metadatos de modificación.
func (uc *WarehouseUseCase) Create(ctx context.Context, actor string, in dto.SaveWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre es requerido", domain.ErrInvalidInput)
	}
	warehouse := &entity.Warehouse{
		Name:       name,
		ModifiedAt: time.Now(),
		ModifiedBy: actor,
	}
	id, err := uc.repo.Create(ctx, warehouse)
	if err != nil {
		return nil, err
	}
	warehouse.ID = id
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene un almacén por id. Devuelve (nil, nil) si no existe.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista todos los almacenes.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items, nil
}

// Update renombra un almacén existente. Devuelve domain.ErrNotFound si el id
// no existe.
func (uc *WarehouseUseCase) Update(ctx context.Context, id int64, actor string, in dto.SaveWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nombre es requerido", domain.ErrInvalidInput)
	}
	warehouse := &entity.Warehouse{
		ID:         id,
		Name:       name,
		ModifiedAt: time.Now(),
		ModifiedBy: actor,
	}
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Delete elimina un almacén si ningún producto lo referencia. La verificación
// y el borrado ocurren en la misma transacción: o el borrado completa o no se
// modifica ninguna fila. Devuelve domain.ErrWarehouseInUse si hay productos
// que lo usan y domain.ErrNotFound si el id no existe.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(warehouses repository.WarehouseRepository, _ repository.ProductRepository) error {
		n, err := warehouses.CountProducts(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrWarehouseInUse
		}
		return warehouses.Delete(ctx, id)
	})
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:         w.ID,
		Name:       w.Name,
		ModifiedAt: w.ModifiedAt,
		ModifiedBy: w.ModifiedBy,
	}
}
