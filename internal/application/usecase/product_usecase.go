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

// ProductUseCase casos de uso CRUD para productos. Toda mutación estampa
// fecha y usuario de modificación con el nombre del actor autenticado.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

func validateProduct(in dto.SaveProductRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: nombre es requerido", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("%w: cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.WarehouseID <= 0 {
		return fmt.Errorf("%w: almacen es requerido", domain.ErrInvalidInput)
	}
	return nil
}

// Create valida y persiste un producto nuevo. El almacén referenciado debe
// existir; si no, el repositorio devuelve domain.ErrWarehouseNotFound y no
// se escribe ninguna fila.
func (uc *ProductUseCase) Create(ctx context.Context, actor string, in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	product := &entity.Product{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Quantity:    in.Quantity,
		Department:  in.Department,
		WarehouseID: in.WarehouseID,
		ModifiedAt:  time.Now(),
		ModifiedBy:  actor,
	}
	id, err := uc.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	product.ID = id
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por id. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista todos los productos. Si q no está vacío, filtra por nombre o
// departamento sin distinguir mayúsculas ni tildes.
func (uc *ProductUseCase) List(ctx context.Context, q string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	needle := fold(strings.TrimSpace(q))
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if needle != "" &&
			!strings.Contains(fold(p.Name), needle) &&
			!strings.Contains(fold(p.Department), needle) {
			continue
		}
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update sobrescribe un producto existente con los campos recibidos.
// Devuelve domain.ErrNotFound si el id no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, actor string, in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Quantity:    in.Quantity,
		Department:  in.Department,
		WarehouseID: in.WarehouseID,
		ModifiedAt:  time.Now(),
		ModifiedBy:  actor,
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Devuelve domain.ErrNotFound si el id no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Department:  p.Department,
		WarehouseID: p.WarehouseID,
		ModifiedAt:  p.ModifiedAt,
		ModifiedBy:  p.ModifiedBy,
	}
}
