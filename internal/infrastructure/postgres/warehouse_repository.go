package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmcasillas/inventario-web/internal/domain"
	"github.com/jmcasillas/inventario-web/internal/domain/entity"
	"github.com/jmcasillas/inventario-web/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL
// (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para almacenes.
// Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste un nuevo almacén y devuelve el id asignado.
func (r *WarehouseRepo) Create(ctx context.Context, warehouse *entity.Warehouse) (int64, error) {
	query := `
		INSERT INTO almacenes (nombre, fecha_modificacion, usuario_modificacion)
		VALUES ($1, $2, $3)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query, warehouse.Name, warehouse.ModifiedAt, warehouse.ModifiedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert almacen: %w", err)
	}
	return id, nil
}

// GetByID obtiene un almacén por id. Devuelve (nil, nil) si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	query := `
		SELECT id, nombre, fecha_modificacion, usuario_modificacion
		FROM almacenes WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.ModifiedAt, &w.ModifiedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almacen: %w", err)
	}
	return &w, nil
}

// List lista todos los almacenes ordenados por id.
func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, nombre, fecha_modificacion, usuario_modificacion
		FROM almacenes ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list almacenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.ModifiedAt, &w.ModifiedBy); err != nil {
			return nil, fmt.Errorf("scan almacen: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Update actualiza un almacén existente. Devuelve domain.ErrNotFound si el id
// no existe.
func (r *WarehouseRepo) Update(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		UPDATE almacenes SET nombre = $2, fecha_modificacion = $3, usuario_modificacion = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		warehouse.ID, warehouse.Name, warehouse.ModifiedAt, warehouse.ModifiedBy,
	)
	if err != nil {
		return fmt.Errorf("update almacen: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un almacén por id. La FK de productos es el respaldo del
// guard de borrado: una violación se mapea a domain.ErrWarehouseInUse.
func (r *WarehouseRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM almacenes WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrWarehouseInUse
		}
		return fmt.Errorf("delete almacen: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountProducts cuenta los productos que referencian el almacén.
func (r *WarehouseRepo) CountProducts(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM productos WHERE almacen = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count productos de almacen: %w", err)
	}
	return n, nil
}
