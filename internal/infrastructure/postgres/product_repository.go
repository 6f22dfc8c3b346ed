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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y devuelve el id asignado. Una violación
// de la FK de almacén se mapea a domain.ErrWarehouseNotFound y no se escribe
// ninguna fila.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) (int64, error) {
	query := `
		INSERT INTO productos (nombre, precio, cantidad, departamento, almacen, fecha_modificacion, usuario_modificacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		product.Name, product.Price, product.Quantity, product.Department,
		product.WarehouseID, product.ModifiedAt, product.ModifiedBy,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrWarehouseNotFound
		}
		return 0, fmt.Errorf("insert producto: %w", err)
	}
	return id, nil
}

// GetByID obtiene un producto por id. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		SELECT id, nombre, precio, cantidad, departamento, almacen, fecha_modificacion, usuario_modificacion
		FROM productos WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Department,
		&p.WarehouseID, &p.ModifiedAt, &p.ModifiedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// List lista todos los productos ordenados por id.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT id, nombre, precio, cantidad, departamento, almacen, fecha_modificacion, usuario_modificacion
		FROM productos ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Department,
			&p.WarehouseID, &p.ModifiedAt, &p.ModifiedBy); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update sobrescribe un producto existente. Mismas reglas de FK que Create;
// domain.ErrNotFound si el id no existe.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE productos
		SET nombre = $2, precio = $3, cantidad = $4, departamento = $5, almacen = $6,
		    fecha_modificacion = $7, usuario_modificacion = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Quantity, product.Department,
		product.WarehouseID, product.ModifiedAt, product.ModifiedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrWarehouseNotFound
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por id. domain.ErrNotFound si no existe.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
