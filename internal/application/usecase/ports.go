package usecase

import (
	"context"

	"github.com/jmcasillas/inventario-web/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una misma transacción.
// Lo implementa postgres.TxRunner; la interfaz evita acoplar el caso de uso a pgx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		warehouses repository.WarehouseRepository,
		products repository.ProductRepository,
	) error) error
}
