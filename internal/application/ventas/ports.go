package ventas

import (
	"context"

	"github.com/tienduca/storefront-api/internal/application/dto"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda operación que toca líneas y stock a la
// vez pasa por aquí: o se persiste todo, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
	) error) error
}

// TicketRenderer genera el comprobante imprimible de una venta.
type TicketRenderer interface {
	Render(venta dto.VentaResponse) ([]byte, error)
}
