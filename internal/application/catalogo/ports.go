package catalogo

import (
	"context"

	"github.com/tienduca/storefront-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del alta de producto
// (producto + códigos) y de las operaciones de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productoRepo repository.ProductoRepository,
		ventaRepo repository.VentaRepository,
	) error) error
}

// QRRenderer convierte un contenido en una imagen QR codificada como data URL.
type QRRenderer interface {
	DataURL(contenido string) (string, error)
}
