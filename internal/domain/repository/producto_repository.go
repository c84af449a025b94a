package repository

import "github.com/tienduca/storefront-api/internal/domain/entity"

// ProductoRepository puerto de persistencia para productos y sus códigos.
// Las implementaciones aceptan pool o transacción; las mutaciones de stock
// solo tienen sentido dentro de una transacción (bloqueo de fila incluido).
type ProductoRepository interface {
	Create(p *entity.Producto) (int64, error)
	GetByID(id int64) (*entity.Producto, error)
	GetByNombre(nombre string) (*entity.Producto, error)
	// GetByNombreForUpdate bloquea la fila del producto (SELECT FOR UPDATE)
	// para que la lectura de stock y su escritura ocurran sin carreras.
	GetByNombreForUpdate(nombre string) (*entity.Producto, error)
	GetByIDForUpdate(id int64) (*entity.Producto, error)
	GetByCodigoBarras(codigo string) (*entity.Producto, error)
	List(limit, offset int) ([]*entity.Producto, error)
	Update(p *entity.Producto) error
	// AjustarStock aplica delta (positivo o negativo) y devuelve la cantidad
	// resultante. El no-negativo lo garantiza el caso de uso, no la BD.
	AjustarStock(id int64, delta int) (int, error)
	Delete(id int64) error

	InsertCodigoBarras(c *entity.CodigoBarras) error
	ExisteCodigoBarras(codigo string) (bool, error)
	DeleteCodigosDeProducto(idProducto int64) error
	InsertCodigoQR(c *entity.CodigoQR) error
	GetCodigoQR(idProducto int64) (*entity.CodigoQR, error)
}
