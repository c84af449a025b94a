package repository

import "github.com/tienduca/storefront-api/internal/domain/entity"

// VentaConTicket cabecera de venta junto con su ticket 1:1.
type VentaConTicket struct {
	Venta  entity.Venta
	Ticket entity.Ticket
}

// LineaResuelta línea de ticket con el nombre del producto resuelto.
type LineaResuelta struct {
	entity.LineaTicket
	NombreProducto string
}

// FiltroVentas filtros opcionales para el listado de ventas. Los campos
// presentes se aplican como coincidencia parcial sin distinguir mayúsculas
// y se combinan con AND.
type FiltroVentas struct {
	NombreProducto string
	CodigoVenta    string
}

// VentaRepository puerto de persistencia para ventas, tickets y líneas.
type VentaRepository interface {
	InsertVenta(tipoPago string) (*entity.Venta, error)
	InsertTicket(codigoVenta string, idVenta int64) (int64, error)
	GetByIDVenta(idVenta int64) (*VentaConTicket, error)
	GetByCodigoVenta(codigo string) (*VentaConTicket, error)
	UpdateTipoPago(idVenta int64, tipoPago string) error
	DeleteVenta(idVenta int64) error
	DeleteTicket(idTicket int64) error

	InsertLinea(l *entity.LineaTicket) error
	GetLinea(idTicket, idProducto int64) (*entity.LineaTicket, error)
	GetLineas(idTicket int64) ([]LineaResuelta, error)
	UpdateLinea(idTicket, idProducto int64, cantidad int) error
	DeleteLinea(idTicket, idProducto int64) error
	DeleteLineas(idTicket int64) error

	List(filtro FiltroVentas) ([]*VentaConTicket, error)
}
