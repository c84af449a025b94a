package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago permitidos para una venta.
const (
	TipoPagoEfectivo    = "Efectivo"
	TipoPagoTransaccion = "Transacción"
)

// Venta es una transacción de caja. Tiene exactamente un Ticket y se borra
// físicamente al deshacerla (no hay soft-delete).
type Venta struct {
	ID       int64
	Fecha    time.Time // asignada por el servidor al crear
	TipoPago string
}

// Ticket es el recibo 1:1 de la venta; CodigoVenta es el identificador externo.
type Ticket struct {
	ID          int64
	CodigoVenta string
	IDVenta     int64
}

// LineaTicket es un par producto-cantidad dentro de un ticket. Una línea con
// cantidad <= 0 se elimina, nunca se guarda en cero. PrecioUnitario es la
// foto del precio al momento de la venta: cambios posteriores del precio del
// producto no alteran las ventas históricas.
type LineaTicket struct {
	IDTicket       int64
	IDProducto     int64
	Cantidad       int
	PrecioUnitario decimal.Decimal
}
