package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaVentaRequest par producto-cantidad de una venta (por nombre de producto).
type LineaVentaRequest struct {
	NombreProducto string `json:"nombre_producto"`
	Cantidad       int    `json:"cantidad"`
}

// CrearVentaRequest alta de venta: líneas en orden de entrada + tipo de pago.
type CrearVentaRequest struct {
	Productos []LineaVentaRequest `json:"productos"`
	TipoPago  string              `json:"tipo_pago"`
}

// LineaVentaResponse línea con el precio congelado al momento de la venta.
type LineaVentaResponse struct {
	NombreProducto string          `json:"nombre_producto"`
	Cantidad       int             `json:"cantidad"`
	Precio         decimal.Decimal `json:"precio"`
}

// VentaResponse venta completa: cabecera, ticket y líneas.
type VentaResponse struct {
	Mensaje     string               `json:"mensaje,omitempty"`
	IDVenta     int64                `json:"id_venta"`
	IDTicket    int64                `json:"id_ticket"`
	CodigoVenta string               `json:"codigo_venta"`
	Fecha       time.Time            `json:"fecha"`
	TipoPago    string               `json:"tipo_pago"`
	Productos   []LineaVentaResponse `json:"productos"`
}

// ActualizarVentaRequest cambia tipo de pago y/o repone las cantidades de
// líneas; al menos uno de los dos campos debe venir.
type ActualizarVentaRequest struct {
	TipoPago  *string             `json:"tipo_pago,omitempty"`
	Productos []LineaVentaRequest `json:"productos,omitempty"`
}

// AnularProductosRequest reduce o elimina líneas puntuales de una venta.
type AnularProductosRequest struct {
	Productos []LineaVentaRequest `json:"productos"`
}

// ReporteVentasResponse agregados del rango: total vendido, unidades por
// producto (desc) y conteo por tipo de pago (desc).
type ReporteVentasResponse struct {
	TotalVendido         decimal.Decimal      `json:"total_vendido"`
	ProductosMasVendidos []ProductoVendidoDTO `json:"productos_mas_vendidos"`
	TipoPagoMasUsado     []ConteoTipoPagoDTO  `json:"tipo_pago_mas_usado"`
}

// ProductoVendidoDTO fila del ranking de unidades vendidas.
type ProductoVendidoDTO struct {
	Nombre        string `json:"nombre"`
	TotalCantidad int64  `json:"total_cantidad"`
}

// ConteoTipoPagoDTO fila del conteo por tipo de pago.
type ConteoTipoPagoDTO struct {
	TipoPago string `json:"tipo_pago"`
	Total    int64  `json:"total"`
}
