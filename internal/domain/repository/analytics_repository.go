package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductoVendido total de unidades vendidas de un producto en un rango.
type ProductoVendido struct {
	Nombre        string
	TotalCantidad int64
}

// ConteoTipoPago número de ventas por tipo de pago en un rango.
type ConteoTipoPago struct {
	TipoPago string
	Total    int64
}

// ProductoResumen fila de los widgets del dashboard (top / recientes / agotando).
type ProductoResumen struct {
	IDProducto  int64
	Nombre      string
	Descripcion *string
	Precio      decimal.Decimal
	ImagenURL   *string
	Stock       int
	Ventas      int64
	QRImagePath *string
}

// AnalyticsRepository consultas de solo lectura para reportes y dashboard.
// No participan en transacciones: son vistas informativas, no decisiones
// de stock.
type AnalyticsRepository interface {
	TotalVendido(ctx context.Context, inicio, fin time.Time) (decimal.Decimal, error)
	ProductosMasVendidos(ctx context.Context, inicio, fin time.Time) ([]ProductoVendido, error)
	VentasPorTipoPago(ctx context.Context, inicio, fin time.Time) ([]ConteoTipoPago, error)

	TopVendidos(ctx context.Context, limit int) ([]ProductoResumen, error)
	ProductosRecientes(ctx context.Context, limit int) ([]ProductoResumen, error)
	ProductosAgotando(ctx context.Context, umbral, limit int) ([]ProductoResumen, error)
}
