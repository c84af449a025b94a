package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el reporte de ventas y el
// dashboard. Siempre va contra el pool: son vistas informativas y no
// necesitan transacción.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// TotalVendido suma precio congelado × cantidad de todas las líneas de ventas
// en el rango (inclusive).
func (r *AnalyticsRepo) TotalVendido(ctx context.Context, inicio, fin time.Time) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(tp.precio_unitario * tp.cantidad), 0)
		FROM venta v
		JOIN ticket t ON v.id_venta = t.id_venta
		JOIN ticket_producto tp ON t.id_ticket = tp.id_ticket
		WHERE v.fecha BETWEEN $1 AND $2`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, inicio, fin).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.TotalVendido: %w", err)
	}
	return total, nil
}

// ProductosMasVendidos unidades vendidas por producto en el rango, descendente.
func (r *AnalyticsRepo) ProductosMasVendidos(ctx context.Context, inicio, fin time.Time) ([]repository.ProductoVendido, error) {
	const query = `
		SELECT p.nombre, SUM(tp.cantidad) AS total_cantidad
		FROM venta v
		JOIN ticket t ON v.id_venta = t.id_venta
		JOIN ticket_producto tp ON t.id_ticket = tp.id_ticket
		JOIN producto p ON tp.id_producto = p.id_producto
		WHERE v.fecha BETWEEN $1 AND $2
		GROUP BY p.nombre
		ORDER BY total_cantidad DESC`
	rows, err := r.pool.Query(ctx, query, inicio, fin)
	if err != nil {
		return nil, fmt.Errorf("analytics.ProductosMasVendidos: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductoVendido
	for rows.Next() {
		var pv repository.ProductoVendido
		if err := rows.Scan(&pv.Nombre, &pv.TotalCantidad); err != nil {
			return nil, fmt.Errorf("analytics: scan producto vendido: %w", err)
		}
		list = append(list, pv)
	}
	return list, rows.Err()
}

// VentasPorTipoPago conteo de ventas por tipo de pago en el rango, descendente.
func (r *AnalyticsRepo) VentasPorTipoPago(ctx context.Context, inicio, fin time.Time) ([]repository.ConteoTipoPago, error) {
	const query = `
		SELECT tipo_pago, COUNT(*) AS total
		FROM venta
		WHERE fecha BETWEEN $1 AND $2
		GROUP BY tipo_pago
		ORDER BY total DESC`
	rows, err := r.pool.Query(ctx, query, inicio, fin)
	if err != nil {
		return nil, fmt.Errorf("analytics.VentasPorTipoPago: %w", err)
	}
	defer rows.Close()
	var list []repository.ConteoTipoPago
	for rows.Next() {
		var c repository.ConteoTipoPago
		if err := rows.Scan(&c.TipoPago, &c.Total); err != nil {
			return nil, fmt.Errorf("analytics: scan tipo pago: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

const resumenCols = `
	p.id_producto, p.nombre, p.descripcion, p.precio, p.imagen_url,
	p.cantidad AS stock,
	COALESCE(SUM(tp.cantidad), 0) AS ventas,
	('/qr/' || q.codigo_qr || '.png') AS qr_image_path`

// TopVendidos productos con más unidades vendidas históricamente.
func (r *AnalyticsRepo) TopVendidos(ctx context.Context, limit int) ([]repository.ProductoResumen, error) {
	query := `
		SELECT ` + resumenCols + `
		FROM producto p
		LEFT JOIN codigo_qr q ON p.id_producto = q.id_producto
		LEFT JOIN ticket_producto tp ON tp.id_producto = p.id_producto
		GROUP BY p.id_producto, q.codigo_qr
		ORDER BY ventas DESC, p.id_producto DESC
		LIMIT $1`
	return r.queryResumen(ctx, query, limit)
}

// ProductosRecientes últimos productos registrados.
func (r *AnalyticsRepo) ProductosRecientes(ctx context.Context, limit int) ([]repository.ProductoResumen, error) {
	query := `
		SELECT p.id_producto, p.nombre, p.descripcion, p.precio, p.imagen_url,
		       p.cantidad AS stock,
		       0 AS ventas,
		       ('/qr/' || q.codigo_qr || '.png') AS qr_image_path
		FROM producto p
		LEFT JOIN codigo_qr q ON p.id_producto = q.id_producto
		ORDER BY p.id_producto DESC
		LIMIT $1`
	return r.queryResumen(ctx, query, limit)
}

// ProductosAgotando productos con stock en o bajo el umbral, los más bajos primero.
func (r *AnalyticsRepo) ProductosAgotando(ctx context.Context, umbral, limit int) ([]repository.ProductoResumen, error) {
	query := `
		SELECT ` + resumenCols + `
		FROM producto p
		LEFT JOIN codigo_qr q ON p.id_producto = q.id_producto
		LEFT JOIN ticket_producto tp ON tp.id_producto = p.id_producto
		WHERE p.cantidad <= $1
		GROUP BY p.id_producto, q.codigo_qr
		ORDER BY p.cantidad ASC, p.id_producto DESC
		LIMIT $2`
	return r.queryResumen(ctx, query, umbral, limit)
}

func (r *AnalyticsRepo) queryResumen(ctx context.Context, query string, args ...any) ([]repository.ProductoResumen, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics: resumen productos: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductoResumen
	for rows.Next() {
		var p repository.ProductoResumen
		if err := rows.Scan(&p.IDProducto, &p.Nombre, &p.Descripcion, &p.Precio, &p.ImagenURL,
			&p.Stock, &p.Ventas, &p.QRImagePath); err != nil {
			return nil, fmt.Errorf("analytics: scan resumen: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
