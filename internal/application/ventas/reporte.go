package ventas

import (
	"context"
	"fmt"
	"time"

	"github.com/tienduca/storefront-api/internal/application/dto"
	"github.com/tienduca/storefront-api/internal/domain"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

// GenerarReporte agrega las ventas del rango inclusivo [inicio, fin]: total
// recaudado, unidades por producto y conteo por tipo de pago. Las tres
// consultas son de solo lectura y corren en paralelo; no participan en
// ninguna transacción.
func (uc *UseCase) GenerarReporte(ctx context.Context, inicio, fin time.Time) (*dto.ReporteVentasResponse, error) {
	if inicio.IsZero() || fin.IsZero() {
		return nil, fmt.Errorf("%w: fecha_inicio y fecha_fin son requeridas", domain.ErrInvalidInput)
	}
	if fin.Before(inicio) {
		return nil, fmt.Errorf("%w: fecha_fin no puede ser anterior a fecha_inicio", domain.ErrInvalidInput)
	}
	// El rango es por día inclusivo: el fin se extiende hasta el último
	// instante de su fecha.
	finDia := fin.AddDate(0, 0, 1).Add(-time.Nanosecond)

	var resp dto.ReporteVentasResponse
	errCh := make(chan error, 3)

	go func() {
		total, err := uc.analytics.TotalVendido(ctx, inicio, finDia)
		if err == nil {
			resp.TotalVendido = total
		}
		errCh <- err
	}()

	var masVendidos []repository.ProductoVendido
	go func() {
		var err error
		masVendidos, err = uc.analytics.ProductosMasVendidos(ctx, inicio, finDia)
		errCh <- err
	}()

	var porTipoPago []repository.ConteoTipoPago
	go func() {
		var err error
		porTipoPago, err = uc.analytics.VentasPorTipoPago(ctx, inicio, finDia)
		errCh <- err
	}()

	for i := 0; i < 3; i++ {
		if err := <-errCh; err != nil {
			return nil, err
		}
	}

	resp.ProductosMasVendidos = make([]dto.ProductoVendidoDTO, 0, len(masVendidos))
	for _, pv := range masVendidos {
		resp.ProductosMasVendidos = append(resp.ProductosMasVendidos, dto.ProductoVendidoDTO{
			Nombre:        pv.Nombre,
			TotalCantidad: pv.TotalCantidad,
		})
	}
	resp.TipoPagoMasUsado = make([]dto.ConteoTipoPagoDTO, 0, len(porTipoPago))
	for _, c := range porTipoPago {
		resp.TipoPagoMasUsado = append(resp.TipoPagoMasUsado, dto.ConteoTipoPagoDTO{
			TipoPago: c.TipoPago,
			Total:    c.Total,
		})
	}
	return &resp, nil
}
