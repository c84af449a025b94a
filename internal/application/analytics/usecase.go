// Package analytics arma los widgets del dashboard de productos.
package analytics

import (
	"context"

	"github.com/tienduca/storefront-api/internal/application/dto"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

const (
	widgetLimit   = 3
	umbralAgotado = 3
)

// UseCase consultas agregadas del dashboard.
type UseCase struct {
	analytics repository.AnalyticsRepository
}

// NewUseCase construye el caso de uso del dashboard.
func NewUseCase(analytics repository.AnalyticsRepository) *UseCase {
	return &UseCase{analytics: analytics}
}

// ProductosResumen devuelve los tres widgets (más vendidos, recién agregados
// y por agotarse) consultando en paralelo.
func (uc *UseCase) ProductosResumen(ctx context.Context) (*dto.ProductosResumenResponse, error) {
	var top, recientes, agotando []repository.ProductoResumen
	errCh := make(chan error, 3)

	go func() {
		var err error
		top, err = uc.analytics.TopVendidos(ctx, widgetLimit)
		errCh <- err
	}()
	go func() {
		var err error
		recientes, err = uc.analytics.ProductosRecientes(ctx, widgetLimit)
		errCh <- err
	}()
	go func() {
		var err error
		agotando, err = uc.analytics.ProductosAgotando(ctx, umbralAgotado, widgetLimit)
		errCh <- err
	}()

	for i := 0; i < 3; i++ {
		if err := <-errCh; err != nil {
			return nil, err
		}
	}

	return &dto.ProductosResumenResponse{
		Top:       toDTOs(top),
		Recientes: toDTOs(recientes),
		Agotando:  toDTOs(agotando),
	}, nil
}

func toDTOs(list []repository.ProductoResumen) []dto.ProductoResumenDTO {
	items := make([]dto.ProductoResumenDTO, 0, len(list))
	for _, r := range list {
		items = append(items, dto.ProductoResumenDTO{
			IDProducto:  r.IDProducto,
			Nombre:      r.Nombre,
			Descripcion: r.Descripcion,
			Precio:      r.Precio,
			ImagenURL:   r.ImagenURL,
			Stock:       r.Stock,
			Ventas:      r.Ventas,
			QRImagePath: r.QRImagePath,
		})
	}
	return items
}
