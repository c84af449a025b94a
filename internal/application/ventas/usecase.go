// Package ventas implementa el motor de transacciones de venta: crear, leer,
// actualizar, anular líneas y deshacer ventas, manteniendo el contador de
// stock de cada producto consistente con el historial de líneas dentro de
// una misma transacción de BD.
package ventas

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tienduca/storefront-api/internal/application/dto"
	"github.com/tienduca/storefront-api/internal/domain"
	"github.com/tienduca/storefront-api/internal/domain/entity"
	"github.com/tienduca/storefront-api/internal/domain/repository"
	"github.com/tienduca/storefront-api/pkg/texto"
)

// UseCase casos de uso de ventas.
type UseCase struct {
	txRunner  TxRunner
	ventaRepo repository.VentaRepository
	analytics repository.AnalyticsRepository
	pdf       TicketRenderer
}

// NewUseCase construye el caso de uso de ventas. pdf puede ser nil si no se
// expone el comprobante imprimible.
func NewUseCase(txRunner TxRunner, ventaRepo repository.VentaRepository, analytics repository.AnalyticsRepository, pdf TicketRenderer) *UseCase {
	return &UseCase{txRunner: txRunner, ventaRepo: ventaRepo, analytics: analytics, pdf: pdf}
}

// normalizarTipoPago valida el tipo de pago contra los valores permitidos sin
// distinguir mayúsculas ni tildes, y devuelve la forma canónica.
func normalizarTipoPago(tipoPago string) (string, error) {
	switch {
	case texto.Igual(tipoPago, entity.TipoPagoEfectivo):
		return entity.TipoPagoEfectivo, nil
	case texto.Igual(tipoPago, entity.TipoPagoTransaccion):
		return entity.TipoPagoTransaccion, nil
	default:
		return "", fmt.Errorf("%w: tipo_pago debe ser %q o %q", domain.ErrInvalidInput,
			entity.TipoPagoEfectivo, entity.TipoPagoTransaccion)
	}
}

func validarLineas(lineas []dto.LineaVentaRequest) error {
	if len(lineas) == 0 {
		return fmt.Errorf("%w: la venta debe incluir al menos un producto", domain.ErrInvalidInput)
	}
	vistos := make(map[string]struct{}, len(lineas))
	for _, l := range lineas {
		if l.NombreProducto == "" {
			return fmt.Errorf("%w: nombre_producto es requerido en cada línea", domain.ErrInvalidInput)
		}
		if l.Cantidad <= 0 {
			return fmt.Errorf("%w: cantidad debe ser un entero positivo para %q", domain.ErrInvalidInput, l.NombreProducto)
		}
		// Cada producto va en una sola línea; el ticket guarda (ticket,
		// producto) como clave compuesta.
		if _, repetido := vistos[l.NombreProducto]; repetido {
			return fmt.Errorf("%w: el producto %q aparece en más de una línea", domain.ErrInvalidInput, l.NombreProducto)
		}
		vistos[l.NombreProducto] = struct{}{}
	}
	return nil
}

// CrearVenta registra una venta completa en una sola transacción: por cada
// línea (en orden de entrada) bloquea el producto, verifica stock, lo
// descuenta y congela el precio vigente en la línea. Cualquier fallo revierte
// todo, nunca queda una venta parcial.
func (uc *UseCase) CrearVenta(ctx context.Context, in dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	if err := validarLineas(in.Productos); err != nil {
		return nil, err
	}
	tipoPago, err := normalizarTipoPago(in.TipoPago)
	if err != nil {
		return nil, err
	}

	var out dto.VentaResponse
	err = uc.txRunner.Run(ctx, func(productoRepo repository.ProductoRepository, ventaRepo repository.VentaRepository) error {
		venta, err := ventaRepo.InsertVenta(tipoPago)
		if err != nil {
			return err
		}
		codigoVenta := uuid.New().String()
		idTicket, err := ventaRepo.InsertTicket(codigoVenta, venta.ID)
		if err != nil {
			return err
		}

		lineasResp := make([]dto.LineaVentaResponse, 0, len(in.Productos))
		for _, l := range in.Productos {
			p, err := productoRepo.GetByNombreForUpdate(l.NombreProducto)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %q no existe", domain.ErrNotFound, l.NombreProducto)
			}
			if p.Cantidad < l.Cantidad {
				return fmt.Errorf("%w: stock insuficiente para %q (disponible %d, solicitado %d)",
					domain.ErrInsufficientStock, p.Nombre, p.Cantidad, l.Cantidad)
			}
			if err := ventaRepo.InsertLinea(&entity.LineaTicket{
				IDTicket:       idTicket,
				IDProducto:     p.ID,
				Cantidad:       l.Cantidad,
				PrecioUnitario: p.Precio,
			}); err != nil {
				return err
			}
			if _, err := productoRepo.AjustarStock(p.ID, -l.Cantidad); err != nil {
				return err
			}
			lineasResp = append(lineasResp, dto.LineaVentaResponse{
				NombreProducto: p.Nombre,
				Cantidad:       l.Cantidad,
				Precio:         p.Precio,
			})
		}

		out = dto.VentaResponse{
			Mensaje:     "Venta registrada exitosamente",
			IDVenta:     venta.ID,
			IDTicket:    idTicket,
			CodigoVenta: codigoVenta,
			Fecha:       venta.Fecha,
			TipoPago:    tipoPago,
			Productos:   lineasResp,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// resolverVenta localiza la venta por exactamente una de sus dos claves.
func resolverVenta(ventaRepo repository.VentaRepository, idVenta int64, codigoVenta string) (*repository.VentaConTicket, error) {
	switch {
	case idVenta > 0 && codigoVenta != "":
		return nil, fmt.Errorf("%w: envíe id_venta o codigo_venta, no ambos", domain.ErrInvalidInput)
	case idVenta > 0:
		return ventaRepo.GetByIDVenta(idVenta)
	case codigoVenta != "":
		return ventaRepo.GetByCodigoVenta(codigoVenta)
	default:
		return nil, fmt.Errorf("%w: debe enviar id_venta o codigo_venta", domain.ErrInvalidInput)
	}
}

// ObtenerVenta devuelve la venta con sus líneas, buscando por id_venta o por
// codigo_venta (exactamente uno).
func (uc *UseCase) ObtenerVenta(ctx context.Context, idVenta int64, codigoVenta string) (*dto.VentaResponse, error) {
	vt, err := resolverVenta(uc.ventaRepo, idVenta, codigoVenta)
	if err != nil {
		return nil, err
	}
	if vt == nil {
		return nil, fmt.Errorf("%w: venta no encontrada", domain.ErrNotFound)
	}
	lineas, err := uc.ventaRepo.GetLineas(vt.Ticket.ID)
	if err != nil {
		return nil, err
	}
	return toVentaResponse(vt, lineas, ""), nil
}

// DeshacerVenta elimina la venta por completo reponiendo el stock de cada
// línea. Es un borrado físico: una segunda invocación sobre la misma clave
// devuelve NotFound.
func (uc *UseCase) DeshacerVenta(ctx context.Context, idVenta int64, codigoVenta string) error {
	return uc.txRunner.Run(ctx, func(productoRepo repository.ProductoRepository, ventaRepo repository.VentaRepository) error {
		vt, err := resolverVenta(ventaRepo, idVenta, codigoVenta)
		if err != nil {
			return err
		}
		if vt == nil {
			return fmt.Errorf("%w: venta no encontrada", domain.ErrNotFound)
		}
		lineas, err := ventaRepo.GetLineas(vt.Ticket.ID)
		if err != nil {
			return err
		}
		for _, l := range lineas {
			p, err := productoRepo.GetByIDForUpdate(l.IDProducto)
			if err != nil {
				return err
			}
			if p == nil {
				// Producto eliminado después de la venta: no queda stock
				// que reponer.
				continue
			}
			if _, err := productoRepo.AjustarStock(p.ID, l.Cantidad); err != nil {
				return err
			}
		}
		if err := ventaRepo.DeleteLineas(vt.Ticket.ID); err != nil {
			return err
		}
		if err := ventaRepo.DeleteTicket(vt.Ticket.ID); err != nil {
			return err
		}
		return ventaRepo.DeleteVenta(vt.Venta.ID)
	})
}

// ActualizarVenta cambia el tipo de pago y/o lleva líneas a una cantidad
// objetivo. La regla de stock es una sola: delta = objetivo - actual y
// stock -= delta, donde una línea eliminada tiene delta = -actual. Repetir
// la misma actualización con los mismos objetivos no mueve el stock.
func (uc *UseCase) ActualizarVenta(ctx context.Context, idVenta int64, in dto.ActualizarVentaRequest) (*dto.VentaResponse, error) {
	if in.TipoPago == nil && len(in.Productos) == 0 {
		return nil, fmt.Errorf("%w: debe enviar tipo_pago y/o productos", domain.ErrInvalidInput)
	}
	var tipoPago string
	if in.TipoPago != nil {
		var err error
		tipoPago, err = normalizarTipoPago(*in.TipoPago)
		if err != nil {
			return nil, err
		}
	}
	for _, l := range in.Productos {
		if l.NombreProducto == "" {
			return nil, fmt.Errorf("%w: nombre_producto es requerido en cada línea", domain.ErrInvalidInput)
		}
		if l.Cantidad < 0 {
			return nil, fmt.Errorf("%w: cantidad no puede ser negativa para %q", domain.ErrInvalidInput, l.NombreProducto)
		}
	}

	var out *dto.VentaResponse
	err := uc.txRunner.Run(ctx, func(productoRepo repository.ProductoRepository, ventaRepo repository.VentaRepository) error {
		vt, err := ventaRepo.GetByIDVenta(idVenta)
		if err != nil {
			return err
		}
		if vt == nil {
			return fmt.Errorf("%w: venta no encontrada", domain.ErrNotFound)
		}
		if in.TipoPago != nil {
			if err := ventaRepo.UpdateTipoPago(vt.Venta.ID, tipoPago); err != nil {
				return err
			}
			vt.Venta.TipoPago = tipoPago
		}

		for _, l := range in.Productos {
			p, err := productoRepo.GetByNombreForUpdate(l.NombreProducto)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %q no existe", domain.ErrNotFound, l.NombreProducto)
			}
			linea, err := ventaRepo.GetLinea(vt.Ticket.ID, p.ID)
			if err != nil {
				return err
			}
			actual := 0
			if linea != nil {
				actual = linea.Cantidad
			}
			delta := l.Cantidad - actual
			if delta > 0 && p.Cantidad < delta {
				return fmt.Errorf("%w: stock insuficiente para %q (disponible %d, requerido %d)",
					domain.ErrInsufficientStock, p.Nombre, p.Cantidad, delta)
			}
			switch {
			case l.Cantidad <= 0:
				// Línea eliminada: delta queda en -actual y se repone
				// exactamente lo que la línea descontaba.
				if linea == nil {
					continue
				}
				if err := ventaRepo.DeleteLinea(vt.Ticket.ID, p.ID); err != nil {
					return err
				}
			case linea == nil:
				if err := ventaRepo.InsertLinea(&entity.LineaTicket{
					IDTicket:       vt.Ticket.ID,
					IDProducto:     p.ID,
					Cantidad:       l.Cantidad,
					PrecioUnitario: p.Precio,
				}); err != nil {
					return err
				}
			default:
				if delta == 0 {
					continue
				}
				if err := ventaRepo.UpdateLinea(vt.Ticket.ID, p.ID, l.Cantidad); err != nil {
					return err
				}
			}
			if delta != 0 {
				if _, err := productoRepo.AjustarStock(p.ID, -delta); err != nil {
					return err
				}
			}
		}

		lineas, err := ventaRepo.GetLineas(vt.Ticket.ID)
		if err != nil {
			return err
		}
		out = toVentaResponse(vt, lineas, "Venta actualizada correctamente")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AnularProductos reduce líneas puntuales de una venta reponiendo el stock
// anulado. Una línea que nombra un producto sin línea en el ticket se ignora
// en silencio; solo un producto inexistente en el catálogo es NotFound.
func (uc *UseCase) AnularProductos(ctx context.Context, idVenta int64, in dto.AnularProductosRequest) (*dto.VentaResponse, error) {
	if err := validarLineas(in.Productos); err != nil {
		return nil, err
	}
	var out *dto.VentaResponse
	err := uc.txRunner.Run(ctx, func(productoRepo repository.ProductoRepository, ventaRepo repository.VentaRepository) error {
		vt, err := ventaRepo.GetByIDVenta(idVenta)
		if err != nil {
			return err
		}
		if vt == nil {
			return fmt.Errorf("%w: venta no encontrada", domain.ErrNotFound)
		}
		for _, l := range in.Productos {
			p, err := productoRepo.GetByNombreForUpdate(l.NombreProducto)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %q no existe", domain.ErrNotFound, l.NombreProducto)
			}
			linea, err := ventaRepo.GetLinea(vt.Ticket.ID, p.ID)
			if err != nil {
				return err
			}
			if linea == nil {
				continue
			}
			restante := linea.Cantidad - l.Cantidad
			if restante <= 0 {
				if err := ventaRepo.DeleteLinea(vt.Ticket.ID, p.ID); err != nil {
					return err
				}
				if _, err := productoRepo.AjustarStock(p.ID, linea.Cantidad); err != nil {
					return err
				}
				continue
			}
			if err := ventaRepo.UpdateLinea(vt.Ticket.ID, p.ID, restante); err != nil {
				return err
			}
			if _, err := productoRepo.AjustarStock(p.ID, l.Cantidad); err != nil {
				return err
			}
		}
		lineas, err := ventaRepo.GetLineas(vt.Ticket.ID)
		if err != nil {
			return err
		}
		out = toVentaResponse(vt, lineas, "Productos anulados correctamente")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListarVentas lista ventas con sus líneas, filtrando opcionalmente por
// coincidencia parcial de nombre de producto y/o código de venta.
func (uc *UseCase) ListarVentas(ctx context.Context, filtro repository.FiltroVentas) ([]dto.VentaResponse, error) {
	ventas, err := uc.ventaRepo.List(filtro)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for _, vt := range ventas {
		lineas, err := uc.ventaRepo.GetLineas(vt.Ticket.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toVentaResponse(vt, lineas, ""))
	}
	return items, nil
}

// TicketPDF genera el comprobante imprimible de la venta.
func (uc *UseCase) TicketPDF(ctx context.Context, idVenta int64, codigoVenta string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("%w: generación de comprobantes no disponible", domain.ErrInvalidInput)
	}
	venta, err := uc.ObtenerVenta(ctx, idVenta, codigoVenta)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Render(*venta)
}

func toVentaResponse(vt *repository.VentaConTicket, lineas []repository.LineaResuelta, mensaje string) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		Mensaje:     mensaje,
		IDVenta:     vt.Venta.ID,
		IDTicket:    vt.Ticket.ID,
		CodigoVenta: vt.Ticket.CodigoVenta,
		Fecha:       vt.Venta.Fecha,
		TipoPago:    vt.Venta.TipoPago,
		Productos:   make([]dto.LineaVentaResponse, 0, len(lineas)),
	}
	for _, l := range lineas {
		resp.Productos = append(resp.Productos, dto.LineaVentaResponse{
			NombreProducto: l.NombreProducto,
			Cantidad:       l.Cantidad,
			Precio:         l.PrecioUnitario,
		})
	}
	return resp
}
