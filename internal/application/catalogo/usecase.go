// Package catalogo contiene los casos de uso del catálogo de productos y el
// libro de stock: alta con generación de códigos, ajustes de inventario y
// consultas.
package catalogo

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienduca/storefront-api/internal/application/dto"
	"github.com/tienduca/storefront-api/internal/domain"
	"github.com/tienduca/storefront-api/internal/domain/codigo"
	"github.com/tienduca/storefront-api/internal/domain/entity"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

// UseCase casos de uso del catálogo. El stock (producto.cantidad) solo se
// muta aquí y en el motor de ventas, siempre con la fila bloqueada dentro de
// una transacción.
type UseCase struct {
	txRunner     TxRunner
	productoRepo repository.ProductoRepository
	qr           QRRenderer

	prefijoBarras string
	maxIntentos   int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewUseCase construye el caso de uso. prefijoBarras vacío usa el default;
// maxIntentos <= 0 usa 30.
func NewUseCase(txRunner TxRunner, productoRepo repository.ProductoRepository, qr QRRenderer, prefijoBarras string, maxIntentos int) *UseCase {
	if maxIntentos <= 0 {
		maxIntentos = 30
	}
	return &UseCase{
		txRunner:      txRunner,
		productoRepo:  productoRepo,
		qr:            qr,
		prefijoBarras: prefijoBarras,
		maxIntentos:   maxIntentos,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CrearProducto registra el producto y le asigna un código de barras EAN-13
// único y un token QR, todo en una sola transacción.
func (uc *UseCase) CrearProducto(ctx context.Context, in dto.CrearProductoRequest) (*dto.CrearProductoResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, fmt.Errorf("%w: nombre es requerido", domain.ErrInvalidInput)
	}
	if in.Cantidad < 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser un entero no negativo", domain.ErrInvalidInput)
	}
	if in.Precio.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: precio debe ser no negativo", domain.ErrInvalidInput)
	}

	var out dto.CrearProductoResponse
	err := uc.txRunner.Run(ctx, func(productoRepo repository.ProductoRepository, _ repository.VentaRepository) error {
		// Chequeo preventivo; el constraint único cubre la carrera.
		existente, err := productoRepo.GetByNombre(in.Nombre)
		if err != nil {
			return err
		}
		if existente != nil {
			return domain.ErrDuplicate
		}

		id, err := productoRepo.Create(&entity.Producto{
			Nombre:      in.Nombre,
			Descripcion: in.Descripcion,
			Cantidad:    in.Cantidad,
			Precio:      in.Precio,
			IDCategoria: in.IDCategoria,
			ImagenURL:   in.ImagenURL,
		})
		if err != nil {
			return err
		}

		barras, err := uc.generarBarrasUnico(productoRepo)
		if err != nil {
			return err
		}
		if err := productoRepo.InsertCodigoBarras(&entity.CodigoBarras{Codigo: barras, IDProducto: id}); err != nil {
			return err
		}

		tokenQR := uuid.New().String()
		if err := productoRepo.InsertCodigoQR(&entity.CodigoQR{Codigo: tokenQR, IDProducto: id}); err != nil {
			return err
		}

		out = dto.CrearProductoResponse{
			Mensaje:      "Producto registrado exitosamente",
			IDProducto:   id,
			CodigoBarras: barras,
			CodigoQR:     tokenQR,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// generarBarrasUnico intenta hasta maxIntentos generar un EAN-13 que no
// exista ya en codigo_barras.
func (uc *UseCase) generarBarrasUnico(productoRepo repository.ProductoRepository) (string, error) {
	for i := 0; i < uc.maxIntentos; i++ {
		uc.mu.Lock()
		candidato, err := codigo.Generar(uc.prefijoBarras, uc.rng)
		uc.mu.Unlock()
		if err != nil {
			return "", err
		}
		existe, err := productoRepo.ExisteCodigoBarras(candidato)
		if err != nil {
			return "", err
		}
		if !existe {
			return candidato, nil
		}
	}
	return "", domain.ErrExhaustedRetries
}

// AumentarStock suma cantidad (entero positivo) al stock del producto y
// devuelve la cantidad resultante.
func (uc *UseCase) AumentarStock(ctx context.Context, idProducto int64, cantidad int) (*dto.StockResponse, error) {
	if cantidad <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser un entero positivo mayor a 0", domain.ErrInvalidInput)
	}
	var out dto.StockResponse
	err := uc.txRunner.Run(ctx, func(productoRepo repository.ProductoRepository, _ repository.VentaRepository) error {
		p, err := productoRepo.GetByIDForUpdate(idProducto)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		nueva, err := productoRepo.AjustarStock(p.ID, cantidad)
		if err != nil {
			return err
		}
		out = dto.StockResponse{Mensaje: "Stock actualizado correctamente", IDProducto: p.ID, NuevaCantidad: nueva}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AumentarStockPorCodigo resuelve el producto por su código de barras y
// delega en AumentarStock dentro de la misma transacción.
func (uc *UseCase) AumentarStockPorCodigo(ctx context.Context, codigoBarras string, cantidad int) (*dto.StockResponse, error) {
	if codigoBarras == "" {
		return nil, fmt.Errorf("%w: codigo es requerido", domain.ErrInvalidInput)
	}
	if cantidad <= 0 {
		return nil, fmt.Errorf("%w: cantidad debe ser un entero positivo mayor a 0", domain.ErrInvalidInput)
	}
	var out dto.StockResponse
	err := uc.txRunner.Run(ctx, func(productoRepo repository.ProductoRepository, _ repository.VentaRepository) error {
		p, err := productoRepo.GetByCodigoBarras(codigoBarras)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: ningún producto tiene el código %q", domain.ErrNotFound, codigoBarras)
		}
		if _, err := productoRepo.GetByIDForUpdate(p.ID); err != nil {
			return err
		}
		nueva, err := productoRepo.AjustarStock(p.ID, cantidad)
		if err != nil {
			return err
		}
		out = dto.StockResponse{Mensaje: "Stock actualizado correctamente", IDProducto: p.ID, NuevaCantidad: nueva}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ActualizarDetalles actualización parcial de nombre/descripción/precio/
// categoría/imagen. Requiere al menos un campo; revalida unicidad del nombre.
func (uc *UseCase) ActualizarDetalles(ctx context.Context, idProducto int64, in dto.ActualizarDetallesRequest) (*dto.ProductoResponse, error) {
	if in.Nombre == nil && in.Descripcion == nil && in.Precio == nil && in.IDCategoria == nil && in.ImagenURL == nil {
		return nil, fmt.Errorf("%w: debe enviar al menos un campo a actualizar", domain.ErrInvalidInput)
	}
	if in.Nombre != nil && strings.TrimSpace(*in.Nombre) == "" {
		return nil, fmt.Errorf("%w: nombre no puede ser vacío", domain.ErrInvalidInput)
	}
	if in.Precio != nil && in.Precio.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: precio debe ser no negativo", domain.ErrInvalidInput)
	}

	var out *dto.ProductoResponse
	err := uc.txRunner.Run(ctx, func(productoRepo repository.ProductoRepository, _ repository.VentaRepository) error {
		p, err := productoRepo.GetByID(idProducto)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if in.Nombre != nil && *in.Nombre != p.Nombre {
			otro, err := productoRepo.GetByNombre(*in.Nombre)
			if err != nil {
				return err
			}
			if otro != nil && otro.ID != p.ID {
				return domain.ErrDuplicate
			}
			p.Nombre = *in.Nombre
		}
		if in.Descripcion != nil {
			p.Descripcion = in.Descripcion
		}
		if in.Precio != nil {
			p.Precio = *in.Precio
		}
		if in.IDCategoria != nil {
			p.IDCategoria = in.IDCategoria
		}
		if in.ImagenURL != nil {
			p.ImagenURL = in.ImagenURL
		}
		if err := productoRepo.Update(p); err != nil {
			return err
		}
		out = toProductoResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EliminarProducto borra primero los códigos dependientes y luego el
// producto, en una transacción.
func (uc *UseCase) EliminarProducto(ctx context.Context, idProducto int64) error {
	return uc.txRunner.Run(ctx, func(productoRepo repository.ProductoRepository, _ repository.VentaRepository) error {
		if err := productoRepo.DeleteCodigosDeProducto(idProducto); err != nil {
			return err
		}
		return productoRepo.Delete(idProducto)
	})
}

// ObtenerProducto lectura puntual.
func (uc *UseCase) ObtenerProducto(ctx context.Context, idProducto int64) (*dto.ProductoResponse, error) {
	p, err := uc.productoRepo.GetByID(idProducto)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductoResponse(p), nil
}

// ListarProductos listado paginado.
func (uc *UseCase) ListarProductos(ctx context.Context, page dto.PageRequest) ([]dto.ProductoResponse, error) {
	page.DefaultPage()
	list, err := uc.productoRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return items, nil
}

// GenerarQRProducto devuelve el token QR del producto y su imagen como data URL.
func (uc *UseCase) GenerarQRProducto(ctx context.Context, idProducto int64) (*dto.QRProductoResponse, error) {
	c, err := uc.productoRepo.GetCodigoQR(idProducto)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	dataURL, err := uc.qr.DataURL(c.Codigo)
	if err != nil {
		return nil, fmt.Errorf("generar QR: %w", err)
	}
	return &dto.QRProductoResponse{IDProducto: idProducto, CodigoQR: c.Codigo, QRDataURL: dataURL}, nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		IDProducto:  p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Cantidad:    p.Cantidad,
		Precio:      p.Precio,
		IDCategoria: p.IDCategoria,
		ImagenURL:   p.ImagenURL,
	}
}
