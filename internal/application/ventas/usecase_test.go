package ventas_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tienduca/storefront-api/internal/application/dto"
	"github.com/tienduca/storefront-api/internal/application/ventas"
	"github.com/tienduca/storefront-api/internal/domain"
	"github.com/tienduca/storefront-api/internal/domain/entity"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

func nuevoUseCase(s *memStore) *ventas.UseCase {
	return ventas.NewUseCase(&memTxRunner{s: s}, &memVentaRepo{s: s}, nil, nil)
}

func linea(nombre string, cantidad int) dto.LineaVentaRequest {
	return dto.LineaVentaRequest{NombreProducto: nombre, Cantidad: cantidad}
}

// ──────────────────────────────────────────────────────────────────────────────
// CrearVenta
// ──────────────────────────────────────────────────────────────────────────────

// Escenario base: producto con stock 10, venta de 3, el stock queda en 7 y la
// venta se devuelve con su código externo.
func TestCrearVenta_DescuentaStock(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)

	out, err := uc.CrearVenta(context.Background(), dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 3)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.CodigoVenta, "la venta debe salir con código externo")
	assert.Equal(t, "Efectivo", out.TipoPago)
	require.Len(t, out.Productos, 1)
	assert.Equal(t, 3, out.Productos[0].Cantidad)
	assert.Equal(t, "5.5", out.Productos[0].Precio.String(), "la línea congela el precio vigente")

	assert.Equal(t, 7, s.productos[1].Cantidad, "stock 10 - 3 = 7")
}

func TestCrearVenta_StockInsuficiente(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)

	_, err := uc.CrearVenta(context.Background(), dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 15)},
		TipoPago:  "Efectivo",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Taza", "el mensaje debe nombrar el producto")
	assert.Equal(t, 10, s.productos[1].Cantidad, "el stock no debe moverse")
}

// Atomicidad: si la segunda línea falla, la primera tampoco persiste y el
// stock de ambos productos queda intacto.
func TestCrearVenta_FalloEnSegundaLineaRevierteTodo(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	s.agregarProducto("Plato", 2, 8)
	uc := nuevoUseCase(s)

	_, err := uc.CrearVenta(context.Background(), dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 4), linea("Plato", 5)},
		TipoPago:  "Efectivo",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, s.productos[1].Cantidad, "la línea ya procesada se revierte")
	assert.Equal(t, 2, s.productos[2].Cantidad)
	assert.Empty(t, s.ventas, "no debe quedar cabecera de venta")
	assert.Empty(t, s.tickets, "no debe quedar ticket")
	assert.Empty(t, s.lineas, "no deben quedar líneas")
}

func TestCrearVenta_ProductoInexistente(t *testing.T) {
	s := newMemStore()
	uc := nuevoUseCase(s)

	_, err := uc.CrearVenta(context.Background(), dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Fantasma", 1)},
		TipoPago:  "Efectivo",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrearVenta_Validaciones(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	_, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{TipoPago: "Efectivo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 0)},
		TipoPago:  "Efectivo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 1)},
		TipoPago:  "Cheque",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de pago fuera del enum")
}

// El mismo producto en dos líneas se rechaza de entrada en vez de estallar
// contra la clave compuesta del ticket; el stock no se toca.
func TestCrearVenta_ProductoRepetidoEnLineas(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)

	_, err := uc.CrearVenta(context.Background(), dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 2), linea("Taza", 3)},
		TipoPago:  "Efectivo",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Taza")
	assert.Equal(t, 10, s.productos[1].Cantidad, "nada se descuenta")
	assert.Empty(t, s.ventas, "no se crea venta alguna")
}

// El tipo de pago se acepta sin tilde y se canoniza.
func TestCrearVenta_TipoPagoSinTilde(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)

	out, err := uc.CrearVenta(context.Background(), dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 1)},
		TipoPago:  "transaccion",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TipoPagoTransaccion, out.TipoPago)
}

// ──────────────────────────────────────────────────────────────────────────────
// ObtenerVenta / DeshacerVenta
// ──────────────────────────────────────────────────────────────────────────────

func TestObtenerVenta_PorIDYPorCodigo(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 2)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)

	porID, err := uc.ObtenerVenta(ctx, creada.IDVenta, "")
	require.NoError(t, err)
	assert.Equal(t, creada.CodigoVenta, porID.CodigoVenta)

	porCodigo, err := uc.ObtenerVenta(ctx, 0, creada.CodigoVenta)
	require.NoError(t, err)
	assert.Equal(t, creada.IDVenta, porCodigo.IDVenta)
	require.Len(t, porCodigo.Productos, 1)
	assert.Equal(t, "Taza", porCodigo.Productos[0].NombreProducto)
}

func TestObtenerVenta_ClavesInvalidas(t *testing.T) {
	s := newMemStore()
	uc := nuevoUseCase(s)
	ctx := context.Background()

	_, err := uc.ObtenerVenta(ctx, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin claves")

	_, err = uc.ObtenerVenta(ctx, 1, "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ambas claves a la vez")

	_, err = uc.ObtenerVenta(ctx, 99, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Reversibilidad: crear y deshacer deja el stock exactamente como estaba y la
// venta desaparece; deshacer de nuevo es NotFound.
func TestDeshacerVenta_RestauraStock(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 3)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)
	require.Equal(t, 7, s.productos[1].Cantidad)

	require.NoError(t, uc.DeshacerVenta(ctx, 0, creada.CodigoVenta))
	assert.Equal(t, 10, s.productos[1].Cantidad, "el stock vuelve al valor previo a la venta")
	assert.Empty(t, s.ventas)
	assert.Empty(t, s.tickets)
	assert.Empty(t, s.lineas)

	_, err = uc.ObtenerVenta(ctx, 0, creada.CodigoVenta)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.DeshacerVenta(ctx, 0, creada.CodigoVenta)
	assert.ErrorIs(t, err, domain.ErrNotFound, "deshacer dos veces no es posible")
}

// ──────────────────────────────────────────────────────────────────────────────
// ActualizarVenta — regla única de delta: stock -= (objetivo - actual)
// ──────────────────────────────────────────────────────────────────────────────

func TestActualizarVenta_SubirYBajarCantidad(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 3)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)
	require.Equal(t, 7, s.productos[1].Cantidad)

	// Subir de 3 a 5: delta 2, stock 7 -> 5.
	out, err := uc.ActualizarVenta(ctx, creada.IDVenta, dto.ActualizarVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 5)},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, s.productos[1].Cantidad)
	require.Len(t, out.Productos, 1)
	assert.Equal(t, 5, out.Productos[0].Cantidad)

	// Bajar de 5 a 1: delta -4, stock 5 -> 9.
	_, err = uc.ActualizarVenta(ctx, creada.IDVenta, dto.ActualizarVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 9, s.productos[1].Cantidad)
}

// Idempotencia: repetir la misma actualización con los mismos objetivos no
// mueve el stock la segunda vez.
func TestActualizarVenta_Idempotente(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 3)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)

	req := dto.ActualizarVentaRequest{Productos: []dto.LineaVentaRequest{linea("Taza", 5)}}
	_, err = uc.ActualizarVenta(ctx, creada.IDVenta, req)
	require.NoError(t, err)
	despuesPrimera := s.productos[1].Cantidad

	_, err = uc.ActualizarVenta(ctx, creada.IDVenta, req)
	require.NoError(t, err)
	assert.Equal(t, despuesPrimera, s.productos[1].Cantidad,
		"repetir la actualización con el mismo objetivo debe ser un no-op sobre el stock")
}

// Llevar una línea a cero la elimina y repone su cantidad completa.
func TestActualizarVenta_CantidadCeroEliminaLinea(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 4)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)
	require.Equal(t, 6, s.productos[1].Cantidad)

	out, err := uc.ActualizarVenta(ctx, creada.IDVenta, dto.ActualizarVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 0)},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, s.productos[1].Cantidad, "la cantidad completa vuelve al stock")
	assert.Empty(t, out.Productos, "la línea ya no existe")
	assert.Empty(t, s.lineas)
}

// Una línea nueva en la actualización se agrega congelando el precio actual.
func TestActualizarVenta_AgregaLineaNueva(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	s.agregarProducto("Plato", 6, 8)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 2)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)

	out, err := uc.ActualizarVenta(ctx, creada.IDVenta, dto.ActualizarVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Plato", 3)},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, s.productos[2].Cantidad, "stock del plato 6 - 3 = 3")
	assert.Len(t, out.Productos, 2)
}

func TestActualizarVenta_DeltaSinStockFalla(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 3)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)
	require.Equal(t, 7, s.productos[1].Cantidad)

	// Objetivo 11: delta 8 > stock 7.
	_, err = uc.ActualizarVenta(ctx, creada.IDVenta, dto.ActualizarVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 11)},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 7, s.productos[1].Cantidad, "ante el fallo nada cambia")

	linea0, err := (&memVentaRepo{s: s}).GetLinea(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, linea0.Cantidad, "la línea conserva su cantidad original")
}

func TestActualizarVenta_SoloTipoPago(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 1)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)

	nuevo := "Transacción"
	out, err := uc.ActualizarVenta(ctx, creada.IDVenta, dto.ActualizarVentaRequest{TipoPago: &nuevo})
	require.NoError(t, err)
	assert.Equal(t, "Transacción", out.TipoPago)
	assert.Equal(t, 9, s.productos[1].Cantidad, "solo cambió el tipo de pago")
}

func TestActualizarVenta_SinCampos(t *testing.T) {
	s := newMemStore()
	uc := nuevoUseCase(s)
	_, err := uc.ActualizarVenta(context.Background(), 1, dto.ActualizarVentaRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// AnularProductos
// ──────────────────────────────────────────────────────────────────────────────

func TestAnularProductos_ReduceYRepone(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 5)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)
	require.Equal(t, 5, s.productos[1].Cantidad)

	out, err := uc.AnularProductos(ctx, creada.IDVenta, dto.AnularProductosRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 2)},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, s.productos[1].Cantidad, "se reponen las 2 unidades anuladas")
	require.Len(t, out.Productos, 1)
	assert.Equal(t, 3, out.Productos[0].Cantidad)
}

// Anular más de lo que la línea tiene la elimina y repone su cantidad
// original completa, no la solicitada.
func TestAnularProductos_ExcesoEliminaLineaYReponeOriginal(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 4)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)
	require.Equal(t, 6, s.productos[1].Cantidad)

	out, err := uc.AnularProductos(ctx, creada.IDVenta, dto.AnularProductosRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 9)},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, s.productos[1].Cantidad, "vuelven las 4 originales, no 9")
	assert.Empty(t, out.Productos)
}

// Producto en catálogo pero sin línea en el ticket: se ignora en silencio.
func TestAnularProductos_LineaAusenteSeIgnora(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	s.agregarProducto("Plato", 6, 8)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 2)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)

	out, err := uc.AnularProductos(ctx, creada.IDVenta, dto.AnularProductosRequest{
		Productos: []dto.LineaVentaRequest{linea("Plato", 1)},
	})
	require.NoError(t, err, "una línea que no está en el ticket no es error")
	assert.Equal(t, 6, s.productos[2].Cantidad, "el stock del plato no se toca")
	assert.Len(t, out.Productos, 1)
}

// Producto inexistente en el catálogo: sí es NotFound.
func TestAnularProductos_ProductoInexistenteEsError(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	creada, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 2)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)

	_, err = uc.AnularProductos(ctx, creada.IDVenta, dto.AnularProductosRequest{
		Productos: []dto.LineaVentaRequest{linea("Fantasma", 1)},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 8, s.productos[1].Cantidad, "el fallo revierte cualquier cambio parcial")
}

// ──────────────────────────────────────────────────────────────────────────────
// ListarVentas
// ──────────────────────────────────────────────────────────────────────────────

func TestListarVentas_FiltroPorProducto(t *testing.T) {
	s := newMemStore()
	s.agregarProducto("Taza", 10, 5.5)
	s.agregarProducto("Plato", 10, 8)
	uc := nuevoUseCase(s)
	ctx := context.Background()

	_, err := uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Taza", 1)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)
	_, err = uc.CrearVenta(ctx, dto.CrearVentaRequest{
		Productos: []dto.LineaVentaRequest{linea("Plato", 1)},
		TipoPago:  "Efectivo",
	})
	require.NoError(t, err)

	todas, err := uc.ListarVentas(ctx, repository.FiltroVentas{})
	require.NoError(t, err)
	assert.Len(t, todas, 2)

	soloTazas, err := uc.ListarVentas(ctx, repository.FiltroVentas{NombreProducto: "taz"})
	require.NoError(t, err)
	require.Len(t, soloTazas, 1)
	assert.Equal(t, "Taza", soloTazas[0].Productos[0].NombreProducto)
}
