package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tienduca/storefront-api/internal/application/dto"
	"github.com/tienduca/storefront-api/internal/application/ventas"
	"github.com/tienduca/storefront-api/internal/domain/repository"
)

// VentaHandler maneja las peticiones HTTP de ventas.
type VentaHandler struct {
	uc *ventas.UseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *ventas.UseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// Crear godoc
// @Summary      Registrar venta
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearVentaRequest  true  "Líneas y tipo de pago"
// @Success      201   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearVentaRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CrearVenta(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Obtener godoc
// @Summary      Consultar venta por id_venta o codigo_venta
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id_venta      query  int     false  "ID interno"
// @Param        codigo_venta  query  string  false  "Código externo"
// @Success      200  {object}  dto.VentaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/detalle [get]
func (h *VentaHandler) Obtener(c *fiber.Ctx) error {
	idVenta := int64(c.QueryInt("id_venta", 0))
	codigoVenta := c.Query("codigo_venta")
	out, err := h.uc.ObtenerVenta(c.Context(), idVenta, codigoVenta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Listar godoc
// @Summary      Listar ventas con filtros opcionales
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        nombre_producto  query  string  false  "Filtro parcial por producto"
// @Param        codigo_venta     query  string  false  "Filtro parcial por código"
// @Success      200  {array}  dto.VentaResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) Listar(c *fiber.Ctx) error {
	filtro := repository.FiltroVentas{
		NombreProducto: c.Query("nombre_producto"),
		CodigoVenta:    c.Query("codigo_venta"),
	}
	out, err := h.uc.ListarVentas(c.Context(), filtro)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Actualizar godoc
// @Summary      Actualizar tipo de pago y/o líneas de una venta
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la venta"
// @Param        body  body  dto.ActualizarVentaRequest  true  "Cambios"
// @Success      200   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [put]
func (h *VentaHandler) Actualizar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Entrada inválida", Detail: "id debe ser un entero positivo"})
	}
	var in dto.ActualizarVentaRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ActualizarVenta(c.Context(), int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AnularProductos godoc
// @Summary      Anular líneas puntuales de una venta
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la venta"
// @Param        body  body  dto.AnularProductosRequest  true  "Líneas a anular"
// @Success      200   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/productos [patch]
func (h *VentaHandler) AnularProductos(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Entrada inválida", Detail: "id debe ser un entero positivo"})
	}
	var in dto.AnularProductosRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AnularProductos(c.Context(), int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Deshacer godoc
// @Summary      Deshacer (eliminar) una venta reponiendo stock
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        codigo_venta  path  string  true  "Código externo de la venta"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/deshacer/{codigo_venta} [delete]
func (h *VentaHandler) Deshacer(c *fiber.Ctx) error {
	codigoVenta := c.Params("codigo_venta")
	if err := h.uc.DeshacerVenta(c.Context(), 0, codigoVenta); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Success: true, Message: "Venta deshecha correctamente"})
}

// Reporte godoc
// @Summary      Reporte agregado de ventas por rango de fechas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        fecha_inicio  query  string  true  "Fecha inicial (YYYY-MM-DD)"
// @Param        fecha_fin     query  string  true  "Fecha final (YYYY-MM-DD)"
// @Success      200  {object}  dto.ReporteVentasResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ventas/reporte [get]
func (h *VentaHandler) Reporte(c *fiber.Ctx) error {
	inicio, err := time.Parse("2006-01-02", c.Query("fecha_inicio"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Entrada inválida", Detail: "fecha_inicio debe tener formato YYYY-MM-DD"})
	}
	fin, err := time.Parse("2006-01-02", c.Query("fecha_fin"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Entrada inválida", Detail: "fecha_fin debe tener formato YYYY-MM-DD"})
	}
	out, err := h.uc.GenerarReporte(c.Context(), inicio, fin)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TicketPDF godoc
// @Summary      Comprobante PDF de una venta
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        codigo_venta  path  string  true  "Código externo de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{codigo_venta}/ticket [get]
func (h *VentaHandler) TicketPDF(c *fiber.Ctx) error {
	codigoVenta := c.Params("codigo_venta")
	pdfBytes, err := h.uc.TicketPDF(c.Context(), 0, codigoVenta)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ticket-`+codigoVenta+`.pdf"`)
	return c.Send(pdfBytes)
}
