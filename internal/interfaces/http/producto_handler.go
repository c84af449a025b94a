package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tienduca/storefront-api/internal/application/catalogo"
	"github.com/tienduca/storefront-api/internal/application/dto"
)

// ProductoHandler maneja las peticiones HTTP de productos.
type ProductoHandler struct {
	uc *catalogo.UseCase
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *catalogo.UseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc}
}

// Crear godoc
// @Summary      Registrar producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearProductoRequest  true  "Datos del producto"
// @Success      201   {object}  dto.CrearProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearProductoRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CrearProducto(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Listar godoc
// @Summary      Listar productos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.ProductoResponse
// @Router       /api/productos [get]
func (h *ProductoHandler) Listar(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.ListarProductos(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Obtener godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductoHandler) Obtener(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Entrada inválida", Detail: "id debe ser un entero positivo"})
	}
	out, err := h.uc.ObtenerProducto(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ActualizarStock godoc
// @Summary      Aumentar stock de un producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ActualizarStockRequest  true  "Cantidad a sumar"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/stock [put]
func (h *ProductoHandler) ActualizarStock(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Entrada inválida", Detail: "id debe ser un entero positivo"})
	}
	var in dto.ActualizarStockRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AumentarStock(c.Context(), int64(id), in.Cantidad)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StockPorCodigo godoc
// @Summary      Aumentar stock por código de barras
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockPorCodigoRequest  true  "Código y cantidad"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/stock-por-codigo [post]
func (h *ProductoHandler) StockPorCodigo(c *fiber.Ctx) error {
	var in dto.StockPorCodigoRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AumentarStockPorCodigo(c.Context(), in.Codigo, in.Cantidad)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Actualizar godoc
// @Summary      Actualizar detalles del producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ActualizarDetallesRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [patch]
func (h *ProductoHandler) Actualizar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Entrada inválida", Detail: "id debe ser un entero positivo"})
	}
	var in dto.ActualizarDetallesRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ActualizarDetalles(c.Context(), int64(id), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Eliminar godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [delete]
func (h *ProductoHandler) Eliminar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Entrada inválida", Detail: "id debe ser un entero positivo"})
	}
	if err := h.uc.EliminarProducto(c.Context(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Success: true, Message: "Producto eliminado correctamente"})
}

// GenerarQR godoc
// @Summary      Imagen QR del producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.QRProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/qr [get]
func (h *ProductoHandler) GenerarQR(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Entrada inválida", Detail: "id debe ser un entero positivo"})
	}
	out, err := h.uc.GenerarQRProducto(c.Context(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
