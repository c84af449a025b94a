package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tienduca/storefront-api/internal/application/analytics"
)

// DashboardHandler widgets agregados para la pantalla principal.
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// ProductosResumen godoc
// @Summary      Widgets del dashboard de productos
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductosResumenResponse
// @Router       /api/dashboard/productos-resumen [get]
func (h *DashboardHandler) ProductosResumen(c *fiber.Ctx) error {
	out, err := h.uc.ProductosResumen(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
