package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tienduca/storefront-api/internal/application/analytics"
	"github.com/tienduca/storefront-api/internal/application/auth"
	"github.com/tienduca/storefront-api/internal/application/catalogo"
	"github.com/tienduca/storefront-api/internal/application/usuarios"
	"github.com/tienduca/storefront-api/internal/application/ventas"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogoUC  *catalogo.UseCase
	VentasUC    *ventas.UseCase
	AuthUC      *auth.UseCase
	UsuariosUC  *usuarios.UseCase
	DashboardUC *analytics.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/verify-2fa", authHandler.Verify2FA)
	authGroup.Post("/forgot-username", authHandler.ForgotUsername)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/verify-token/:token", authHandler.VerifyToken)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos
	productos := protected.Group("/productos")
	productoHandler := NewProductoHandler(deps.CatalogoUC)
	productos.Post("/", productoHandler.Crear)
	productos.Get("/", productoHandler.Listar)
	productos.Post("/stock-por-codigo", productoHandler.StockPorCodigo)
	productos.Get("/:id", productoHandler.Obtener)
	productos.Patch("/:id", productoHandler.Actualizar)
	productos.Delete("/:id", productoHandler.Eliminar)
	productos.Put("/:id/stock", productoHandler.ActualizarStock)
	productos.Get("/:id/qr", productoHandler.GenerarQR)

	// Ventas
	ventasGroup := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentasUC)
	ventasGroup.Post("/", ventaHandler.Crear)
	ventasGroup.Get("/", ventaHandler.Listar)
	ventasGroup.Get("/detalle", ventaHandler.Obtener)
	ventasGroup.Get("/reporte", ventaHandler.Reporte)
	ventasGroup.Delete("/deshacer/:codigo_venta", ventaHandler.Deshacer)
	ventasGroup.Get("/:codigo_venta/ticket", ventaHandler.TicketPDF)
	ventasGroup.Put("/:id", ventaHandler.Actualizar)
	ventasGroup.Patch("/:id/productos", ventaHandler.AnularProductos)

	// Usuarios
	usuariosGroup := protected.Group("/usuarios")
	usuarioHandler := NewUsuarioHandler(deps.UsuariosUC)
	usuariosGroup.Post("/", usuarioHandler.Crear)
	usuariosGroup.Get("/", usuarioHandler.Listar)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/productos-resumen", dashboardHandler.ProductosResumen)
}
