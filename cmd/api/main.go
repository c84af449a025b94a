package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/tienduca/storefront-api/internal/application/analytics"
	"github.com/tienduca/storefront-api/internal/application/auth"
	"github.com/tienduca/storefront-api/internal/application/catalogo"
	"github.com/tienduca/storefront-api/internal/application/usuarios"
	"github.com/tienduca/storefront-api/internal/application/ventas"
	"github.com/tienduca/storefront-api/internal/infrastructure/images"
	"github.com/tienduca/storefront-api/internal/infrastructure/mail"
	infrapdf "github.com/tienduca/storefront-api/internal/infrastructure/pdf"
	"github.com/tienduca/storefront-api/internal/infrastructure/postgres"
	httpRouter "github.com/tienduca/storefront-api/internal/interfaces/http"
	"github.com/tienduca/storefront-api/pkg/config"
	"github.com/tienduca/storefront-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productoRepo := postgres.NewProductoRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	qrGenerator := images.NewQRGenerator(256)
	ticketRenderer := infrapdf.NewTicketRenderer(cfg.App.Name)
	mailer := mail.NewGomailSender(cfg.SMTP, cfg.App.Name)

	catalogoUC := catalogo.NewUseCase(txRunner, productoRepo, qrGenerator,
		cfg.Codigos.PrefijoBarras, cfg.Codigos.MaxIntentos)
	ventasUC := ventas.NewUseCase(txRunner, ventaRepo, analyticsRepo, ticketRenderer)
	usuariosUC := usuarios.NewUseCase(usuarioRepo)
	dashboardUC := appanalytics.NewUseCase(analyticsRepo)
	authUC := auth.NewUseCase(usuarioRepo, auth.NewCodeStore(), mailer,
		cfg.JWT, cfg.SMTP.FrontendURL, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.SMTP.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Storefront API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogoUC:  catalogoUC,
		VentasUC:    ventasUC,
		AuthUC:      authUC,
		UsuariosUC:  usuariosUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
