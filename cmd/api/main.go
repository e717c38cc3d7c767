package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/loretomm/fattura-api/internal/application/auth"
	"github.com/loretomm/fattura-api/internal/application/billing"
	"github.com/loretomm/fattura-api/internal/infrastructure/fatturapa"
	infrapdf "github.com/loretomm/fattura-api/internal/infrastructure/pdf"
	"github.com/loretomm/fattura-api/internal/infrastructure/shopify"
	httpRouter "github.com/loretomm/fattura-api/internal/interfaces/http"
	"github.com/loretomm/fattura-api/pkg/config"
	"github.com/loretomm/fattura-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("shop", cfg.Shopify.ShopDomain).
		Msg("iniciando aplicación")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración incompleta")
	}

	// Fetch de pedidos y construcción de la fattura
	shopifyClient := shopify.NewClient(cfg.Shopify)
	xmlBuilder := fatturapa.NewBuilder(cfg.Fattura)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Fattura)
	invoiceUC := billing.NewGenerateInvoiceUseCase(shopifyClient, xmlBuilder, pdfGenerator)

	authUC := auth.NewAuthUseCase(cfg.Auth, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
		// WriteTimeout generoso: la llamada síncrona a Shopify puede tardar
		// hasta el timeout del cliente (15 s).
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fattura API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		InvoiceUC: invoiceUC,
		JWTSecret: cfg.JWT.Secret,
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
