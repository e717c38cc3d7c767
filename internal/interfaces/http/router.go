package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/loretomm/fattura-api/internal/application/auth"
	"github.com/loretomm/fattura-api/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	InvoiceUC *billing.GenerateInvoiceUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Orders (protegido): preview del pedido antes de facturar
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.InvoiceUC)
	orders.Get("/:number", orderHandler.GetByNumber)

	// Invoices (protegido): XML fiscal y copia cortesía PDF
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/xml", invoiceHandler.GenerateXML)
	invoices.Post("/pdf", invoiceHandler.GeneratePDF)
}
