package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/loretomm/fattura-api/internal/application/billing"
	"github.com/loretomm/fattura-api/internal/application/dto"
	"github.com/loretomm/fattura-api/internal/domain"
)

// InvoiceHandler maneja la generación de fatture (protegido).
type InvoiceHandler struct {
	uc *billing.GenerateInvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.GenerateInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// GenerateXML genera la fattura XML y la entrega como descarga.
// POST /api/invoices/xml
func (h *InvoiceHandler) GenerateXML(c *fiber.Ctx) error {
	return h.generate(c, h.uc.GenerateXML)
}

// GeneratePDF genera la copia cortesía en PDF.
// POST /api/invoices/pdf
func (h *InvoiceHandler) GeneratePDF(c *fiber.Ctx) error {
	return h.generate(c, h.uc.GeneratePDF)
}

// generate comparte el parseo del body, el mapeo de errores y los headers de
// descarga entre los dos formatos.
func (h *InvoiceHandler) generate(
	c *fiber.Ctx,
	gen func(ctx context.Context, in dto.GenerateInvoiceRequest) (*dto.InvoiceFile, error),
) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	file, err := gen(c.Context(), in)
	if err != nil {
		return mapBillingError(c, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Content)
}

// mapBillingError traduce la taxonomía de errores del dominio a respuestas HTTP.
// El not-found y el fallo de transporte se distinguen a propósito: el operador
// debe saber si el pedido no existe o si Shopify no respondió.
func mapBillingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_number, protocol_number y invoice_date (YYYY-MM-DD) requeridos"})
	case errors.Is(err, domain.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ORDER_NOT_FOUND", Message: "ordine non trovato"})
	case errors.Is(err, domain.ErrMissingBillingAddress):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_BILLING_ADDRESS", Message: "el pedido no tiene dirección de facturación"})
	case errors.Is(err, domain.ErrUpstream):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SHOPIFY_ERROR", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
