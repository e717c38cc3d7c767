package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/loretomm/fattura-api/internal/application/billing"
	"github.com/loretomm/fattura-api/internal/application/dto"
)

// OrderHandler consulta de pedidos Shopify (protegido).
type OrderHandler struct {
	uc *billing.GenerateInvoiceUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *billing.GenerateInvoiceUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// GetByNumber devuelve el resumen del pedido para que el operador confirme la
// coincidencia antes de generar la fattura.
// GET /api/orders/:number
func (h *OrderHandler) GetByNumber(c *fiber.Ctx) error {
	number := c.Params("number")
	if number == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numero ordine requerido"})
	}
	preview, err := h.uc.PreviewOrder(c.Context(), number)
	if err != nil {
		return mapBillingError(c, err)
	}
	return c.JSON(preview)
}
