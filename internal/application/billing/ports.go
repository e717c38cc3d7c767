package billing

import (
	"context"
	"time"

	"github.com/loretomm/fattura-api/internal/domain/entity"
)

// OrderFetcher define el puerto de entrada de pedidos.
// La implementación concreta consulta la Admin API de Shopify; para tests se
// puede inyectar un stub.
type OrderFetcher interface {
	// GetOrderByName busca el pedido por su número (sin marcador "#").
	// Devuelve domain.ErrOrderNotFound si no hay coincidencia; los fallos de
	// transporte se propagan como errores envueltos distinguibles.
	GetOrderByName(ctx context.Context, orderNumber string) (*entity.Order, error)
}

// InvoicePDFGenerator define el puerto de salida para la copia cortesía en PDF.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, order *entity.Order, protocolNumber string, invoiceDate time.Time) ([]byte, error)
}
