package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/loretomm/fattura-api/internal/application/dto"
	"github.com/loretomm/fattura-api/internal/domain"
	"github.com/loretomm/fattura-api/internal/infrastructure/fatturapa"
)

// GenerateInvoiceUseCase orquesta el flujo fetch → validate → build.
// Sin estado entre invocaciones: cada petición consulta el pedido fresco y
// construye el documento desde cero.
type GenerateInvoiceUseCase struct {
	fetcher      OrderFetcher
	xmlBuilder   *fatturapa.Builder
	pdfGenerator InvoicePDFGenerator
}

// NewGenerateInvoiceUseCase construye el caso de uso.
func NewGenerateInvoiceUseCase(
	fetcher OrderFetcher,
	xmlBuilder *fatturapa.Builder,
	pdfGenerator InvoicePDFGenerator,
) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{
		fetcher:      fetcher,
		xmlBuilder:   xmlBuilder,
		pdfGenerator: pdfGenerator,
	}
}

// GenerateXML genera la fattura XML para descarga.
// Retorna:
//   - (*dto.InvoiceFile, nil)       si todo sale bien.
//   - domain.ErrInvalidInput        si faltan campos o la fecha no es ISO.
//   - domain.ErrOrderNotFound       si Shopify no tiene el pedido.
//   - error de transporte envuelto  si la llamada a Shopify falla.
func (uc *GenerateInvoiceUseCase) GenerateXML(ctx context.Context, in dto.GenerateInvoiceRequest) (*dto.InvoiceFile, error) {
	orderNumber, invoiceDate, err := uc.parseInput(in)
	if err != nil {
		return nil, err
	}

	order, err := uc.fetcher.GetOrderByName(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	xmlBytes, err := uc.xmlBuilder.Build(order, in.ProtocolNumber, invoiceDate, fatturapa.Options{
		CodiceFiscaleCliente: in.CodiceFiscale,
	})
	if err != nil {
		return nil, err
	}

	return &dto.InvoiceFile{
		Filename:    fmt.Sprintf("fattura_%s.xml", orderNumber),
		ContentType: "application/xml",
		Content:     xmlBytes,
	}, nil
}

// GeneratePDF genera la copia cortesía en PDF del mismo documento.
func (uc *GenerateInvoiceUseCase) GeneratePDF(ctx context.Context, in dto.GenerateInvoiceRequest) (*dto.InvoiceFile, error) {
	orderNumber, invoiceDate, err := uc.parseInput(in)
	if err != nil {
		return nil, err
	}

	order, err := uc.fetcher.GetOrderByName(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := uc.pdfGenerator.GenerateInvoicePDF(ctx, order, in.ProtocolNumber, invoiceDate)
	if err != nil {
		return nil, err
	}

	return &dto.InvoiceFile{
		Filename:    fmt.Sprintf("fattura_%s.pdf", orderNumber),
		ContentType: "application/pdf",
		Content:     pdfBytes,
	}, nil
}

// PreviewOrder busca el pedido y devuelve el resumen para el operador.
func (uc *GenerateInvoiceUseCase) PreviewOrder(ctx context.Context, orderNumber string) (*dto.OrderPreviewResponse, error) {
	orderNumber = normalizeOrderNumber(orderNumber)
	if orderNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	order, err := uc.fetcher.GetOrderByName(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.OrderLineResponse, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		lines = append(lines, dto.OrderLineResponse{
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return &dto.OrderPreviewResponse{
		Name:          order.Name,
		Customer:      strings.TrimSpace(order.BillingAddress.FirstName + " " + order.BillingAddress.LastName),
		City:          order.BillingAddress.City,
		Currency:      order.Currency,
		SubtotalPrice: order.SubtotalPrice,
		TotalPrice:    order.TotalPrice,
		LineItems:     lines,
	}, nil
}

// parseInput normaliza y valida los tres campos del operador.
func (uc *GenerateInvoiceUseCase) parseInput(in dto.GenerateInvoiceRequest) (orderNumber string, invoiceDate time.Time, err error) {
	orderNumber = normalizeOrderNumber(in.OrderNumber)
	if orderNumber == "" || strings.TrimSpace(in.ProtocolNumber) == "" {
		return "", time.Time{}, domain.ErrInvalidInput
	}
	invoiceDate, err = time.Parse("2006-01-02", in.InvoiceDate)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("data di emissione %q no es ISO YYYY-MM-DD: %w", in.InvoiceDate, domain.ErrInvalidInput)
	}
	return orderNumber, invoiceDate, nil
}

// normalizeOrderNumber quita espacios y el marcador "#" inicial que el
// operador suele pegar junto al número.
func normalizeOrderNumber(s string) string {
	return strings.TrimPrefix(strings.TrimSpace(s), "#")
}
