package dto

// GenerateInvoiceRequest body para POST /api/invoices/xml y /api/invoices/pdf.
// OrderNumber admite el marcador "#" inicial (se elimina); InvoiceDate en ISO
// YYYY-MM-DD. CodiceFiscale es opcional: si viene, el XML incluye el elemento
// CodiceFiscale del cliente.
type GenerateInvoiceRequest struct {
	OrderNumber    string `json:"order_number"`
	ProtocolNumber string `json:"protocol_number"`
	InvoiceDate    string `json:"invoice_date"`
	CodiceFiscale  string `json:"codice_fiscale,omitempty"`
}

// InvoiceFile archivo generado listo para descarga.
type InvoiceFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// OrderPreviewResponse resumen del pedido para que el operador confirme la
// coincidencia antes de generar la fattura.
type OrderPreviewResponse struct {
	Name          string              `json:"name"`
	Customer      string              `json:"customer"`
	City          string              `json:"city"`
	Currency      string              `json:"currency"`
	SubtotalPrice string              `json:"subtotal_price"`
	TotalPrice    string              `json:"total_price"`
	LineItems     []OrderLineResponse `json:"line_items"`
}

// OrderLineResponse línea del pedido en el preview.
type OrderLineResponse struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}
