package entity

import "github.com/loretomm/fattura-api/internal/domain"

// Order representa el pedido tal como lo devuelve la Admin REST API de Shopify.
// Es de solo lectura para este sistema: se consulta fresco en cada petición,
// nunca se cachea ni se muta. Los importes monetarios llegan como string
// decimal y se conservan así para que los campos eco del XML sean byte a byte
// idénticos a lo que entrega Shopify.
type Order struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"` // display name con marcador, ej. "#5552"
	Currency       string          `json:"currency"`
	TotalPrice     string          `json:"total_price"`
	SubtotalPrice  string          `json:"subtotal_price"`
	BillingAddress *BillingAddress `json:"billing_address"`
	LineItems      []LineItem      `json:"line_items"`
}

// BillingAddress dirección de facturación del pedido.
type BillingAddress struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Address1     string `json:"address1"`
	Zip          string `json:"zip"`
	City         string `json:"city"`
	ProvinceCode string `json:"province_code"`
	CountryCode  string `json:"country_code"`
}

// LineItem línea del pedido (producto, cantidad, precio unitario).
type LineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"` // precio unitario, string decimal
}

// Validate verifica que el pedido sirve para construir una fattura.
// La dirección de facturación es obligatoria; se valida aquí, en la frontera
// del fetch, para no fallar a mitad de la construcción del XML.
// line_items puede estar vacío (el documento sale sin DettaglioLinee).
func (o *Order) Validate() error {
	if o == nil {
		return domain.ErrInvalidInput
	}
	if o.BillingAddress == nil {
		return domain.ErrMissingBillingAddress
	}
	return nil
}
