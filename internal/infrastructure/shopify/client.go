// Package shopify implementa el acceso a la Admin REST API de Shopify.
// Una sola operación: buscar un pedido por su display name (#<numero>).
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/loretomm/fattura-api/internal/domain"
	"github.com/loretomm/fattura-api/internal/domain/entity"
	"github.com/loretomm/fattura-api/pkg/config"
)

const (
	// orderMarker es el carácter con el que Shopify prefija el display name del pedido.
	orderMarker = "#"

	headerAccessToken = "X-Shopify-Access-Token"
)

// Client consume la Admin REST API de Shopify.
// Usa net/http de la stdlib; no requiere el SDK oficial.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient construye el cliente con la configuración inyectada (dominio de la
// tienda, versión de API y token). Timeout de red de 15 s; la API de Shopify
// responde normalmente en menos de un segundo.
func NewClient(cfg config.ShopifyConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL(),
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// ordersResponse forma de la respuesta de GET /orders.json.
type ordersResponse struct {
	Orders []entity.Order `json:"orders"`
}

// GetOrderByName busca el pedido cuyo display name es "#"+orderNumber y
// devuelve el primer resultado, ya validado.
//
// Taxonomía de resultados:
//   - 200 con lista no vacía  → primer pedido (validado: billing_address obligatoria).
//   - 200 con lista vacía     → domain.ErrOrderNotFound.
//   - cualquier otro status o fallo de red → error de transporte envuelto,
//     distinguible del not-found por el caller.
func (c *Client) GetOrderByName(ctx context.Context, orderNumber string) (*entity.Order, error) {
	if orderNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	// El filtro name exige el marcador; se escapa como %23 en la query.
	q := url.Values{}
	q.Set("name", orderMarker+orderNumber)
	reqURL := c.baseURL + "/orders.json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: crear request: %w", err)
	}
	req.Header.Set(headerAccessToken, c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("shopify: timeout o cancelación (%v): %w", ctx.Err(), domain.ErrUpstream)
		}
		return nil, fmt.Errorf("shopify: llamada HTTP fallida (%v): %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20)) // max 4 MB
	if err != nil {
		return nil, fmt.Errorf("shopify: leer respuesta (%v): %w", err, domain.ErrUpstream)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// sigue abajo
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("shopify: credenciales rechazadas (HTTP %d): %w", resp.StatusCode, domain.ErrUpstream)
	default:
		return nil, fmt.Errorf("shopify: HTTP %d: %s: %w", resp.StatusCode, truncate(rawBody, 256), domain.ErrUpstream)
	}

	var out ordersResponse
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return nil, fmt.Errorf("shopify: deserializar respuesta (%v): %w", err, domain.ErrUpstream)
	}
	if len(out.Orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}

	order := out.Orders[0]
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("shopify: pedido %s inválido: %w", order.Name, err)
	}
	return &order, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
