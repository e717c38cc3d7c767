package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loretomm/fattura-api/internal/domain"
)

// newTestClient apunta el cliente al servidor de prueba.
func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		baseURL:     srv.URL,
		accessToken: "shpat_test_token",
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

const ordenHat = `{
  "orders": [
    {
      "id": 450789469,
      "name": "#5552",
      "currency": "EUR",
      "total_price": "39.98",
      "subtotal_price": "39.98",
      "billing_address": {
        "first_name": "Anna",
        "last_name": "Bianchi",
        "address1": "Via Roma 1",
        "zip": "50100",
        "city": "Firenze",
        "province_code": "FI",
        "country_code": "IT"
      },
      "line_items": [
        {"title": "Hat", "quantity": 2, "price": "19.99"}
      ]
    }
  ]
}`

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrderByName_PedidoEncontrado(t *testing.T) {
	var gotPath, gotName, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotName = r.URL.Query().Get("name")
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ordenHat))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	order, err := c.GetOrderByName(context.Background(), "5552")
	require.NoError(t, err)

	// Request: endpoint, filtro name con marcador y token en el header
	assert.Equal(t, "/orders.json", gotPath)
	assert.Equal(t, "#5552", gotName)
	assert.Equal(t, "shpat_test_token", gotToken)

	// Respuesta: primer pedido sin transformar
	assert.Equal(t, int64(450789469), order.ID)
	assert.Equal(t, "#5552", order.Name)
	assert.Equal(t, "39.98", order.TotalPrice)
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, "Hat", order.LineItems[0].Title)
	assert.Equal(t, 2, order.LineItems[0].Quantity)
	assert.Equal(t, "19.99", order.LineItems[0].Price)
	require.NotNil(t, order.BillingAddress)
	assert.Equal(t, "Anna", order.BillingAddress.FirstName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Taxonomía de resultados: not-found vs fallo de transporte
// ──────────────────────────────────────────────────────────────────────────────

// 200 con lista vacía es not-found, no un error de transporte.
func TestGetOrderByName_ListaVacia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orders": []}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetOrderByName(context.Background(), "9999")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.NotErrorIs(t, err, domain.ErrUpstream)
}

func TestGetOrderByName_CredencialesRechazadas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors": "[API] Invalid API key or access token"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetOrderByName(context.Background(), "5552")
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.NotErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestGetOrderByName_ErrorServidor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetOrderByName(context.Background(), "5552")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGetOrderByName_RespuestaNoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>mantenimiento</html>"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetOrderByName(context.Background(), "5552")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGetOrderByName_FalloDeRed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // cerrado a propósito: la conexión debe fallar

	_, err := newTestClient(srv).GetOrderByName(context.Background(), "5552")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGetOrderByName_ContextoCancelado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv).GetOrderByName(ctx, "5552")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación en el borde del fetch
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrderByName_NumeroVacio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no debe llegar ninguna petición con número vacío")
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetOrderByName(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un pedido sin billing_address se rechaza ya en el fetch: ningún documento
// puede construirse sin cessionario.
func TestGetOrderByName_SinBillingAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orders": [{"id": 1, "name": "#5553", "line_items": []}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetOrderByName(context.Background(), "5553")
	assert.ErrorIs(t, err, domain.ErrMissingBillingAddress)
}

// Si Shopify devuelve varios pedidos para el filtro, se usa el primero.
func TestGetOrderByName_VariosResultados(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"orders": [
			{"id": 1, "name": "#5552", "billing_address": {"first_name": "Anna"}, "line_items": []},
			{"id": 2, "name": "#5552", "billing_address": {"first_name": "Marco"}, "line_items": []}
		]}`))
	}))
	defer srv.Close()

	order, err := newTestClient(srv).GetOrderByName(context.Background(), "5552")
	require.NoError(t, err)
	assert.Equal(t, int64(1), order.ID)
	assert.Equal(t, "Anna", order.BillingAddress.FirstName)
}
