package fatturapa_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loretomm/fattura-api/internal/domain"
	"github.com/loretomm/fattura-api/internal/domain/entity"
	"github.com/loretomm/fattura-api/internal/infrastructure/fatturapa"
	"github.com/loretomm/fattura-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testFatturaConfig() config.FatturaConfig {
	return config.FatturaConfig{
		IDPaese:             "IT",
		IDCodice:            "01087530521",
		CodiceFiscale:       "01087530521",
		Denominazione:       "SUPERDUPER S.R.L.",
		RegimeFiscale:       "RF19",
		Indirizzo:           "VIA DI CITTADELLA 39R",
		CAP:                 "50144",
		Comune:              "FIRENZE",
		Provincia:           "FI",
		Nazione:             "IT",
		FormatoTrasmissione: "FPR12",
		CodiceDestinatario:  "0000000",
		TipoDocumento:       "TD01",
		Divisa:              "EUR",
		AliquotaIVA:         "22.00",
	}
}

func testOrder() *entity.Order {
	return &entity.Order{
		ID:            450789469,
		Name:          "#5552",
		Currency:      "EUR",
		TotalPrice:    "39.98",
		SubtotalPrice: "39.98",
		BillingAddress: &entity.BillingAddress{
			FirstName:    "Anna",
			LastName:     "Bianchi",
			Address1:     "Via Roma 1",
			Zip:          "50100",
			City:         "Firenze",
			ProvinceCode: "FI",
			CountryCode:  "IT",
		},
		LineItems: []entity.LineItem{
			{Title: "Hat", Quantity: 2, Price: "19.99"},
		},
	}
}

var testDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de referencia: ordine #5552, protocollo 10, data 2024-03-01
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_EscenarioReferencia(t *testing.T) {
	b := fatturapa.NewBuilder(testFatturaConfig())

	out, err := b.Build(testOrder(), "10", testDate, fatturapa.Options{})
	require.NoError(t, err)
	xml := string(out)

	assert.True(t, strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`),
		"el documento debe abrir con la declaración XML UTF-8")
	assert.Contains(t, xml, `<p:FatturaElettronica versione="FPR12" xmlns:p="http://ivaservizi.agenziaentrate.gov.it/docs/xsd/fatture/v1.2">`,
		"raíz con namespace y atributo versione constantes")

	// Documento: eco exacto de protocollo, data ISO y totale del pedido
	assert.Contains(t, xml, "<Numero>10</Numero>")
	assert.Contains(t, xml, "<Data>2024-03-01</Data>")
	assert.Contains(t, xml, "<ImportoTotaleDocumento>39.98</ImportoTotaleDocumento>")
	assert.Contains(t, xml, "<Causale>Vendita ordine Shopify #5552</Causale>")

	// Línea única, numeración 1-based
	assert.Contains(t, xml, "<NumeroLinea>1</NumeroLinea>")
	assert.Contains(t, xml, "<Descrizione>Hat</Descrizione>")
	assert.Contains(t, xml, "<Quantita>2</Quantita>")
	assert.Contains(t, xml, "<UnitaMisura>pz</UnitaMisura>")

	// Cessionario desde billing_address
	assert.Contains(t, xml, "<Nome>Anna</Nome>")
	assert.Contains(t, xml, "<Cognome>Bianchi</Cognome>")
	assert.Contains(t, xml, "<Comune>Firenze</Comune>")

	// Cedente fijo por configuración
	assert.Contains(t, xml, "<Denominazione>SUPERDUPER S.R.L.</Denominazione>")
	assert.Contains(t, xml, "<RegimeFiscale>RF19</RegimeFiscale>")
	assert.Contains(t, xml, "<CodiceDestinatario>0000000</CodiceDestinatario>")
	assert.Contains(t, xml, "<ProgressivoInvio>10</ProgressivoInvio>")
}

// TestBuild_Determinista verifica que el mismo input produce siempre los
// mismos bytes (el documento es función pura de sus tres entradas).
func TestBuild_Determinista(t *testing.T) {
	b := fatturapa.NewBuilder(testFatturaConfig())

	out1, err1 := b.Build(testOrder(), "10", testDate, fatturapa.Options{})
	out2, err2 := b.Build(testOrder(), "10", testDate, fatturapa.Options{})

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, out1, out2, "mismo input debe producir bytes idénticos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo compatibilidad vs ComputeTotals
// ──────────────────────────────────────────────────────────────────────────────

// En modo compatibilidad (por defecto) PrezzoTotale repite el precio unitario
// e Imposta sale "0.00", igual que el comportamiento histórico.
func TestBuild_ModoCompatibilidad(t *testing.T) {
	b := fatturapa.NewBuilder(testFatturaConfig())

	out, err := b.Build(testOrder(), "10", testDate, fatturapa.Options{})
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, "<PrezzoUnitario>19.99</PrezzoUnitario>")
	assert.Contains(t, xml, "<PrezzoTotale>19.99</PrezzoTotale>",
		"sin ComputeTotals el totale de línea es eco del unitario")
	assert.Contains(t, xml, "<Imposta>0.00</Imposta>")
	assert.Contains(t, xml, "<ImponibileImporto>39.98</ImponibileImporto>")
	assert.Contains(t, xml, "<EsigibilitaIVA>I</EsigibilitaIVA>")
}

// Con ComputeTotals el totale de línea es prezzo × quantità y la imposta es
// imponibile × aliquota.
func TestBuild_ComputeTotals(t *testing.T) {
	cfg := testFatturaConfig()
	cfg.ComputeTotals = true
	b := fatturapa.NewBuilder(cfg)

	out, err := b.Build(testOrder(), "10", testDate, fatturapa.Options{})
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, "<PrezzoTotale>39.98</PrezzoTotale>", "19.99 × 2 = 39.98")
	// 39.98 × 22% = 8.7956 → 8.80
	assert.Contains(t, xml, "<Imposta>8.80</Imposta>")
}

func TestBuild_ComputeTotals_PrecioNoDecimal(t *testing.T) {
	cfg := testFatturaConfig()
	cfg.ComputeTotals = true
	b := fatturapa.NewBuilder(cfg)

	order := testOrder()
	order.LineItems[0].Price = "no-es-un-numero"

	_, err := b.Build(order, "10", testDate, fatturapa.Options{})
	assert.Error(t, err, "un precio no decimal debe fallar en modo ComputeTotals")
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas
// ──────────────────────────────────────────────────────────────────────────────

// El número de DettaglioLinee es igual al de line_items, en el mismo orden y
// con numeración secuencial desde 1.
func TestBuild_VariasLineas(t *testing.T) {
	b := fatturapa.NewBuilder(testFatturaConfig())

	order := testOrder()
	order.LineItems = []entity.LineItem{
		{Title: "Hat", Quantity: 2, Price: "19.99"},
		{Title: "Scarf", Quantity: 1, Price: "10.00"},
		{Title: "Gloves", Quantity: 3, Price: "5.50"},
	}

	out, err := b.Build(order, "10", testDate, fatturapa.Options{})
	require.NoError(t, err)
	xml := string(out)

	assert.Equal(t, 3, strings.Count(xml, "<DettaglioLinee>"))
	assert.Contains(t, xml, "<NumeroLinea>1</NumeroLinea>")
	assert.Contains(t, xml, "<NumeroLinea>2</NumeroLinea>")
	assert.Contains(t, xml, "<NumeroLinea>3</NumeroLinea>")

	// Orden de emisión igual al orden de los line_items
	hat := strings.Index(xml, "<Descrizione>Hat</Descrizione>")
	scarf := strings.Index(xml, "<Descrizione>Scarf</Descrizione>")
	gloves := strings.Index(xml, "<Descrizione>Gloves</Descrizione>")
	assert.True(t, hat < scarf && scarf < gloves, "las líneas deben conservar el orden del pedido")
}

// Un pedido sin líneas produce cero DettaglioLinee pero el documento conserva
// los dati generali y el riepilogo.
func TestBuild_SinLineas(t *testing.T) {
	b := fatturapa.NewBuilder(testFatturaConfig())

	order := testOrder()
	order.LineItems = nil

	out, err := b.Build(order, "10", testDate, fatturapa.Options{})
	require.NoError(t, err)
	xml := string(out)

	assert.Equal(t, 0, strings.Count(xml, "<DettaglioLinee>"))
	assert.Contains(t, xml, "<DatiGeneraliDocumento>")
	assert.Contains(t, xml, "<DatiRiepilogo>")
}

// ──────────────────────────────────────────────────────────────────────────────
// Opciones y validación
// ──────────────────────────────────────────────────────────────────────────────

// La opción CodiceFiscaleCliente añade el elemento dentro del cessionario.
func TestBuild_CodiceFiscaleCliente(t *testing.T) {
	b := fatturapa.NewBuilder(testFatturaConfig())

	out, err := b.Build(testOrder(), "10", testDate, fatturapa.Options{
		CodiceFiscaleCliente: "BNCNNA80A41D612X",
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<CodiceFiscale>BNCNNA80A41D612X</CodiceFiscale>")
}

func TestBuild_SinCodiceFiscaleCliente(t *testing.T) {
	b := fatturapa.NewBuilder(testFatturaConfig())

	out, err := b.Build(testOrder(), "10", testDate, fatturapa.Options{})
	require.NoError(t, err)
	// Solo el CodiceFiscale del cedente (uno), no el del cliente
	assert.Equal(t, 1, strings.Count(string(out), "<CodiceFiscale>"))
}

func TestBuild_SinBillingAddress(t *testing.T) {
	b := fatturapa.NewBuilder(testFatturaConfig())

	order := testOrder()
	order.BillingAddress = nil

	_, err := b.Build(order, "10", testDate, fatturapa.Options{})
	assert.ErrorIs(t, err, domain.ErrMissingBillingAddress)
}

func TestBuild_ProtocolloVacio(t *testing.T) {
	b := fatturapa.NewBuilder(testFatturaConfig())

	_, err := b.Build(testOrder(), "", testDate, fatturapa.Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Los caracteres especiales del pedido deben salir escapados, no romper el XML.
func TestBuild_EscapaCaracteresEspeciales(t *testing.T) {
	b := fatturapa.NewBuilder(testFatturaConfig())

	order := testOrder()
	order.LineItems[0].Title = `Cappello "B&B" <edizione limitata>`

	out, err := b.Build(order, "10", testDate, fatturapa.Options{})
	require.NoError(t, err)
	xml := string(out)

	assert.Contains(t, xml, "B&amp;B")
	assert.NotContains(t, xml, "<edizione limitata>")
}
