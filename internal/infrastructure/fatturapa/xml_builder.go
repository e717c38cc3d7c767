// Package fatturapa construye el documento XML FatturaPA (formato FPR12)
// a partir de un pedido Shopify.
package fatturapa

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/loretomm/fattura-api/internal/domain"
	"github.com/loretomm/fattura-api/internal/domain/entity"
	"github.com/loretomm/fattura-api/pkg/config"
	pkgfatturapa "github.com/loretomm/fattura-api/pkg/fatturapa"
)

// NsFatturaPA namespace oficial del tracciato FatturaPA v1.2.
const NsFatturaPA = "http://ivaservizi.agenziaentrate.gov.it/docs/xsd/fatture/v1.2"

// Options opciones por documento. Consolidan las variantes del builder en un
// único camino de código: el campo opcional se emite solo si el caller lo pide.
type Options struct {
	// CodiceFiscaleCliente, si no está vacío, se emite como <CodiceFiscale>
	// dentro de CessionarioCommittente/DatiAnagrafici.
	CodiceFiscaleCliente string
}

// Builder construye el XML FatturaPA. Es puro: mismo (pedido, protocollo,
// data, opciones) produce siempre los mismos bytes.
type Builder struct {
	cfg config.FatturaConfig
}

// NewBuilder crea el builder con la identidad fiscal del cedente inyectada.
func NewBuilder(cfg config.FatturaConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build genera el []byte del documento: declaración XML, UTF-8, indentado,
// raíz p:FatturaElettronica con atributo versione.
func (b *Builder) Build(order *entity.Order, protocolNumber string, invoiceDate time.Time, opts Options) ([]byte, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if protocolNumber == "" {
		return nil, fmt.Errorf("fatturapa: numero di protocollo vacío: %w", domain.ErrInvalidInput)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("p:FatturaElettronica")
	root.CreateAttr("versione", b.cfg.FormatoTrasmissione)
	root.CreateAttr("xmlns:p", NsFatturaPA)

	b.writeHeader(root, order, protocolNumber, opts)
	if err := b.writeBody(root, order, protocolNumber, invoiceDate); err != nil {
		return nil, err
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("fatturapa: serializar documento: %w", err)
	}
	return out, nil
}

// writeHeader escribe FatturaElettronicaHeader: trasmissione, cedente y cessionario.
func (b *Builder) writeHeader(root *etree.Element, order *entity.Order, protocolNumber string, opts Options) {
	header := root.CreateElement("FatturaElettronicaHeader")

	// DatiTrasmissione
	trasmissione := header.CreateElement("DatiTrasmissione")
	idTrasmittente := trasmissione.CreateElement("IdTrasmittente")
	writeText(idTrasmittente, "IdPaese", b.cfg.IDPaese)
	writeText(idTrasmittente, "IdCodice", b.cfg.IDCodice)
	writeText(trasmissione, "ProgressivoInvio", protocolNumber)
	writeText(trasmissione, "FormatoTrasmissione", b.cfg.FormatoTrasmissione)
	writeText(trasmissione, "CodiceDestinatario", b.cfg.CodiceDestinatario)

	// CedentePrestatore (identidad fiscal del vendedor, fija por configuración)
	cedente := header.CreateElement("CedentePrestatore")
	anagrafici := cedente.CreateElement("DatiAnagrafici")
	idFiscale := anagrafici.CreateElement("IdFiscaleIVA")
	writeText(idFiscale, "IdPaese", b.cfg.IDPaese)
	writeText(idFiscale, "IdCodice", b.cfg.IDCodice)
	writeText(anagrafici, "CodiceFiscale", b.cfg.CodiceFiscale)
	anagrafica := anagrafici.CreateElement("Anagrafica")
	writeText(anagrafica, "Denominazione", b.cfg.Denominazione)
	writeText(anagrafici, "RegimeFiscale", b.cfg.RegimeFiscale)

	sede := cedente.CreateElement("Sede")
	writeText(sede, "Indirizzo", b.cfg.Indirizzo)
	writeText(sede, "CAP", b.cfg.CAP)
	writeText(sede, "Comune", b.cfg.Comune)
	writeText(sede, "Provincia", b.cfg.Provincia)
	writeText(sede, "Nazione", b.cfg.Nazione)

	// CessionarioCommittente (comprador, desde billing_address del pedido)
	billing := order.BillingAddress
	cliente := header.CreateElement("CessionarioCommittente")
	datiCliente := cliente.CreateElement("DatiAnagrafici")
	if opts.CodiceFiscaleCliente != "" {
		writeText(datiCliente, "CodiceFiscale", opts.CodiceFiscaleCliente)
	}
	anagraficaCliente := datiCliente.CreateElement("Anagrafica")
	writeText(anagraficaCliente, "Nome", billing.FirstName)
	writeText(anagraficaCliente, "Cognome", billing.LastName)
	sedeCliente := cliente.CreateElement("Sede")
	writeText(sedeCliente, "Indirizzo", billing.Address1)
	writeText(sedeCliente, "CAP", billing.Zip)
	writeText(sedeCliente, "Comune", billing.City)
	writeText(sedeCliente, "Provincia", billing.ProvinceCode)
	writeText(sedeCliente, "Nazione", billing.CountryCode)
}

// writeBody escribe FatturaElettronicaBody: dati generali, líneas y riepilogo.
func (b *Builder) writeBody(root *etree.Element, order *entity.Order, protocolNumber string, invoiceDate time.Time) error {
	body := root.CreateElement("FatturaElettronicaBody")

	generali := body.CreateElement("DatiGenerali")
	documento := generali.CreateElement("DatiGeneraliDocumento")
	writeText(documento, "TipoDocumento", b.cfg.TipoDocumento)
	writeText(documento, "Divisa", b.cfg.Divisa)
	writeText(documento, "Data", invoiceDate.Format("2006-01-02"))
	writeText(documento, "Numero", protocolNumber)
	writeText(documento, "ImportoTotaleDocumento", order.TotalPrice)
	writeText(documento, "Causale", "Vendita ordine Shopify "+order.Name)

	dettagli := body.CreateElement("DatiBeniServizi")
	for idx, item := range order.LineItems {
		if err := b.writeLinea(dettagli, idx+1, item); err != nil {
			return err
		}
	}

	imposta, err := b.imposta(order)
	if err != nil {
		return err
	}
	riepilogo := dettagli.CreateElement("DatiRiepilogo")
	writeText(riepilogo, "AliquotaIVA", b.cfg.AliquotaIVA)
	writeText(riepilogo, "ImponibileImporto", order.SubtotalPrice)
	writeText(riepilogo, "Imposta", imposta)
	writeText(riepilogo, "EsigibilitaIVA", pkgfatturapa.EsigibilitaImmediata)
	return nil
}

// writeLinea escribe un DettaglioLinee con numeración 1-based.
func (b *Builder) writeLinea(dettagli *etree.Element, lineNum int, item entity.LineItem) error {
	prezzoTotale := item.Price
	if b.cfg.ComputeTotals {
		total, err := lineTotal(item)
		if err != nil {
			return err
		}
		prezzoTotale = total
	}

	linea := dettagli.CreateElement("DettaglioLinee")
	writeText(linea, "NumeroLinea", strconv.Itoa(lineNum))
	writeText(linea, "Descrizione", item.Title)
	writeText(linea, "Quantita", strconv.Itoa(item.Quantity))
	writeText(linea, "UnitaMisura", pkgfatturapa.UnitaPezzo)
	writeText(linea, "PrezzoUnitario", item.Price)
	writeText(linea, "PrezzoTotale", prezzoTotale)
	writeText(linea, "AliquotaIVA", b.cfg.AliquotaIVA)
	return nil
}

// imposta devuelve el importe del IVA del riepilogo.
// En modo compatibilidad se emite "0.00" (comportamiento histórico que los
// consumidores aguas abajo esperan byte a byte); con ComputeTotals se calcula
// imponibile × aliquota.
func (b *Builder) imposta(order *entity.Order) (string, error) {
	if !b.cfg.ComputeTotals {
		return "0.00", nil
	}
	imponibile, err := decimal.NewFromString(order.SubtotalPrice)
	if err != nil {
		return "", fmt.Errorf("fatturapa: subtotal_price %q no es decimal: %w", order.SubtotalPrice, err)
	}
	aliquota, err := decimal.NewFromString(b.cfg.AliquotaIVA)
	if err != nil {
		return "", fmt.Errorf("fatturapa: aliquota %q no es decimal: %w", b.cfg.AliquotaIVA, err)
	}
	imposta := imponibile.Mul(aliquota).Div(decimal.NewFromInt(100)).Round(2)
	return imposta.StringFixed(2), nil
}

// lineTotal calcula prezzo unitario × quantità con 2 decimales.
func lineTotal(item entity.LineItem) (string, error) {
	price, err := decimal.NewFromString(item.Price)
	if err != nil {
		return "", fmt.Errorf("fatturapa: price %q no es decimal: %w", item.Price, err)
	}
	return price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2).StringFixed(2), nil
}

func writeText(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).SetText(value)
}
