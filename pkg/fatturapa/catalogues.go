// Package fatturapa contiene catálogos y validaciones alineados a las
// specifiche tecniche della Fatturazione Elettronica (Agenzia delle Entrate,
// formato FatturaPA v1.2).
package fatturapa

// =============================================================================
// Formato Trasmissione (blocco DatiTrasmissione/FormatoTrasmissione)
// =============================================================================

const (
	FormatoPrivati = "FPR12" // Fattura verso privati (B2B/B2C)
	FormatoPA      = "FPA12" // Fattura verso Pubblica Amministrazione
)

// ValidFormatoTrasmissione formatos de transmisión admitidos por el SdI.
var ValidFormatoTrasmissione = map[string]bool{
	FormatoPrivati: true,
	FormatoPA:      true,
}

// =============================================================================
// Regime Fiscale (blocco CedentePrestatore/DatiAnagrafici/RegimeFiscale)
// Códigos RF del anexo técnico; subconjunto de uso frecuente.
// =============================================================================

const (
	RegimeOrdinario          = "RF01" // Regime ordinario
	RegimeContribuentiMinimi = "RF02" // Contribuenti minimi
	RegimeAgricoltura        = "RF04" // Agricoltura e attività connesse
	RegimeVenditaSali        = "RF05" // Vendita sali e tabacchi
	RegimeEditoria           = "RF08" // Editoria
	RegimeAgenzieViaggi      = "RF11" // Agenzie viaggi e turismo
	RegimeForfettario        = "RF19" // Regime forfettario
)

// ValidRegimeFiscale códigos de régimen fiscal válidos.
var ValidRegimeFiscale = map[string]bool{
	RegimeOrdinario: true, RegimeContribuentiMinimi: true, RegimeAgricoltura: true,
	RegimeVenditaSali: true, RegimeEditoria: true, RegimeAgenzieViaggi: true,
	RegimeForfettario: true,
}

// =============================================================================
// Tipo Documento (blocco DatiGeneraliDocumento/TipoDocumento)
// =============================================================================

const (
	TipoFattura             = "TD01" // Fattura
	TipoAcconto             = "TD02" // Acconto/anticipo su fattura
	TipoNotaCredito         = "TD04" // Nota di credito
	TipoNotaDebito          = "TD05" // Nota di debito
	TipoFatturaSemplificata = "TD07" // Fattura semplificata
)

// ValidTipoDocumento tipos de documento válidos.
var ValidTipoDocumento = map[string]bool{
	TipoFattura: true, TipoAcconto: true, TipoNotaCredito: true,
	TipoNotaDebito: true, TipoFatturaSemplificata: true,
}

// =============================================================================
// Esigibilità IVA (blocco DatiRiepilogo/EsigibilitaIVA)
// =============================================================================

const (
	EsigibilitaImmediata = "I" // IVA ad esigibilità immediata
	EsigibilitaDifferita = "D" // IVA ad esigibilità differita
	EsigibilitaScissione = "S" // Scissione dei pagamenti (split payment)
)

// =============================================================================
// CodiceDestinatario
// =============================================================================

const (
	// CodiceDestinatarioDefault se usa cuando el cliente no tiene código SdI
	// (la factura queda disponible en el cassetto fiscale).
	CodiceDestinatarioDefault = "0000000"
)

// =============================================================================
// Unità di misura (DettaglioLinee/UnitaMisura) - uso común
// =============================================================================

const (
	UnitaPezzo = "pz" // Pezzo
	UnitaOra   = "h"  // Ora
	UnitaKg    = "kg" // Chilogrammo
)
