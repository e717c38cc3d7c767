package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// ErrOrderNotFound y los errores de transporte son señales distintas a
// propósito: un 200 con lista vacía es "ordine non trovato", cualquier otro
// fallo HTTP/red se propaga envuelto para que el handler pueda diagnosticar.
var (
	ErrOrderNotFound         = errors.New("ordine non trovato")
	ErrUpstream              = errors.New("fallo de comunicación con Shopify")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrMissingBillingAddress = errors.New("el pedido no tiene billing_address")
	ErrUnauthorized          = errors.New("no autorizado")
)
