package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/loretomm/fattura-api/pkg/fatturapa"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Auth    AuthConfig
	Shopify ShopifyConfig
	Fattura FatturaConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AuthConfig credenciales del operador (único usuario del sistema).
// PasswordHash es un hash bcrypt; nunca se acepta la contraseña en claro por config.
type AuthConfig struct {
	Username     string
	PasswordHash string
}

// ShopifyConfig acceso a la Admin REST API de Shopify.
// AccessToken es un secreto: se inyecta por entorno y no debe aparecer en logs.
type ShopifyConfig struct {
	ShopDomain  string // ej. superduper-hats.myshopify.com
	APIVersion  string // ej. 2023-10
	AccessToken string
}

// BaseURL devuelve la URL base de la Admin API (sin slash final).
func (c ShopifyConfig) BaseURL() string {
	return fmt.Sprintf("https://%s/admin/api/%s", c.ShopDomain, c.APIVersion)
}

// FatturaConfig identidad fiscal del cedente/prestatore y parámetros fijos del
// documento FatturaPA. Todos los campos salen de configuración; el builder no
// conoce constantes de negocio.
type FatturaConfig struct {
	IDPaese             string // "IT"
	IDCodice            string // partita IVA del cedente
	CodiceFiscale       string // normalmente igual a IDCodice
	Denominazione       string
	RegimeFiscale       string // ej. RF19
	Indirizzo           string
	CAP                 string
	Comune              string
	Provincia           string
	Nazione             string
	FormatoTrasmissione string // FPR12 (privati) o FPA12 (PA)
	CodiceDestinatario  string // "0000000" si no hay SDI del destinatario
	TipoDocumento       string // TD01 fattura
	Divisa              string // EUR
	AliquotaIVA         string // "22.00"
	// ComputeTotals activa el cálculo real de PrezzoTotale e Imposta.
	// En false se replica el comportamiento histórico (compatibilidad byte a byte
	// con los consumidores existentes del XML).
	ComputeTotals bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SHOPIFY_ACCESS_TOKEN, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "fattura-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "fattura-api"),
		},
		Auth: AuthConfig{
			Username:     getString(v, "AUTH_USERNAME", "operatore"),
			PasswordHash: getString(v, "AUTH_PASSWORD_HASH", ""),
		},
		Shopify: ShopifyConfig{
			ShopDomain:  getString(v, "SHOPIFY_SHOP_DOMAIN", ""),
			APIVersion:  getString(v, "SHOPIFY_API_VERSION", "2023-10"),
			AccessToken: getString(v, "SHOPIFY_ACCESS_TOKEN", ""),
		},
		Fattura: FatturaConfig{
			IDPaese:             getString(v, "FATTURA_ID_PAESE", "IT"),
			IDCodice:            getString(v, "FATTURA_ID_CODICE", ""),
			CodiceFiscale:       getString(v, "FATTURA_CODICE_FISCALE", ""),
			Denominazione:       getString(v, "FATTURA_DENOMINAZIONE", ""),
			RegimeFiscale:       getString(v, "FATTURA_REGIME_FISCALE", "RF19"),
			Indirizzo:           getString(v, "FATTURA_SEDE_INDIRIZZO", ""),
			CAP:                 getString(v, "FATTURA_SEDE_CAP", ""),
			Comune:              getString(v, "FATTURA_SEDE_COMUNE", ""),
			Provincia:           getString(v, "FATTURA_SEDE_PROVINCIA", ""),
			Nazione:             getString(v, "FATTURA_SEDE_NAZIONE", "IT"),
			FormatoTrasmissione: getString(v, "FATTURA_FORMATO_TRASMISSIONE", "FPR12"),
			CodiceDestinatario:  getString(v, "FATTURA_CODICE_DESTINATARIO", "0000000"),
			TipoDocumento:       getString(v, "FATTURA_TIPO_DOCUMENTO", "TD01"),
			Divisa:              getString(v, "FATTURA_DIVISA", "EUR"),
			AliquotaIVA:         getString(v, "FATTURA_ALIQUOTA_IVA", "22.00"),
			ComputeTotals:       getBool(v, "FATTURA_COMPUTE_TOTALS", false),
		},
	}

	return cfg, nil
}

// Validate verifica las claves obligatorias y devuelve un error con todas las
// que falten. Se llama una sola vez al arranque para fallar rápido.
func (c *Config) Validate() error {
	var missing []string
	if c.Shopify.ShopDomain == "" {
		missing = append(missing, "SHOPIFY_SHOP_DOMAIN")
	}
	if c.Shopify.AccessToken == "" {
		missing = append(missing, "SHOPIFY_ACCESS_TOKEN")
	}
	if c.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.Auth.PasswordHash == "" {
		missing = append(missing, "AUTH_PASSWORD_HASH")
	}
	if c.Fattura.IDCodice == "" {
		missing = append(missing, "FATTURA_ID_CODICE")
	}
	if c.Fattura.Denominazione == "" {
		missing = append(missing, "FATTURA_DENOMINAZIONE")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: faltan variables obligatorias: %s", strings.Join(missing, ", "))
	}

	// Los códigos de catálogo deben existir en el anexo técnico
	if !fatturapa.ValidFormatoTrasmissione[c.Fattura.FormatoTrasmissione] {
		return fmt.Errorf("config: FATTURA_FORMATO_TRASMISSIONE %q no válido", c.Fattura.FormatoTrasmissione)
	}
	if !fatturapa.ValidRegimeFiscale[c.Fattura.RegimeFiscale] {
		return fmt.Errorf("config: FATTURA_REGIME_FISCALE %q no válido", c.Fattura.RegimeFiscale)
	}
	if !fatturapa.ValidTipoDocumento[c.Fattura.TipoDocumento] {
		return fmt.Errorf("config: FATTURA_TIPO_DOCUMENTO %q no válido", c.Fattura.TipoDocumento)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
