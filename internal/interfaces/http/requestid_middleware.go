package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/loretomm/fattura-api/pkg/logger"
)

// LocalRequestID key para el id de correlación en Fiber.
const LocalRequestID = "request_id"

// HeaderRequestID header de respuesta con el id de correlación.
const HeaderRequestID = "X-Request-ID"

// RequestID asigna un UUID v4 a cada petición. Si el cliente ya envía
// X-Request-ID se respeta para poder correlacionar con sistemas externos.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(LocalRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// GetRequestID devuelve el id de correlación del contexto.
func GetRequestID(c *fiber.Ctx) string {
	v := c.Locals(LocalRequestID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// AccessLog registra cada petición con método, ruta, status y duración.
// Nunca registra headers (el Authorization y el token Shopify son secretos).
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		log.Info().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("http request")
		return err
	}
}
