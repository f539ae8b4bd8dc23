package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zoesacks/seguimiento-de-expedientes/pkg/logger"
)

// RequestLogger registra método, ruta, estado y duración de cada petición.
// Si la cadena devuelve error lo resuelve con el ErrorHandler de la app antes de leer el estado.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}
