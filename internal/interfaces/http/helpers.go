// Package http adapta los casos de uso a la API REST con Fiber.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/tienduca/storefront-api/internal/application/dto"
	"github.com/tienduca/storefront-api/internal/domain"
)

// ErrorHandler atrapa los errores que escapan de los handlers, incluidos los
// pánicos convertidos en error por el middleware recover. Los errores propios
// de Fiber (ruta inexistente, método no permitido) conservan su código con el
// cuerpo JSON habitual; cualquier otro se responde como 500 genérico y el
// detalle queda únicamente en el log del servidor.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: fe.Message})
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no manejado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal Server Error"})
}

// respondError traduce un error de dominio a su respuesta HTTP. Los errores
// no clasificados devuelven 500 con mensaje genérico y se registran solo del
// lado del servidor.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Entrada inválida", Detail: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Stock insuficiente", Detail: err.Error()})
	case errors.Is(err, domain.ErrForeignKey):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Error de integridad referencial", Detail: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "No encontrado", Detail: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "Conflicto", Detail: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "No autorizado", Detail: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Acceso denegado"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error no clasificado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal Server Error"})
	}
}

// parseBody decodifica el cuerpo JSON en out; en caso de fallo responde 400
// con una pista sobre el formato esperado.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:  "Cuerpo JSON inválido",
			Detail: "verifique que las claves y cadenas estén entre comillas dobles",
		})
	}
	return nil
}
