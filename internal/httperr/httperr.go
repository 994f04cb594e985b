// Package httperr maps handler errors to JSON responses.
package httperr

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler is the application-wide fiber ErrorHandler. *fiber.Error values keep
// their code and message; a bare record-not-found becomes a 404; everything else
// is logged and reported as a generic 500 so internals never reach the client.
func Handler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	slog.Error("unhandled error",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}

// NotFound returns a 404 when err is gorm.ErrRecordNotFound, otherwise err.
func NotFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, msg)
	}
	return err
}
