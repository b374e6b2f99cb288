package middleware

import "github.com/gofiber/fiber/v2"

// ErrorResponse writes the error contract shared by every handler: the
// status code plus a single human-readable message. No internals leak.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"message": message,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed!",
		"errors":  errors,
	})
}
