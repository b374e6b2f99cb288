package userValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skillswap/middleware"
	"skillswap/models"
)

var validate = validator.New()

// CreateUser validates a user registration request.
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := new(models.User)
		if err := c.BodyParser(user); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		user.Email = strings.TrimSpace(user.Email)
		user.Name = strings.TrimSpace(user.Name)

		if user.Email == "" {
			errors["email"] = "Email is required!"
		} else if err := validate.Var(user.Email, "email"); err != nil {
			errors["email"] = "Email must be a valid email address!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", user)
		return c.Next()
	}
}
