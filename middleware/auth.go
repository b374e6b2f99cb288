package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"skillswap/auth"
)

// Protected returns a middleware that gates a route behind bearer-token
// verification. Missing header, malformed scheme and every verification
// failure all collapse into the same 401; on success the verified email
// lands in c.Locals("userEmail") for downstream handlers.
func Protected(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return ErrorResponse(c, fiber.StatusUnauthorized, "unauthorized access")
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "unauthorized access")
		}

		identity, err := verifier.Verify(c.UserContext(), token)
		if err != nil || identity.Email == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "unauthorized access")
		}

		c.Locals("userEmail", identity.Email)
		return c.Next()
	}
}

// VerifiedEmail pulls the verified identity a Protected middleware put
// on the request context.
func VerifiedEmail(c *fiber.Ctx) (string, bool) {
	email, ok := c.Locals("userEmail").(string)
	return email, ok && email != ""
}
