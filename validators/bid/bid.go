package bidValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skillswap/middleware"
	"skillswap/models"
)

var validate = validator.New()

// CreateBid validates an enrollment request.
func CreateBid() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bid := new(models.Enrollment)
		if err := c.BodyParser(bid); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		bid.Product = strings.TrimSpace(bid.Product)
		bid.BuyerEmail = strings.TrimSpace(bid.BuyerEmail)

		if bid.Product == "" {
			errors["product"] = "Course id is required!"
		}
		if bid.BuyerEmail == "" {
			errors["buyer_email"] = "Buyer email is required!"
		} else if err := validate.Var(bid.BuyerEmail, "email"); err != nil {
			errors["buyer_email"] = "Buyer email must be a valid email address!"
		}
		if bid.BidPrice < 0 {
			errors["bid_price"] = "Bid price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBid", bid)
		return c.Next()
	}
}
