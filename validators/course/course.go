package courseValidator

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"skillswap/middleware"
	"skillswap/models"
)

var validate = validator.New()

// CreateCourse validates a course creation request. Shared by the
// public and the authenticated create routes; the authenticated handler
// overwrites the owner fields afterwards regardless of what passed here.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		course := new(models.Course)
		if err := c.BodyParser(course); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		course.SkillName = strings.TrimSpace(course.SkillName)
		course.Name = strings.TrimSpace(course.Name)
		course.ProviderName = strings.TrimSpace(course.ProviderName)
		course.ProviderEmail = strings.TrimSpace(course.ProviderEmail)
		course.Email = strings.TrimSpace(course.Email)

		if course.SkillName == "" && course.Name == "" {
			errors["skillName"] = "Skill name is required!"
		}
		if course.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if course.Rating < 0 || course.Rating > 5 {
			errors["rating"] = "Rating must be between 0 and 5!"
		}
		if course.SlotsAvailable < 0 {
			errors["slotsAvailable"] = "Available slots cannot be negative!"
		}
		if course.ProviderEmail != "" {
			if err := validate.Var(course.ProviderEmail, "email"); err != nil {
				errors["providerEmail"] = "Provider email must be a valid email address!"
			}
		}
		if course.Email != "" {
			if err := validate.Var(course.Email, "email"); err != nil {
				errors["email"] = "Email must be a valid email address!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", course)
		return c.Next()
	}
}

// UpdateCourse validates a partial course update. Only the allow-listed
// fields exist on the update struct, so anything else in the body is
// dropped at parse time.
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		upd := new(models.CourseUpdate)
		if err := c.BodyParser(upd); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if upd.Name == nil && upd.Price == nil {
			errors["body"] = "At least one of name or price is required!"
		}
		if upd.Name != nil {
			trimmed := strings.TrimSpace(*upd.Name)
			if trimmed == "" {
				errors["name"] = "Name cannot be empty!"
			}
			*upd.Name = trimmed
		}
		if upd.Price != nil && *upd.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", upd)
		return c.Next()
	}
}
