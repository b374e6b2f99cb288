package userController

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"skillswap/database"
	"skillswap/middleware"
	"skillswap/models"
)

type UserController struct {
	store *database.Store
}

func NewUserController(store *database.Store) *UserController {
	return &UserController{store: store}
}

// CreateUser registers a user idempotently: a second request for the
// same email is acknowledged without inserting anything.
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	if !uc.store.Ready() {
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "Database not ready")
	}
	user, ok := c.Locals("validatedUser").(*models.User)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}
	ctx := c.UserContext()

	existing, err := uc.store.Users().FindByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	if existing != nil {
		return c.JSON(fiber.Map{"message": "user already exists. do not need to insert again"})
	}

	user.CreatedAt = time.Now()
	id, err := uc.store.Users().Insert(ctx, user)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{"acknowledged": true, "insertedId": id})
}
