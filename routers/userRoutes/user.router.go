package userRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "skillswap/controllers/userControllers"
	"skillswap/database"
	validators "skillswap/validators/user"
)

// SetupUserRoutes sets up all user routes
func SetupUserRoutes(app *fiber.App, store *database.Store) {
	uc := controllers.NewUserController(store)

	app.Post("/users", validators.CreateUser(), uc.CreateUser)
}
