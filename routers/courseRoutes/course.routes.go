package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	"skillswap/config"
	controllers "skillswap/controllers/course"
	"skillswap/database"
	validators "skillswap/validators/course"
)

// SetupCourseRoutes sets up all course routes
func SetupCourseRoutes(app *fiber.App, store *database.Store, protect fiber.Handler) {
	cc := controllers.NewCourseController(store)

	app.Get("/products", cc.GetAllCourses)
	app.Get("/latest-products", cc.GetLatestCourses)
	app.Get("/products/:id", cc.GetCourseDetails)

	// Public create, unless the deployment locks writes behind a token
	if config.AppConfig.AllowPublicWrites {
		app.Post("/products", validators.CreateCourse(), cc.CreateCourse)
	} else {
		app.Post("/products", protect, validators.CreateCourse(), cc.CreateCourse)
	}

	app.Patch("/products/:id", validators.UpdateCourse(), cc.UpdateCourse)
	app.Delete("/products/:id", cc.DeleteCourse)

	// Courses owned by the signed-in user
	app.Post("/my-courses", protect, validators.CreateCourse(), cc.CreateMyCourse)
	app.Get("/my-courses", protect, cc.GetMyCourses)
}
