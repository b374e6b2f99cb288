package bidRoutes

import (
	"github.com/gofiber/fiber/v2"

	"skillswap/config"
	controllers "skillswap/controllers/course"
	"skillswap/database"
	validators "skillswap/validators/bid"
)

// SetupBidRoutes sets up all enrollment ("bid") routes
func SetupBidRoutes(app *fiber.App, store *database.Store, protect fiber.Handler) {
	bc := controllers.NewBidController(store)

	app.Get("/bids", protect, bc.GetBids)
	app.Get("/products/bids/:productId", protect, bc.GetBidsForCourse)

	if config.AppConfig.AllowPublicWrites {
		app.Post("/bids", validators.CreateBid(), bc.CreateBid)
	} else {
		app.Post("/bids", protect, validators.CreateBid(), bc.CreateBid)
	}

	app.Delete("/bids/:id", bc.DeleteBid)
	app.Get("/enrolled-courses", protect, bc.GetEnrolledCourses)
}
