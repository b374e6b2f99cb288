package debugRoutes

import (
	"github.com/gofiber/fiber/v2"

	"skillswap/config"
	controllers "skillswap/controllers/debug"
	"skillswap/database"
)

// SetupDebugRoutes mounts the unauthenticated development aids. No-op
// unless DEBUG is enabled.
func SetupDebugRoutes(app *fiber.App, store *database.Store) {
	if !config.AppConfig.Debug {
		return
	}
	dc := controllers.NewDebugController(store, config.AppConfig.MongoURI)

	debug := app.Group("/debug")
	debug.Get("/db-status", dc.DBStatus)
	debug.Get("/seed-course", dc.SeedCourse)
	debug.Get("/clear", dc.Clear)
	debug.Get("/bids", dc.Bids)
}
