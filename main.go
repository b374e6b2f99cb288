package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"skillswap/auth"
	"skillswap/config"
	"skillswap/database"
	"skillswap/middleware"
	bidRoutes "skillswap/routers/bidRoutes"
	courseRoutes "skillswap/routers/courseRoutes"
	debugRoutes "skillswap/routers/debugRoutes"
	userRoutes "skillswap/routers/userRoutes"
	"skillswap/utils"
)

func main() {
	config.LoadConfig()

	files := database.NewFileStore(config.AppConfig.DataDir)
	store := database.NewStore(files)

	// Non-blocking connection attempt; requests are served from the
	// in-memory fallback until it succeeds.
	go store.Connect(config.AppConfig.MongoURI, config.AppConfig.DBName)
	store.SeedIfEmpty()

	verifier := auth.NewFirebaseVerifier(config.AppConfig.FirebaseProjectID)
	protect := middleware.Protected(verifier)

	app := fiber.New()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("SkillSwap server is running")
	})
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	courseRoutes.SetupCourseRoutes(app, store, protect)
	bidRoutes.SetupBidRoutes(app, store, protect)
	userRoutes.SetupUserRoutes(app, store)
	debugRoutes.SetupDebugRoutes(app, store)

	utils.InitializeSnapshotScheduler(store)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
