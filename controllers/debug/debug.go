package debugController

import (
	"regexp"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"

	"skillswap/database"
	"skillswap/middleware"
	"skillswap/models"
)

var credentialPattern = regexp.MustCompile(`:([^:@/]+)@`)

// DebugController exposes development aids. Never mounted in production.
type DebugController struct {
	store *database.Store
	uri   string
}

func NewDebugController(store *database.Store, uri string) *DebugController {
	return &DebugController{store: store, uri: uri}
}

// DBStatus reports which persistence path is active.
func (dc *DebugController) DBStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"uri":      credentialPattern.ReplaceAllString(dc.uri, ":***@"),
		"dbActive": dc.store.DatabaseActive(),
		"ready":    dc.store.Ready(),
		"go":       runtime.Version(),
	})
}

// SeedCourse inserts a single throwaway course.
func (dc *DebugController) SeedCourse(c *fiber.Ctx) error {
	course := &models.Course{
		Name:      "Seeded Course",
		Price:     99,
		Email:     "seed@example.com",
		CreatedAt: time.Now(),
	}
	if _, err := dc.store.Courses().Insert(c.UserContext(), course); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{"message": "seeded", "course": course})
}

// Clear wipes the in-memory dataset.
func (dc *DebugController) Clear(c *fiber.Ctx) error {
	dc.store.ClearMemory()
	return c.JSON(fiber.Map{"message": "cleared"})
}

// Bids lists every enrollment, unfiltered.
func (dc *DebugController) Bids(c *fiber.Ctx) error {
	bids, err := dc.store.Bids().Find(c.UserContext(), database.BidFilter{}, false)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	if bids == nil {
		bids = []models.Enrollment{}
	}
	return c.JSON(bids)
}
