package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"skillswap/database"
	"skillswap/middleware"
	"skillswap/models"
)

type BidController struct {
	store *database.Store
}

func NewBidController(store *database.Store) *BidController {
	return &BidController{store: store}
}

// GetBids lists enrollments. An explicit email filter must match the
// verified caller; without a filter any verified caller sees the full
// list, preserving the behavior the frontend depends on.
func (bc *BidController) GetBids(c *fiber.Ctx) error {
	callerEmail, ok := middleware.VerifiedEmail(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "unauthorized access")
	}

	email := c.Query("email")
	if email != "" && email != callerEmail {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "forbidden access")
	}

	bids, err := bc.store.Bids().Find(c.UserContext(), database.BidFilter{BuyerEmail: email}, false)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	if bids == nil {
		bids = []models.Enrollment{}
	}
	return c.JSON(bids)
}

// GetBidsForCourse lists the enrollments referencing one course, bid
// price descending. Any verified caller may look.
func (bc *BidController) GetBidsForCourse(c *fiber.Ctx) error {
	if _, ok := middleware.VerifiedEmail(c); !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "unauthorized access")
	}

	bids, err := bc.store.Bids().Find(c.UserContext(), database.BidFilter{Product: c.Params("productId")}, true)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	if bids == nil {
		bids = []models.Enrollment{}
	}
	return c.JSON(bids)
}

// CreateBid records an enrollment. If the facade is not ready the
// request is acknowledged as pending with 202 instead of pretending the
// write happened.
func (bc *BidController) CreateBid(c *fiber.Ctx) error {
	if !bc.store.Ready() {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"acknowledged": false,
			"pending":      true,
			"insertedId":   fmt.Sprintf("pending-%d", time.Now().UnixNano()),
			"message":      "Enrollment queued, storage not ready yet",
		})
	}

	bid, ok := c.Locals("validatedBid").(*models.Enrollment)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}
	bid.EnrolledAt = time.Now()

	id, err := bc.store.Bids().Insert(c.UserContext(), bid)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{"acknowledged": true, "insertedId": id})
}

// DeleteBid removes an enrollment by id, idempotently.
func (bc *BidController) DeleteBid(c *fiber.Ctx) error {
	deleted, err := bc.store.Bids().Delete(c.UserContext(), c.Params("id"))
	switch {
	case errors.Is(err, database.ErrInvalidID):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid bid id")
	case err != nil:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{"acknowledged": true, "deletedCount": deleted})
}

// GetEnrolledCourses joins the caller's enrollments with the courses
// they reference. Enrollments whose course no longer exists are dropped
// from the result.
func (bc *BidController) GetEnrolledCourses(c *fiber.Ctx) error {
	callerEmail, ok := middleware.VerifiedEmail(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "unauthorized access")
	}
	ctx := c.UserContext()

	bids, err := bc.store.Bids().Find(ctx, database.BidFilter{BuyerEmail: callerEmail}, false)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}

	var courseIDs []string
	for _, bid := range bids {
		if bid.Product != "" {
			courseIDs = append(courseIDs, bid.Product)
		}
	}

	courses, err := bc.store.Courses().FindByIDs(ctx, courseIDs)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	byID := make(map[string]models.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}

	result := make([]models.EnrolledCourse, 0, len(bids))
	for _, bid := range bids {
		course, found := byID[bid.Product]
		if !found {
			continue // dangling reference
		}
		result = append(result, models.EnrolledCourse{
			Course:       course,
			EnrollmentID: bid.ID,
			EnrolledAt:   bid.EnrolledAt,
		})
	}
	return c.JSON(result)
}
