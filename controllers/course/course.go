package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"skillswap/database"
	"skillswap/middleware"
	"skillswap/models"
)

// latestLimit caps GET /latest-products.
const latestLimit = 6

type CourseController struct {
	store *database.Store
}

func NewCourseController(store *database.Store) *CourseController {
	return &CourseController{store: store}
}

// GetAllCourses lists courses, optionally narrowed to one provider via
// the email query parameter.
func (cc *CourseController) GetAllCourses(c *fiber.Ctx) error {
	courses, err := cc.store.Courses().Find(c.UserContext(), database.CourseFilter{Email: c.Query("email")})
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return c.JSON(courses)
}

// GetLatestCourses returns the newest courses, creation time descending.
func (cc *CourseController) GetLatestCourses(c *fiber.Ctx) error {
	courses, err := cc.store.Courses().Latest(c.UserContext(), latestLimit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return c.JSON(courses)
}

func (cc *CourseController) GetCourseDetails(c *fiber.Ctx) error {
	course, err := cc.store.Courses().FindByID(c.UserContext(), c.Params("id"))
	switch {
	case errors.Is(err, database.ErrInvalidID):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id")
	case errors.Is(err, database.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found")
	case err != nil:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(course)
}

// CreateCourse is the public create route. When the route is configured
// to require authentication, the verified identity overrides any owner
// fields from the body.
func (cc *CourseController) CreateCourse(c *fiber.Ctx) error {
	course, ok := c.Locals("validatedCourse").(*models.Course)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	if email, authed := middleware.VerifiedEmail(c); authed {
		course.Email = email
		course.ProviderEmail = email
	}
	course.CreatedAt = time.Now()

	id, err := cc.store.Courses().Insert(c.UserContext(), course)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{"acknowledged": true, "insertedId": id})
}

// CreateMyCourse creates a listing on behalf of the verified caller.
// Owner fields from the body are always overwritten with the verified
// identity so a caller cannot list courses under someone else's email.
func (cc *CourseController) CreateMyCourse(c *fiber.Ctx) error {
	if !cc.store.Ready() {
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "Database not ready")
	}
	ownerEmail, ok := middleware.VerifiedEmail(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "unauthorized access")
	}
	course, ok := c.Locals("validatedCourse").(*models.Course)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	course.Email = ownerEmail
	course.ProviderEmail = ownerEmail
	course.CreatedAt = time.Now()

	id, err := cc.store.Courses().Insert(c.UserContext(), course)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{"acknowledged": true, "insertedId": id})
}

// UpdateCourse applies the allow-listed partial update. Updating an id
// that matches nothing is a zero-count success, same as delete.
func (cc *CourseController) UpdateCourse(c *fiber.Ctx) error {
	upd, ok := c.Locals("validatedCourseUpdate").(*models.CourseUpdate)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	result, err := cc.store.Courses().Update(c.UserContext(), c.Params("id"), *upd)
	switch {
	case errors.Is(err, database.ErrInvalidID):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id")
	case err != nil:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{
		"acknowledged":  true,
		"matchedCount":  result.MatchedCount,
		"modifiedCount": result.ModifiedCount,
	})
}

// DeleteCourse removes a course by id, idempotently: an unknown id
// reports a zero deleted count rather than an error.
func (cc *CourseController) DeleteCourse(c *fiber.Ctx) error {
	deleted, err := cc.store.Courses().Delete(c.UserContext(), c.Params("id"))
	switch {
	case errors.Is(err, database.ErrInvalidID):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id")
	case err != nil:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	return c.JSON(fiber.Map{"acknowledged": true, "deletedCount": deleted})
}

// GetMyCourses lists the verified caller's own listings.
func (cc *CourseController) GetMyCourses(c *fiber.Ctx) error {
	if !cc.store.Ready() {
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "Database not ready")
	}
	ownerEmail, ok := middleware.VerifiedEmail(c)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "unauthorized access")
	}

	courses, err := cc.store.Courses().Find(c.UserContext(), database.CourseFilter{Email: ownerEmail})
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return c.JSON(courses)
}
