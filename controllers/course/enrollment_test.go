package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap/models"
)

func TestBidsRequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	resp := request(t, app, http.MethodGet, "/bids", nil, false)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestBidsFilterMustMatchCaller(t *testing.T) {
	app, _ := newTestApp(t)

	resp := request(t, app, http.MethodGet, "/bids?email=other@x.com", nil, true)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestBidsOwnFilterSucceeds(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	_, err := store.Bids().Insert(ctx, &models.Enrollment{Product: "c1", BuyerEmail: callerEmail})
	require.NoError(t, err)
	_, err = store.Bids().Insert(ctx, &models.Enrollment{Product: "c2", BuyerEmail: "other@x.com"})
	require.NoError(t, err)

	resp := request(t, app, http.MethodGet, "/bids?email="+callerEmail, nil, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var bids []models.Enrollment
	decodeBody(t, resp, &bids)
	require.Len(t, bids, 1)
	assert.Equal(t, "c1", bids[0].Product)
}

func TestBidsForCourseOrderedByPriceDesc(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	for _, bid := range []models.Enrollment{
		{Product: "c1", BuyerEmail: "a@x.com", BidPrice: 5},
		{Product: "c1", BuyerEmail: "b@x.com", BidPrice: 12},
		{Product: "c1", BuyerEmail: "c@x.com", BidPrice: 8},
		{Product: "c2", BuyerEmail: "d@x.com", BidPrice: 99},
	} {
		b := bid
		_, err := store.Bids().Insert(ctx, &b)
		require.NoError(t, err)
	}

	resp := request(t, app, http.MethodGet, "/products/bids/c1", nil, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var bids []models.Enrollment
	decodeBody(t, resp, &bids)
	require.Len(t, bids, 3)
	assert.Equal(t, 12.0, bids[0].BidPrice)
	assert.Equal(t, 8.0, bids[1].BidPrice)
	assert.Equal(t, 5.0, bids[2].BidPrice)
}

func TestCreateBidRejectsInvalidBody(t *testing.T) {
	app, _ := newTestApp(t)

	resp := request(t, app, http.MethodPost, "/bids", fiber.Map{"product": "c1"}, false)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// Enroll, then see the course in /enrolled-courses merged with the
// enrollment metadata.
func TestCreateBidThenEnrolledCourses(t *testing.T) {
	app, _ := newTestApp(t)

	resp := request(t, app, http.MethodPost, "/products", fiber.Map{"skillName": "Guitar", "price": 20}, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var created struct {
		InsertedID string `json:"insertedId"`
	}
	decodeBody(t, resp, &created)

	resp = request(t, app, http.MethodPost, "/bids", fiber.Map{
		"product":     created.InsertedID,
		"buyer_email": callerEmail,
		"bid_price":   18,
	}, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var bidCreated struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}
	decodeBody(t, resp, &bidCreated)
	assert.True(t, bidCreated.Acknowledged)

	resp = request(t, app, http.MethodGet, "/enrolled-courses", nil, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var enrolled []models.EnrolledCourse
	decodeBody(t, resp, &enrolled)
	require.Len(t, enrolled, 1)
	assert.Equal(t, created.InsertedID, enrolled[0].ID)
	assert.Equal(t, "Guitar", enrolled[0].SkillName)
	assert.Equal(t, bidCreated.InsertedID, enrolled[0].EnrollmentID)
	assert.False(t, enrolled[0].EnrolledAt.IsZero())
}

func TestEnrolledCoursesDropsDanglingReferences(t *testing.T) {
	app, store := newTestApp(t)

	_, err := store.Bids().Insert(context.Background(), &models.Enrollment{
		Product:    "mem-course-0",
		BuyerEmail: callerEmail,
	})
	require.NoError(t, err)

	resp := request(t, app, http.MethodGet, "/enrolled-courses", nil, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var enrolled []models.EnrolledCourse
	decodeBody(t, resp, &enrolled)
	assert.Empty(t, enrolled)
}

func TestDeleteBidIsIdempotent(t *testing.T) {
	app, store := newTestApp(t)

	id, err := store.Bids().Insert(context.Background(), &models.Enrollment{Product: "c1", BuyerEmail: "a@x.com"})
	require.NoError(t, err)

	var result struct {
		DeletedCount int64 `json:"deletedCount"`
	}

	resp := request(t, app, http.MethodDelete, "/bids/"+id, nil, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.Equal(t, int64(1), result.DeletedCount)

	resp = request(t, app, http.MethodDelete, "/bids/"+id, nil, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &result)
	assert.Equal(t, int64(0), result.DeletedCount)
}
