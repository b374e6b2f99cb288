package models

import "time"

// Enrollment records a buyer committing to a course. The frontend calls
// these "bids", so the routes and the bid_price field keep that name.
type Enrollment struct {
	ID         string    `json:"_id" bson:"-"`
	Product    string    `json:"product" bson:"product"`
	BuyerEmail string    `json:"buyer_email" bson:"buyer_email"`
	BidPrice   float64   `json:"bid_price,omitempty" bson:"bid_price,omitempty"`
	EnrolledAt time.Time `json:"enrolled_at" bson:"enrolled_at"`
}

// EnrolledCourse is a course joined with the enrollment that references it.
type EnrolledCourse struct {
	Course
	EnrollmentID string    `json:"enrollment_id"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}
