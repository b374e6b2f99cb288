package models

import "time"

// User is keyed by email; creation is idempotent on that key.
type User struct {
	ID        string    `json:"_id" bson:"-"`
	Email     string    `json:"email" bson:"email"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	PhotoURL  string    `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
