package models

import "time"

// Course is a skill listing. The json tags mirror the wire format the
// existing frontend depends on, hence the camel/snake mix and the
// legacy `name` field kept alongside `skillName`.
type Course struct {
	ID             string    `json:"_id" bson:"-"`
	SkillName      string    `json:"skillName,omitempty" bson:"skillName,omitempty"`
	Name           string    `json:"name,omitempty" bson:"name,omitempty"`
	ProviderName   string    `json:"providerName,omitempty" bson:"providerName,omitempty"`
	ProviderEmail  string    `json:"providerEmail,omitempty" bson:"providerEmail,omitempty"`
	Email          string    `json:"email,omitempty" bson:"email,omitempty"`
	Price          float64   `json:"price,omitempty" bson:"price,omitempty"`
	Rating         float64   `json:"rating,omitempty" bson:"rating,omitempty"`
	SlotsAvailable int       `json:"slotsAvailable,omitempty" bson:"slotsAvailable,omitempty"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	Image          string    `json:"image,omitempty" bson:"image,omitempty"`
	Category       string    `json:"category,omitempty" bson:"category,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// CourseUpdate is the allow-list for PATCH /products/:id. Both storage
// backends apply exactly these fields and ignore everything else.
type CourseUpdate struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}
