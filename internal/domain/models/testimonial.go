// internal/domain/models/testimonial.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Testimonial statuses. A testimonial starts pending and is approved or
// rejected by an admin; only approved testimonials are shown publicly.
const (
	TestimonialPending  = "pending"
	TestimonialApproved = "approved"
	TestimonialRejected = "rejected"
)

// ValidTestimonialStatus reports whether s is a known moderation status.
func ValidTestimonialStatus(s string) bool {
	switch s {
	case TestimonialPending, TestimonialApproved, TestimonialRejected:
		return true
	}
	return false
}

// Testimonial is one visitor-submitted quote awaiting or past moderation.
type Testimonial struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Author    string             `bson:"author" json:"author"`
	Role      string             `bson:"role,omitempty" json:"role,omitempty"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Quote     string             `bson:"quote" json:"quote"`
	Rating    int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
