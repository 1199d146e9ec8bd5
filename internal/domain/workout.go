package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout represents a single training session on a calendar day.
// Only the day/month/year of Date is semantically meaningful; grouping and
// streak calculations ignore the time of day.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"` // Set by the service layer, never by the caller
	Name      string             `bson:"name" json:"name"`
	Date      time.Time          `bson:"date" json:"date"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the structural constraints for a workout submission.
// Returns a *ValidationError listing every violated field, or nil.
func (w *Workout) Validate() error {
	v := newValidationError()
	if w.Name == "" {
		v.add("name", "workout name is required")
	}
	if w.Date.IsZero() {
		v.add("date", "workout date is required")
	}
	return v.orNil()
}
