package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightUnit is the unit a set's weight was recorded in.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// Set is an embedded value owned entirely by its Exercise. It has no
// independent identity or lifecycle; order within the Sets slice is the
// display and edit order.
type Set struct {
	Reps   int        `bson:"reps" json:"reps"`
	Weight float64    `bson:"weight" json:"weight"`
	Unit   WeightUnit `bson:"unit" json:"unit"`
}

// Exercise represents a named exercise performed within a Workout, with an
// ordered list of sets. Exercises are created only in the context of an
// existing, owned Workout.
type Exercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"` // Same ownership rule as Workout
	Name      string             `bson:"name" json:"name"`
	Sets      []Set              `bson:"sets" json:"sets"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Validate checks the structural constraints for an exercise submission.
// The existence of the referenced workout is checked by the service layer;
// here we only validate the shape.
func (e *Exercise) Validate() error {
	v := newValidationError()
	if e.Name == "" {
		v.add("name", "exercise name is required")
	}
	if e.WorkoutID == primitive.NilObjectID {
		v.add("workoutId", "exercise must reference a workout")
	}
	if len(e.Sets) == 0 {
		v.add("sets", "exercise must contain at least one set")
	}
	for i, set := range e.Sets {
		if set.Reps < 1 {
			v.add(fmt.Sprintf("sets[%d].reps", i), "reps must be at least 1")
		}
		if set.Weight < 0 {
			v.add(fmt.Sprintf("sets[%d].weight", i), "weight cannot be negative")
		}
		if set.Unit != UnitKg && set.Unit != UnitLbs {
			v.add(fmt.Sprintf("sets[%d].unit", i), "unit must be kg or lbs")
		}
	}
	return v.orNil()
}
