package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validExercise() *Exercise {
	return &Exercise{
		WorkoutID: primitive.NewObjectID(),
		Name:      "Bench Press",
		Sets: []Set{
			{Reps: 8, Weight: 60, Unit: UnitKg},
			{Reps: 6, Weight: 65, Unit: UnitKg},
		},
	}
}

func TestWorkoutValidate_Valid(t *testing.T) {
	w := &Workout{Name: "Push Day", Date: time.Now()}
	assert.NoError(t, w.Validate())
}

func TestWorkoutValidate_MissingFields(t *testing.T) {
	w := &Workout{}
	err := w.Validate()
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "name")
	assert.Contains(t, vErr.Fields, "date")
}

func TestExerciseValidate_Valid(t *testing.T) {
	assert.NoError(t, validExercise().Validate())
}

func TestExerciseValidate_RequiresName(t *testing.T) {
	e := validExercise()
	e.Name = ""

	var vErr *ValidationError
	require.ErrorAs(t, e.Validate(), &vErr)
	assert.Contains(t, vErr.Fields, "name")
}

func TestExerciseValidate_RequiresWorkoutReference(t *testing.T) {
	e := validExercise()
	e.WorkoutID = primitive.NilObjectID

	var vErr *ValidationError
	require.ErrorAs(t, e.Validate(), &vErr)
	assert.Contains(t, vErr.Fields, "workoutId")
}

func TestExerciseValidate_RequiresAtLeastOneSet(t *testing.T) {
	e := validExercise()
	e.Sets = nil

	var vErr *ValidationError
	require.ErrorAs(t, e.Validate(), &vErr)
	assert.Contains(t, vErr.Fields, "sets")
}

func TestExerciseValidate_SetConstraints(t *testing.T) {
	e := validExercise()
	e.Sets = []Set{
		{Reps: 0, Weight: 50, Unit: UnitKg},    // zero reps
		{Reps: 5, Weight: -10, Unit: UnitLbs},  // negative weight
		{Reps: 5, Weight: 20, Unit: "stone"},   // unknown unit
		{Reps: 10, Weight: 0, Unit: UnitKg},    // bodyweight is fine
	}

	var vErr *ValidationError
	require.ErrorAs(t, e.Validate(), &vErr)

	assert.Contains(t, vErr.Fields, "sets[0].reps")
	assert.Contains(t, vErr.Fields, "sets[1].weight")
	assert.Contains(t, vErr.Fields, "sets[2].unit")
	assert.NotContains(t, vErr.Fields, "sets[3].weight")
	assert.NotContains(t, vErr.Fields, "sets[3].reps")
}

func TestExerciseValidate_ReportsEveryViolation(t *testing.T) {
	e := &Exercise{}
	var vErr *ValidationError
	require.ErrorAs(t, e.Validate(), &vErr)

	// A rejected submission lists every violated field at once.
	assert.Len(t, vErr.Fields, 3)
}

func TestValidationError_StableMessage(t *testing.T) {
	e := &Exercise{}
	err := e.Validate()
	require.Error(t, err)

	// Fields appear sorted so the message is deterministic.
	assert.Equal(t, err.Error(), e.Validate().Error())
}
