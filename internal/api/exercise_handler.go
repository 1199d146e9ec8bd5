package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitlog/workout-tracker/internal/domain"
	"fitlog/workout-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request/Response Structs ---

type SetRequest struct {
	Reps   int               `json:"reps"`
	Weight float64           `json:"weight"`
	Unit   domain.WeightUnit `json:"unit"`
}

type SaveExerciseRequest struct {
	Name  string       `json:"name" binding:"required"`
	Sets  []SetRequest `json:"sets" binding:"required"`
	Notes string       `json:"notes"`
}

type SetResponse struct {
	Reps   int               `json:"reps"`
	Weight float64           `json:"weight"`
	Unit   domain.WeightUnit `json:"unit"`
}

type ExerciseResponse struct {
	ID        string        `json:"id"`
	WorkoutID string        `json:"workoutId"`
	Name      string        `json:"name"`
	Sets      []SetResponse `json:"sets"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List exercises of a workout
// @Description Returns the exercises of an owned workout in insertion order.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {array} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{id}/exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), ownerID, workoutID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises")
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// CreateExercise godoc
// @Summary Add an exercise to a workout
// @Description Creates an exercise with its sets inside an owned workout.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param exercise body SaveExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{id}/exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return
	}
	h.saveExercise(c, workoutID, primitive.NilObjectID)
}

// UpdateExercise godoc
// @Summary Update an exercise
// @Description Replaces the name, sets and notes of an owned exercise.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param exercise body SaveExerciseRequest true "Exercise details"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Exercise not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}
	// The update keeps the exercise's existing workout reference; moving
	// an exercise between workouts is not supported.
	h.saveExercise(c, primitive.NilObjectID, exerciseID)
}

// saveExercise is shared by create and update; exerciseID is NilObjectID
// for inserts.
func (h *ExerciseHandler) saveExercise(c *gin.Context, workoutID, exerciseID primitive.ObjectID) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SaveExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sets := make([]domain.Set, len(req.Sets))
	for i, s := range req.Sets {
		sets[i] = domain.Set{Reps: s.Reps, Weight: s.Weight, Unit: s.Unit}
	}

	exercise := &domain.Exercise{
		ID:        exerciseID,
		WorkoutID: workoutID,
		Name:      req.Name,
		Sets:      sets,
		Notes:     req.Notes,
	}

	saved, err := h.exerciseService.SaveExercise(c.Request.Context(), ownerID, exercise)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"fields": validationErr.Fields,
			})
		} else if errors.Is(err, service.ErrWorkoutNotFound) || errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save exercise")
		}
		return
	}

	status := http.StatusOK
	if exerciseID == primitive.NilObjectID {
		status = http.StatusCreated
	}
	c.JSON(status, MapExerciseToResponse(saved))
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Description Deletes an owned exercise. Deleting a missing exercise succeeds.
// @Tags Exercises
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 204 "Exercise deleted"
// @Failure 400 {object} gin.H "Invalid ID format"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	ownerID, err := getOwnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), ownerID, exerciseID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise")
		return
	}

	c.Status(http.StatusNoContent)
}

// --- DTO Mappers ---

// MapExerciseToResponse converts a domain Exercise to its API DTO.
func MapExerciseToResponse(exercise *domain.Exercise) ExerciseResponse {
	if exercise == nil {
		return ExerciseResponse{}
	}

	sets := make([]SetResponse, len(exercise.Sets))
	for i, s := range exercise.Sets {
		sets[i] = SetResponse{Reps: s.Reps, Weight: s.Weight, Unit: s.Unit}
	}

	return ExerciseResponse{
		ID:        exercise.ID.Hex(),
		WorkoutID: exercise.WorkoutID.Hex(),
		Name:      exercise.Name,
		Sets:      sets,
		Notes:     exercise.Notes,
		CreatedAt: exercise.CreatedAt,
		UpdatedAt: exercise.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain Exercises.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}
