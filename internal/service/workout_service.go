package service

import (
	"context"
	"errors"

	"fitlog/workout-tracker/internal/domain"
	"fitlog/workout-tracker/internal/observability"
	"fitlog/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrMissingOwner    = errors.New("an authenticated owner is required")
)

// --- Service Interface ---
type WorkoutService interface {
	ListWorkouts(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error)
	GetWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error)
	// SaveWorkout inserts when the workout has no ID and updates otherwise.
	// The owner is always taken from ownerID, never from the payload.
	SaveWorkout(ctx context.Context, ownerID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error)
	// DeleteWorkout is idempotent: deleting a missing or non-owned workout
	// succeeds without touching anything.
	DeleteWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) error
}

// --- Service Implementation ---

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
	}
}

// ListWorkouts returns all workouts owned by ownerID, newest first.
func (s *workoutService) ListWorkouts(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrMissingOwner
	}
	return s.workoutRepo.ListByOwner(ctx, ownerID)
}

// GetWorkout retrieves a single owned workout.
func (s *workoutService) GetWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrMissingOwner
	}
	workout, err := s.workoutRepo.GetByID(ctx, ownerID, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// SaveWorkout validates and persists a workout. Validation happens before
// any store call; a rejected submission never reaches the repository.
func (s *workoutService) SaveWorkout(ctx context.Context, ownerID primitive.ObjectID, workout *domain.Workout) (*domain.Workout, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrMissingOwner
	}
	if err := workout.Validate(); err != nil {
		return nil, err
	}

	// The caller never supplies ownership; the service assigns it.
	workout.OwnerID = ownerID

	if workout.ID == primitive.NilObjectID {
		workoutID, err := s.workoutRepo.Create(ctx, workout)
		if err != nil {
			return nil, err
		}
		workout.ID = workoutID
	} else {
		// The owner-scoped filter makes an update of someone else's
		// workout match zero documents; that surfaces as not-found
		// instead of silently succeeding.
		if err := s.workoutRepo.Update(ctx, workout); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrWorkoutNotFound
			}
			return nil, err
		}
	}

	observability.RecordWorkoutSaved()

	// Fetch again so the returned record carries the store-assigned fields.
	saved, err := s.workoutRepo.GetByID(ctx, ownerID, workout.ID)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteWorkout removes an owned workout. Exercises referencing it are not
// cascaded; the caller deletes them explicitly. Whether orphaned exercise
// rows are acceptable is a product decision, not something this layer
// silently changes.
func (s *workoutService) DeleteWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) error {
	if ownerID == primitive.NilObjectID {
		return ErrMissingOwner
	}
	return s.workoutRepo.Delete(ctx, ownerID, workoutID)
}
