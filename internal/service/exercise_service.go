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
	ErrExerciseNotFound = errors.New("exercise not found")
)

// --- Service Interface ---
type ExerciseService interface {
	// ListExercises returns the owner's exercises for a workout. A workout
	// owned by another user yields an empty list, not an error: the owner
	// filter in the query doubles as the authorization check.
	ListExercises(ctx context.Context, ownerID, workoutID primitive.ObjectID) ([]domain.Exercise, error)
	// SaveExercise inserts when the exercise has no ID and updates
	// otherwise. A new exercise must reference an existing, owned workout.
	SaveExercise(ctx context.Context, ownerID primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error)
	// DeleteExercise is idempotent, like workout deletion.
	DeleteExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) error
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, workoutRepo repository.WorkoutRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
	}
}

// ListExercises returns all exercises for the given workout and owner.
func (s *exerciseService) ListExercises(ctx context.Context, ownerID, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrMissingOwner
	}
	return s.exerciseRepo.ListByWorkout(ctx, ownerID, workoutID)
}

// SaveExercise validates and persists an exercise with its embedded sets.
// Validation runs before the write, so a rejected submission never
// modifies the store and nothing is partially saved.
func (s *exerciseService) SaveExercise(ctx context.Context, ownerID primitive.ObjectID, exercise *domain.Exercise) (*domain.Exercise, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrMissingOwner
	}

	exercise.OwnerID = ownerID

	if exercise.ID == primitive.NilObjectID {
		if err := exercise.Validate(); err != nil {
			return nil, err
		}

		// A new exercise only makes sense inside an existing, owned
		// workout. The owner-scoped lookup treats someone else's workout
		// as missing.
		if _, err := s.workoutRepo.GetByID(ctx, ownerID, exercise.WorkoutID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrWorkoutNotFound
			}
			return nil, err
		}

		exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
		if err != nil {
			return nil, err
		}
		exercise.ID = exerciseID
	} else {
		// An exercise keeps its workout for life, so the update takes
		// the stored reference rather than trusting the payload.
		existing, err := s.exerciseRepo.GetByID(ctx, ownerID, exercise.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
		exercise.WorkoutID = existing.WorkoutID

		if err := exercise.Validate(); err != nil {
			return nil, err
		}

		if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
	}

	observability.RecordExerciseSaved()

	saved, err := s.exerciseRepo.GetByID(ctx, ownerID, exercise.ID)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// DeleteExercise removes an owned exercise.
func (s *exerciseService) DeleteExercise(ctx context.Context, ownerID, exerciseID primitive.ObjectID) error {
	if ownerID == primitive.NilObjectID {
		return ErrMissingOwner
	}
	// The repository filter already enforces ownership, so a non-owned id
	// simply deletes nothing and the call succeeds.
	return s.exerciseRepo.Delete(ctx, ownerID, exerciseID)
}
