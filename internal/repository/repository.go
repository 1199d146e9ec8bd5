package repository

import (
	"context"
	"time"

	"fitlog/workout-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetAvatarKey(ctx context.Context, id primitive.ObjectID, avatarKey string) error
}

// WorkoutRepository defines the interface for interacting with workout data.
// Every method is owner-scoped: the filter built by the implementation MUST
// unconditionally include the owner, so reads double as the authorization
// check (a record owned by someone else behaves as if it does not exist).
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Workout, error)
	// ListByOwner returns the owner's workouts ordered by createdAt descending.
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error)
	// Update rewrites the mutable fields of an owned workout.
	// Returns ErrNotFound when no owned document matched.
	Update(ctx context.Context, workout *domain.Workout) error
	// Delete removes an owned workout. Deleting a missing or non-owned id is
	// a no-op success rather than an error.
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with exercise
// data. Same owner-scoping rule as WorkoutRepository.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Exercise, error)
	// ListByWorkout returns the owner's exercises for the given workout in
	// insertion order. A workout owned by someone else yields an empty
	// slice, not an error.
	ListByWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

// TokenRepository tracks revoked JWT IDs so that logging out invalidates
// the token server-side. Entries expire together with the token itself.
type TokenRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
