package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fitlog/workout-tracker/internal/domain"
	"fitlog/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes implementing the repository interfaces with the same
// owner-scoping contract as the Mongo implementations.

// --- fakeWorkoutRepo ---

type fakeWorkoutRepo struct {
	workouts    map[primitive.ObjectID]domain.Workout
	createCalls int
	updateCalls int
	deleteCalls int
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]domain.Workout)}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.createCalls++
	now := time.Now()
	stored := *workout
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.workouts[stored.ID] = stored
	return stored.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, ownerID, id primitive.ObjectID) (*domain.Workout, error) {
	w, ok := r.workouts[id]
	if !ok || w.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	found := w
	return &found, nil
}

func (r *fakeWorkoutRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	result := []domain.Workout{}
	for _, w := range r.workouts {
		if w.OwnerID == ownerID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	r.updateCalls++
	existing, ok := r.workouts[workout.ID]
	if !ok || existing.OwnerID != workout.OwnerID {
		return repository.ErrNotFound
	}
	existing.Name = workout.Name
	existing.Date = workout.Date
	existing.Notes = workout.Notes
	existing.UpdatedAt = time.Now()
	r.workouts[workout.ID] = existing
	return nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	r.deleteCalls++
	if w, ok := r.workouts[id]; ok && w.OwnerID == ownerID {
		delete(r.workouts, id)
	}
	return nil
}

// --- fakeExerciseRepo ---

type fakeExerciseRepo struct {
	exercises   []domain.Exercise // slice keeps insertion order
	createCalls int
	updateCalls int
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.createCalls++
	now := time.Now()
	stored := *exercise
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.exercises = append(r.exercises, stored)
	return stored.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, ownerID, id primitive.ObjectID) (*domain.Exercise, error) {
	for i := range r.exercises {
		if r.exercises[i].ID == id && r.exercises[i].OwnerID == ownerID {
			found := r.exercises[i]
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) ListByWorkout(_ context.Context, ownerID, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	result := []domain.Exercise{}
	for _, e := range r.exercises {
		if e.OwnerID == ownerID && e.WorkoutID == workoutID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	r.updateCalls++
	for i := range r.exercises {
		if r.exercises[i].ID == exercise.ID && r.exercises[i].OwnerID == exercise.OwnerID {
			r.exercises[i].Name = exercise.Name
			r.exercises[i].Sets = exercise.Sets
			r.exercises[i].Notes = exercise.Notes
			r.exercises[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeExerciseRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	for i := range r.exercises {
		if r.exercises[i].ID == id && r.exercises[i].OwnerID == ownerID {
			r.exercises = append(r.exercises[:i], r.exercises[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- fakeUserRepo ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	now := time.Now()
	stored := *user
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.ID] = stored
	return stored.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := u
	return &found, nil
}

func (r *fakeUserRepo) SetAvatarKey(_ context.Context, id primitive.ObjectID, avatarKey string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.AvatarKey = avatarKey
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}

// --- fakeTokenRepo ---

type fakeTokenRepo struct {
	revoked map[string]time.Time
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{revoked: make(map[string]time.Time)}
}

func (r *fakeTokenRepo) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	r.revoked[tokenID] = expiresAt
	return nil
}

func (r *fakeTokenRepo) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := r.revoked[tokenID]
	return ok, nil
}

// --- fakeFileStorage ---

type fakeFileStorage struct {
	uploadCalls   int
	downloadCalls int
	lastObjectKey string
	deletedKeys   []string
}

func (s *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	s.uploadCalls++
	s.lastObjectKey = objectKey
	return fmt.Sprintf("https://storage.test/upload/%s?type=%s", objectKey, contentType), nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	s.downloadCalls++
	return "https://storage.test/download/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deletedKeys = append(s.deletedKeys, objectKey)
	return nil
}
