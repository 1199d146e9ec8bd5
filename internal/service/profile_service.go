package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fitlog/workout-tracker/internal/domain"
	"fitlog/workout-tracker/internal/repository"
	"fitlog/workout-tracker/internal/stats"
	"fitlog/workout-tracker/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUnsupportedContent = errors.New("avatar must be an image content type")
)

// ProfileStats aggregates everything the profile page shows: totals,
// streak, the weekly histogram and the workouts on a selected date.
type ProfileStats struct {
	TotalWorkouts  int              `json:"totalWorkouts"`
	TotalExercises int              `json:"totalExercises"`
	Streak         int              `json:"streak"`
	WeekdayLabels  [7]string        `json:"weekdayLabels"`
	WeeklyCounts   [7]int           `json:"weeklyCounts"`
	SelectedDate   *time.Time       `json:"selectedDate,omitempty"`
	OnSelectedDate []domain.Workout `json:"onSelectedDate,omitempty"`
}

// Profile is the account summary with an optional presigned avatar URL.
type Profile struct {
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// AvatarUpload carries the presigned PUT URL the client uploads to.
type AvatarUpload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// --- Service Interface ---
type ProfileService interface {
	// Stats loads the owner's workouts once and derives every statistic
	// from that snapshot. The exercise total reflects every workout's
	// exercise list: the result is not returned until all sub-lists have
	// been loaded.
	Stats(ctx context.Context, ownerID primitive.ObjectID, selectedDate *time.Time, now time.Time) (*ProfileStats, error)
	Get(ctx context.Context, ownerID primitive.ObjectID) (*Profile, error)
	// RequestAvatarUpload issues a presigned PUT URL for an image and
	// records the object key on the user.
	RequestAvatarUpload(ctx context.Context, ownerID primitive.ObjectID, contentType string) (*AvatarUpload, error)
}

// --- Service Implementation ---

type profileService struct {
	userRepo     repository.UserRepository
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	fileStorage storage.FileStorage,
) ProfileService {
	return &profileService{
		userRepo:     userRepo,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

// Stats computes the profile statistics from one load of the owner's
// workouts plus one exercise list per workout.
func (s *profileService) Stats(ctx context.Context, ownerID primitive.ObjectID, selectedDate *time.Time, now time.Time) (*ProfileStats, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrMissingOwner
	}

	workouts, err := s.workoutRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Sum exercise counts workout by workout. A failure on any sub-list
	// fails the whole aggregate rather than reporting a partial total.
	totalExercises := 0
	for _, w := range workouts {
		exercises, err := s.exerciseRepo.ListByWorkout(ctx, ownerID, w.ID)
		if err != nil {
			return nil, fmt.Errorf("count exercises for workout %s: %w", w.ID.Hex(), err)
		}
		totalExercises += len(exercises)
	}

	result := &ProfileStats{
		TotalWorkouts:  len(workouts),
		TotalExercises: totalExercises,
		Streak:         stats.Streak(workouts, now),
		WeekdayLabels:  stats.WeekdayLabels,
		WeeklyCounts:   stats.WeeklyHistogram(workouts),
	}

	if selectedDate != nil {
		result.SelectedDate = selectedDate
		result.OnSelectedDate = stats.OnDate(workouts, *selectedDate)
	}

	return result, nil
}

// Get returns the account summary, presigning an avatar download URL when
// the user has uploaded one.
func (s *profileService) Get(ctx context.Context, ownerID primitive.ObjectID) (*Profile, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrMissingOwner
	}

	user, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := &Profile{Email: user.Email}
	if user.AvatarKey != "" {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, 0)
		if err != nil {
			return nil, err
		}
		profile.AvatarURL = url
	}
	return profile, nil
}

// RequestAvatarUpload presigns a PUT URL under avatars/ and remembers the
// key on the user record. The client uploads directly to object storage.
// Replacing an avatar deletes the previous object from the bucket.
func (s *profileService) RequestAvatarUpload(ctx context.Context, ownerID primitive.ObjectID, contentType string) (*AvatarUpload, error) {
	if ownerID == primitive.NilObjectID {
		return nil, ErrMissingOwner
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedContent
	}

	user, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	objectKey := fmt.Sprintf("avatars/%s/%s", ownerID.Hex(), uuid.NewString())

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, 0)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetAvatarKey(ctx, ownerID, objectKey); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// The old object is unreachable once the key is replaced; remove it so
	// abandoned avatars do not pile up in the bucket. Best effort only: a
	// storage hiccup here must not fail the new upload.
	if previous := user.AvatarKey; previous != "" && previous != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, previous); err != nil {
			log.Printf("WARN: Failed to delete previous avatar object '%s': %v", previous, err)
		}
	}

	return &AvatarUpload{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}
