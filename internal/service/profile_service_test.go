package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"fitlog/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type profileFixture struct {
	svc          ProfileService
	userRepo     *fakeUserRepo
	workoutRepo  *fakeWorkoutRepo
	exerciseRepo *fakeExerciseRepo
	storage      *fakeFileStorage
}

func newProfileFixture() *profileFixture {
	f := &profileFixture{
		userRepo:     newFakeUserRepo(),
		workoutRepo:  newFakeWorkoutRepo(),
		exerciseRepo: newFakeExerciseRepo(),
		storage:      &fakeFileStorage{},
	}
	f.svc = NewProfileService(f.userRepo, f.workoutRepo, f.exerciseRepo, f.storage)
	return f
}

func (f *profileFixture) addWorkout(t *testing.T, owner primitive.ObjectID, date time.Time, exerciseCount int) {
	t.Helper()
	id, err := f.workoutRepo.Create(context.Background(), &domain.Workout{
		OwnerID: owner, Name: "Session", Date: date,
	})
	require.NoError(t, err)
	for i := 0; i < exerciseCount; i++ {
		_, err := f.exerciseRepo.Create(context.Background(), &domain.Exercise{
			OwnerID: owner, WorkoutID: id, Name: "Exercise",
			Sets: []domain.Set{{Reps: 5, Weight: 50, Unit: domain.UnitKg}},
		})
		require.NoError(t, err)
	}
}

func TestProfileStats_TotalsStreakAndHistogram(t *testing.T) {
	f := newProfileFixture()
	owner := primitive.NewObjectID()
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.Local) // a Wednesday

	f.addWorkout(t, owner, now, 2)                     // today
	f.addWorkout(t, owner, now.AddDate(0, 0, -1), 3)   // yesterday (Tuesday)
	f.addWorkout(t, owner, now.AddDate(0, 0, -10), 1)  // outside the streak

	result, err := f.svc.Stats(context.Background(), owner, nil, now)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalWorkouts)
	assert.Equal(t, 6, result.TotalExercises)
	assert.Equal(t, 2, result.Streak)

	// Histogram buckets are Monday-first.
	assert.Equal(t, "Mon", result.WeekdayLabels[0])
	assert.Equal(t, 1, result.WeeklyCounts[1], "Tuesday")
	assert.Equal(t, 1, result.WeeklyCounts[2], "Wednesday")

	assert.Nil(t, result.SelectedDate)
	assert.Nil(t, result.OnSelectedDate)
}

func TestProfileStats_SelectedDate(t *testing.T) {
	f := newProfileFixture()
	owner := primitive.NewObjectID()
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.Local)
	selected := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)

	f.addWorkout(t, owner, selected.Add(20*time.Hour), 1) // same day, different hour
	f.addWorkout(t, owner, now, 1)

	result, err := f.svc.Stats(context.Background(), owner, &selected, now)
	require.NoError(t, err)

	require.NotNil(t, result.SelectedDate)
	require.Len(t, result.OnSelectedDate, 1)
}

func TestProfileStats_EmptyAccount(t *testing.T) {
	f := newProfileFixture()

	result, err := f.svc.Stats(context.Background(), primitive.NewObjectID(), nil, time.Now())
	require.NoError(t, err)

	assert.Zero(t, result.TotalWorkouts)
	assert.Zero(t, result.TotalExercises)
	assert.Zero(t, result.Streak)
	assert.Equal(t, [7]int{}, result.WeeklyCounts)
}

func TestProfileStats_ScopedToOwner(t *testing.T) {
	f := newProfileFixture()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	now := time.Now()

	f.addWorkout(t, alice, now, 2)
	f.addWorkout(t, bob, now, 5)

	result, err := f.svc.Stats(context.Background(), alice, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalWorkouts)
	assert.Equal(t, 2, result.TotalExercises)
}

func TestProfileGet_WithAndWithoutAvatar(t *testing.T) {
	f := newProfileFixture()
	id, err := f.userRepo.Create(context.Background(), &domain.User{Email: "lifter@example.com"})
	require.NoError(t, err)

	profile, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "lifter@example.com", profile.Email)
	assert.Empty(t, profile.AvatarURL)

	require.NoError(t, f.userRepo.SetAvatarKey(context.Background(), id, "avatars/abc/key"))

	profile, err = f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Contains(t, profile.AvatarURL, "avatars/abc/key")
}

func TestRequestAvatarUpload_PresignsAndRecordsKey(t *testing.T) {
	f := newProfileFixture()
	id, err := f.userRepo.Create(context.Background(), &domain.User{Email: "lifter@example.com"})
	require.NoError(t, err)

	upload, err := f.svc.RequestAvatarUpload(context.Background(), id, "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.ObjectKey, "avatars/"+id.Hex()+"/"))
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)

	user, err := f.userRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, upload.ObjectKey, user.AvatarKey)
}

func TestRequestAvatarUpload_DeletesPreviousAvatar(t *testing.T) {
	f := newProfileFixture()
	id, err := f.userRepo.Create(context.Background(), &domain.User{Email: "lifter@example.com"})
	require.NoError(t, err)

	first, err := f.svc.RequestAvatarUpload(context.Background(), id, "image/png")
	require.NoError(t, err)
	// The first upload has nothing to replace.
	assert.Empty(t, f.storage.deletedKeys)

	second, err := f.svc.RequestAvatarUpload(context.Background(), id, "image/jpeg")
	require.NoError(t, err)
	require.NotEqual(t, first.ObjectKey, second.ObjectKey)

	// Replacing the avatar removes the now-unreachable old object.
	assert.Equal(t, []string{first.ObjectKey}, f.storage.deletedKeys)

	user, err := f.userRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, second.ObjectKey, user.AvatarKey)
}

func TestRequestAvatarUpload_RejectsNonImage(t *testing.T) {
	f := newProfileFixture()
	id, err := f.userRepo.Create(context.Background(), &domain.User{Email: "lifter@example.com"})
	require.NoError(t, err)

	_, err = f.svc.RequestAvatarUpload(context.Background(), id, "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedContent)
	assert.Zero(t, f.storage.uploadCalls)
}
