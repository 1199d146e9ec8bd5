// internal/repository/mongo/workout_repo.go
package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"fitlog/workout-tracker/internal/domain"
	"fitlog/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout. The store assigns ID and CreatedAt.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout requires an owner")
	}
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout owned by ownerID. A workout owned by
// someone else is indistinguishable from a missing one.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"_id": id, "ownerId": ownerID}
	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByOwner retrieves all workouts owned by ownerID, newest first.
func (r *mongoWorkoutRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Empty slice (not nil) if the owner has no workouts.
	return workouts, nil
}

// Update rewrites the mutable fields of an owned workout. The filter
// includes the owner, so a mismatched owner matches zero documents and is
// reported as ErrNotFound (never silently applied).
func (r *mongoWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == primitive.NilObjectID || workout.OwnerID == primitive.NilObjectID {
		return errors.New("workout ID and owner ID are required for update")
	}

	filter := bson.M{"_id": workout.ID, "ownerId": workout.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":      workout.Name,
			"date":      workout.Date,
			"notes":     workout.Notes,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Missing OR not owned by this user; indistinguishable by design.
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an owned workout. A zero deleted count (missing id, or a
// workout owned by someone else) is a successful no-op: deletes are
// idempotent. Exercises referencing the workout are NOT cascaded; callers
// delete them explicitly.
func (r *mongoWorkoutRepository) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	if ownerID == primitive.NilObjectID {
		return errors.New("owner ID is required for deletion")
	}

	filter := bson.M{"_id": id, "ownerId": ownerID}
	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Listing is always owner-scoped and createdAt-descending.
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// Calendar grouping filters on the workout date.
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal; queries still work, slower.
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
