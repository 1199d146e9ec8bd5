// internal/repository/mongo/exercise_repo.go
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

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise with its embedded sets. The sets are stored
// as an ordered array inside the exercise document, so the write is atomic:
// either the exercise with all its sets is persisted, or nothing is.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.OwnerID == primitive.NilObjectID || exercise.WorkoutID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise requires an owner and a workout")
	}
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted exercise ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single exercise owned by ownerID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id, "ownerId": ownerID}
	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// ListByWorkout retrieves the owner's exercises for a workout in insertion
// order. Ownership is enforced by the query filter itself: asking for a
// workout owned by another user simply matches nothing.
func (r *mongoExerciseRepository) ListByWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) ([]domain.Exercise, error) {
	filter := bson.M{"workoutId": workoutID, "ownerId": ownerID}
	// _id ascending is insertion order for ObjectIDs.
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Update replaces the mutable fields of an owned exercise, including the
// whole sets array (last write wins, no concurrency token).
func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == primitive.NilObjectID || exercise.OwnerID == primitive.NilObjectID {
		return errors.New("exercise ID and owner ID are required for update")
	}

	filter := bson.M{"_id": exercise.ID, "ownerId": exercise.OwnerID}
	updateDoc := bson.M{
		"$set": bson.M{
			"name":      exercise.Name,
			"sets":      exercise.Sets,
			"notes":     exercise.Notes,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an owned exercise; idempotent like workout deletion.
func (r *mongoExerciseRepository) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	if ownerID == primitive.NilObjectID {
		return errors.New("owner ID is required for deletion")
	}

	filter := bson.M{"_id": id, "ownerId": ownerID}
	_, err := r.collection.DeleteOne(ctx, filter)
	return err
}

// EnsureExerciseIndexes creates necessary indexes. Call during startup.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// The only list query: exercises of one workout for one owner.
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "workoutId", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal; queries still work, slower.
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
