package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"fitlog/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const revokedTokenCollectionName = "revoked_tokens"

// revokedToken is the stored shape of a revoked JWT ID. The expiresAt field
// drives a TTL index, so documents disappear once the token itself would
// have expired anyway.
type revokedToken struct {
	TokenID   string    `bson:"tokenId"`
	ExpiresAt time.Time `bson:"expiresAt"`
	RevokedAt time.Time `bson:"revokedAt"`
}

// mongoTokenRepository implements repository.TokenRepository.
type mongoTokenRepository struct {
	collection *mongo.Collection
}

// NewMongoTokenRepository creates a new revoked-token repository.
func NewMongoTokenRepository(db *mongo.Database) repository.TokenRepository {
	return &mongoTokenRepository{
		collection: db.Collection(revokedTokenCollectionName),
	}
}

// Revoke records a token ID as revoked until its natural expiry.
// Revoking the same token twice is a no-op success.
func (r *mongoTokenRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("token ID is required")
	}

	doc := revokedToken{
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
		RevokedAt: time.Now().UTC(),
	}
	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// IsRevoked reports whether the token ID has been revoked.
func (r *mongoTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	filter := bson.M{"tokenId": tokenID}
	err := r.collection.FindOne(ctx, filter).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnsureRevokedTokenIndexes creates the unique token index and the TTL
// index that expires entries at their expiresAt timestamp.
func EnsureRevokedTokenIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tokenId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is not fatal; queries still work, slower.
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
