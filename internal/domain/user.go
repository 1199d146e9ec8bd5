package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. Every workout and exercise record
// is owned by exactly one user.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`            // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"`         // Never expose this via JSON
	AvatarKey    string             `bson:"avatarKey,omitempty" json:"-"`  // Object storage key, set after an avatar upload
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
