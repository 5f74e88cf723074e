package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account in the tracker. PasswordHash holds only the
// encoded argon2 hash; plaintext passwords never reach the store.
type User struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	FullName        string        `bson:"full_name"`
	Email           string        `bson:"email"`
	PasswordHash    string        `bson:"password_hash"`
	ProfileImageURL *string       `bson:"profile_image_url"`
	CreatedAt       time.Time     `bson:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at"`
}
