package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Income represents a single income entry recorded by a user.
type Income struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user_id"`
	Icon      string        `bson:"icon"`
	Source    string        `bson:"source"`
	Amount    float64       `bson:"amount"`
	Date      time.Time     `bson:"date"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
