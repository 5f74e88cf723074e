package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Expense represents a single expense entry recorded by a user.
type Expense struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"user_id"`
	Icon      string        `bson:"icon"`
	Category  string        `bson:"category"`
	Amount    float64       `bson:"amount"`
	Date      time.Time     `bson:"date"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}
