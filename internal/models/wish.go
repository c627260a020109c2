package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wish statuses. A wish only ever moves pending -> fulfilling -> fulfilled,
// or gets deleted by its author while still unfulfilled.
const (
	StatusPending    = "pending"
	StatusFulfilling = "fulfilling"
	StatusFulfilled  = "fulfilled"
)

// AnonymousName is the display name shown for wishes posted anonymously.
const AnonymousName = "Anonymous"

type Wish struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID          primitive.ObjectID `bson:"uid" json:"uid"`
	Username     string             `bson:"username" json:"username"`
	Text         string             `bson:"text" json:"text"`
	Category     string             `bson:"category" json:"category"`
	Location     string             `bson:"location" json:"location"`
	Urgency      int                `bson:"urgency" json:"urgency"` // 1..5
	Anonymous    bool               `bson:"anonymous" json:"anonymous"`
	Status       string             `bson:"status" json:"status"`
	Fulfilled    bool               `bson:"fulfilled" json:"fulfilled"`
	Fulfiller    string             `bson:"fulfiller,omitempty" json:"fulfiller,omitempty"`
	FulfillerUID string             `bson:"fulfiller_uid,omitempty" json:"fulfiller_uid,omitempty"`
	Likes        int64              `bson:"likes" json:"likes"`
	Dislikes     int64              `bson:"dislikes" json:"dislikes"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
