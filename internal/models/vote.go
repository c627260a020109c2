package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

// Vote is append-only: one per (wish, voter) pair, never mutated or removed
// except when the whole wish is deleted.
type Vote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WishID    primitive.ObjectID `bson:"wish_id" json:"wish_id"`
	VoterID   primitive.ObjectID `bson:"voter_id" json:"voter_id"`
	Type      string             `bson:"type" json:"type"` // "like" or "dislike"
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
