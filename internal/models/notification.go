package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationFulfill is emitted to a wish owner when someone starts
// fulfilling their wish.
const NotificationFulfill = "fulfill"

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	To        string             `bson:"to" json:"to"`     // recipient display name
	From      string             `bson:"from" json:"from"` // sender display name
	Type      string             `bson:"type" json:"type"`
	WishID    primitive.ObjectID `bson:"wish_id" json:"wish_id"`
	Seen      bool               `bson:"seen" json:"seen"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"` // for auto-deletion after 7 days
}
