package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat is keyed by a deterministic string id of the form
// "{wishID}_{fulfillerUID}", so starting fulfillment twice for the same
// wish and helper always lands on the same document.
type Chat struct {
	ID              string             `bson:"_id" json:"id"`
	Users           []string           `bson:"users" json:"users"` // exactly two display names
	WishID          primitive.ObjectID `bson:"wish_id" json:"wish_id"`
	LastMessage     string             `bson:"last_message" json:"last_message"`
	LastMessageTime time.Time          `bson:"last_message_time,omitempty" json:"last_message_time,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChatID    string             `bson:"chat_id" json:"chat_id"`
	SenderID  primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	Text      string             `bson:"text,omitempty" json:"text,omitempty"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	System    bool               `bson:"system,omitempty" json:"system,omitempty"` // gratitude and other automated messages
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
