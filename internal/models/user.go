package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in StarWish. The username is derived from the
// email local-part at registration and denormalized onto wishes and chats;
// the ObjectID stays the sole relationship key.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	Username       string             `bson:"username" json:"username"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Role           string             `bson:"role" json:"role"`

	// Editable profile attributes, defaulted on registration.
	Name        string   `bson:"name" json:"name"`
	Gender      string   `bson:"gender" json:"gender"`
	Age         string   `bson:"age" json:"age"`
	SocialLinks []string `bson:"social_links" json:"social_links"`

	ResetToken    string    `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExp time.Time `bson:"reset_token_exp,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the shape exposed on public profile pages.
type PublicUser struct {
	Username    string   `json:"username"`
	Name        string   `json:"name"`
	Gender      string   `json:"gender"`
	Age         string   `json:"age"`
	SocialLinks []string `json:"social_links"`
}
