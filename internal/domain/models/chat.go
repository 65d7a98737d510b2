// internal/domain/models/chat.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat message types.
const (
	ChatMessageUser = "user"
	ChatMessageBot  = "bot"
)

// ChatMessage is one entry in a visitor's transcript.
type ChatMessage struct {
	ID        string    `bson:"id" json:"id"`
	Content   string    `bson:"content" json:"content"`
	Type      string    `bson:"type" json:"type"` // "user" or "bot"
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// ChatHistory is the full transcript for one anonymous visitor, keyed by the
// visitor ID the client generates and keeps in local storage.
type ChatHistory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Messages  []ChatMessage      `bson:"messages" json:"messages"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
