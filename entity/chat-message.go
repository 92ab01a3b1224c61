package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// ChatTurn is one persisted exchange unit of a user's conversation.
// Turns are append-only; the store trims old ones per user.
type ChatTurn struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Role      string             `json:"role" bson:"role"` // "user" | "assistant"
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// ChatSummary is one row of the admin chat list: last message per user.
type ChatSummary struct {
	UserID      string    `json:"user_id" bson:"user_id"`
	LastMessage string    `json:"last_message" bson:"last_message"`
	LastTime    time.Time `json:"last_time" bson:"last_time"`
}
