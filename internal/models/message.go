package models

import "time"

// Message status lifecycle. Transitions are monotonic:
// sent -> delivered -> seen, and never regress.
const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusSeen      = "seen"
)

type Message struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	SenderID   string    `bson:"sender_id" json:"sender_id"`
	ReceiverID string    `bson:"receiver_id,omitempty" json:"receiver_id,omitempty"`
	GroupID    string    `bson:"group_id,omitempty" json:"group_id,omitempty"`
	Content    string    `bson:"content" json:"content"`
	Media      string    `bson:"media,omitempty" json:"media,omitempty"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
