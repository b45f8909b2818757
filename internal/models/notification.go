package models

import "time"

const (
	NotifFollow     = "follow"
	NotifFollowBack = "follow_back"
	NotifUnfollow   = "unfollow"
	NotifLike       = "like"
	NotifComment    = "comment"
)

type Notification struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	To        string    `bson:"to" json:"to"`
	From      string    `bson:"from" json:"from"`
	Type      string    `bson:"type" json:"type"`
	PostID    string    `bson:"post_id,omitempty" json:"post_id,omitempty"`
	Message   string    `bson:"message" json:"message"`
	Seen      bool      `bson:"seen" json:"seen"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NotificationView is what gets pushed over the realtime channel and
// returned from the list endpoint: the record plus the actor's identity.
type NotificationView struct {
	ID        string      `json:"id"`
	From      UserSummary `json:"from"`
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	PostID    string      `json:"post_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
