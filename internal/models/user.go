package models

import "time"

type User struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Password    string    `bson:"password" json:"-"`
	Bio         string    `bson:"bio" json:"bio"`
	Avatar      string    `bson:"avatar" json:"avatar"`
	IsPrivate   bool      `bson:"is_private" json:"is_private"`
	Followers   []string  `bson:"followers" json:"followers"`
	Following   []string  `bson:"following" json:"following"`
	RecentChats []string  `bson:"recent_chats" json:"recent_chats"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// UserSummary is the public projection embedded in posts, notifications
// and search results.
type UserSummary struct {
	ID     string `bson:"_id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar" json:"avatar"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
