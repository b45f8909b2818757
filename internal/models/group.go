package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type GroupMember struct {
	UserID string `bson:"user_id" json:"user_id"`
	Role   string `bson:"role" json:"role"`
}

type Group struct {
	ID          string        `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Avatar      string        `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedBy   string        `bson:"created_by" json:"created_by"`
	Members     []GroupMember `bson:"members" json:"members"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
