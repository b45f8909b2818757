package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/models"
	"github.com/fathima-sithara/socialnet/internal/repository"
)

var ErrSelfChat = errors.New("cannot add yourself to recent chats")

const recentChatsMax = 10

// RecentChat is either a user or a group entry in the recent list.
type RecentChat struct {
	Type  string              `json:"type"`
	User  *models.UserSummary `json:"user,omitempty"`
	Group *models.Group       `json:"group,omitempty"`
}

type UserService struct {
	users  repository.UserRepository
	groups repository.GroupRepository
	log    *zap.Logger
}

func NewUserService(users repository.UserRepository, groups repository.GroupRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, groups: groups, log: log}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

type ProfileUpdate struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Avatar    string `json:"avatar"`
	IsPrivate *bool  `json:"is_private"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	fields := bson.M{}
	if upd.Name != "" {
		fields["name"] = upd.Name
	}
	if upd.Bio != "" {
		fields["bio"] = upd.Bio
	}
	if upd.Avatar != "" {
		fields["avatar"] = upd.Avatar
	}
	if upd.IsPrivate != nil {
		fields["is_private"] = *upd.IsPrivate
	}
	return s.users.UpdateFields(ctx, id, fields)
}

func (s *UserService) List(ctx context.Context, excludeID string) ([]models.UserSummary, error) {
	return s.users.List(ctx, excludeID)
}

func (s *UserService) Search(ctx context.Context, excludeID, query string) ([]models.UserSummary, error) {
	if query == "" {
		return []models.UserSummary{}, nil
	}
	return s.users.SearchByName(ctx, excludeID, query)
}

func (s *UserService) Suggested(ctx context.Context, excludeID string) ([]models.UserSummary, error) {
	return s.users.Suggested(ctx, excludeID)
}

// AddRecentChat moves the chat to the front of the recent list,
// deduplicated and capped.
func (s *UserService) AddRecentChat(ctx context.Context, userID, chatID string) error {
	if userID == chatID {
		return ErrSelfChat
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	chats := []string{chatID}
	for _, id := range u.RecentChats {
		if id != chatID {
			chats = append(chats, id)
		}
	}
	if len(chats) > recentChatsMax {
		chats = chats[:recentChatsMax]
	}
	return s.users.SetRecentChats(ctx, userID, chats)
}

// RecentChats resolves each stored id to a user or group; entries that
// no longer resolve are pruned from the stored list.
func (s *UserService) RecentChats(ctx context.Context, userID string) ([]RecentChat, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := []RecentChat{}
	keep := []string{}
	for _, id := range u.RecentChats {
		if other, err := s.users.GetByID(ctx, id); err == nil {
			sum := other.Summary()
			out = append(out, RecentChat{Type: "user", User: &sum})
			keep = append(keep, id)
			continue
		}
		if g, err := s.groups.GetByID(ctx, id); err == nil {
			out = append(out, RecentChat{Type: "group", Group: g})
			keep = append(keep, id)
		}
	}
	if len(keep) != len(u.RecentChats) {
		if err := s.users.SetRecentChats(ctx, userID, keep); err != nil {
			s.log.Warn("recent chat prune failed", zap.String("user", userID), zap.Error(err))
		}
	}
	return out, nil
}
