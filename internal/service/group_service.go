package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/models"
	"github.com/fathima-sithara/socialnet/internal/repository"
)

var (
	ErrNameRequired  = errors.New("group name required")
	ErrNotGroupAdmin = errors.New("not a group admin")
)

type GroupService struct {
	groups repository.GroupRepository
	log    *zap.Logger
}

func NewGroupService(groups repository.GroupRepository, log *zap.Logger) *GroupService {
	return &GroupService{groups: groups, log: log}
}

// Create makes the creator an admin and everyone else a member.
func (s *GroupService) Create(ctx context.Context, creatorID, name, description, avatar string, memberIDs []string) (*models.Group, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	members := []models.GroupMember{{UserID: creatorID, Role: models.RoleAdmin}}
	for _, id := range memberIDs {
		if id == creatorID {
			continue
		}
		members = append(members, models.GroupMember{UserID: id, Role: models.RoleMember})
	}
	return s.groups.Create(ctx, &models.Group{
		Name:        name,
		Description: description,
		Avatar:      avatar,
		CreatedBy:   creatorID,
		Members:     members,
	})
}

func (s *GroupService) Get(ctx context.Context, id string) (*models.Group, error) {
	return s.groups.GetByID(ctx, id)
}

func (s *GroupService) ListForUser(ctx context.Context, userID string) ([]models.Group, error) {
	return s.groups.ListForUser(ctx, userID)
}

func (s *GroupService) AddMember(ctx context.Context, actorID, groupID, userID string) error {
	if err := s.requireAdmin(ctx, actorID, groupID); err != nil {
		return err
	}
	return s.groups.AddMember(ctx, groupID, models.GroupMember{UserID: userID, Role: models.RoleMember})
}

// RemoveMember allows admins to remove anyone and members to leave.
func (s *GroupService) RemoveMember(ctx context.Context, actorID, groupID, userID string) error {
	if actorID != userID {
		if err := s.requireAdmin(ctx, actorID, groupID); err != nil {
			return err
		}
	}
	return s.groups.RemoveMember(ctx, groupID, userID)
}

func (s *GroupService) requireAdmin(ctx context.Context, actorID, groupID string) error {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	for _, m := range g.Members {
		if m.UserID == actorID && m.Role == models.RoleAdmin {
			return nil
		}
	}
	return ErrNotGroupAdmin
}
