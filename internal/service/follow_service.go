package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/models"
	"github.com/fathima-sithara/socialnet/internal/repository"
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)

type FollowService struct {
	users  repository.UserRepository
	notifs *NotificationService
	log    *zap.Logger
}

func NewFollowService(users repository.UserRepository, notifs *NotificationService, log *zap.Logger) *FollowService {
	return &FollowService{users: users, notifs: notifs, log: log}
}

// Follow links the two users and notifies the target. When the target
// already follows the actor, a follow_back notification goes to the
// actor as well, after the follow one.
func (s *FollowService) Follow(ctx context.Context, userID, targetID string) error {
	if userID == targetID {
		return ErrSelfFollow
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if contains(user.Following, targetID) {
		return ErrAlreadyFollowing
	}
	if err := s.users.Follow(ctx, userID, targetID); err != nil {
		return err
	}

	s.notifs.Dispatch(ctx, targetID, userID, models.NotifFollow, "", "")
	if contains(target.Following, userID) {
		s.notifs.Dispatch(ctx, userID, targetID, models.NotifFollowBack, "", "")
	}
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, userID, targetID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return err
	}
	if !contains(user.Following, targetID) {
		return ErrNotFollowing
	}
	if err := s.users.Unfollow(ctx, userID, targetID); err != nil {
		return err
	}
	s.notifs.Dispatch(ctx, targetID, userID, models.NotifUnfollow, "", "")
	return nil
}

// Status reports the relationship in both directions.
func (s *FollowService) Status(ctx context.Context, userID, targetID string) (following, followedBy bool, err error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, false, err
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return false, false, err
	}
	return contains(user.Following, targetID), contains(target.Following, userID), nil
}

func (s *FollowService) Followers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, u.Followers)
}

func (s *FollowService) Following(ctx context.Context, userID string) ([]models.UserSummary, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, u.Following)
}

func (s *FollowService) summaries(ctx context.Context, ids []string) ([]models.UserSummary, error) {
	out := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		u, err := s.users.GetByID(ctx, id)
		if err != nil {
			continue // deleted account, skip
		}
		out = append(out, u.Summary())
	}
	return out, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
