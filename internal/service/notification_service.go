package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/events"
	"github.com/fathima-sithara/socialnet/internal/metrics"
	"github.com/fathima-sithara/socialnet/internal/models"
	"github.com/fathima-sithara/socialnet/internal/realtime"
	"github.com/fathima-sithara/socialnet/internal/repository"
)

// Pusher is the hub capability the dispatcher needs: direct delivery
// to a user's live connection, if one exists.
type Pusher interface {
	PushToUser(userID, event string, payload any) bool
}

type NotificationService struct {
	repo        repository.NotificationRepository
	users       repository.UserRepository
	pusher      Pusher
	sched       *Scheduler
	producer    *events.Producer
	topic       string
	deleteDelay time.Duration
	log         *zap.SugaredLogger
}

func NewNotificationService(
	repo repository.NotificationRepository,
	users repository.UserRepository,
	pusher Pusher,
	producer *events.Producer,
	topic string,
	deleteDelay time.Duration,
	log *zap.Logger,
) *NotificationService {
	return &NotificationService{
		repo:        repo,
		users:       users,
		pusher:      pusher,
		sched:       NewScheduler(),
		producer:    producer,
		topic:       topic,
		deleteDelay: deleteDelay,
		log:         log.Sugar(),
	}
}

func composeMessage(actorName, typ, commentText string) string {
	switch typ {
	case models.NotifFollow:
		return fmt.Sprintf("%s started following you", actorName)
	case models.NotifFollowBack:
		return fmt.Sprintf("%s followed you back, now you are mutual friends", actorName)
	case models.NotifUnfollow:
		return fmt.Sprintf("%s unfollowed you", actorName)
	case models.NotifLike:
		return fmt.Sprintf("%s liked your post", actorName)
	case models.NotifComment:
		return fmt.Sprintf("%s commented: %q", actorName, commentText)
	}
	return ""
}

// Dispatch composes and persists a notification, and pushes it when the
// recipient is connected. The triggering action has already committed
// by the time this runs, so every failure here is logged and swallowed:
// a broken notification never rolls back a like or a follow.
func (s *NotificationService) Dispatch(ctx context.Context, to, from, typ, postID, commentText string) *models.Notification {
	actor, err := s.users.GetByID(ctx, from)
	if err != nil {
		s.log.Errorw("notification dispatch: actor lookup failed", "from", from, "err", err)
		return nil
	}

	n := &models.Notification{
		To:      to,
		From:    from,
		Type:    typ,
		PostID:  postID,
		Message: composeMessage(actor.Name, typ, commentText),
	}
	n, err = s.repo.Insert(ctx, n)
	if err != nil {
		s.log.Errorw("notification dispatch: persist failed", "to", to, "type", typ, "err", err)
		return nil
	}

	view := models.NotificationView{
		ID:        n.ID,
		From:      actor.Summary(),
		Type:      n.Type,
		Message:   n.Message,
		PostID:    n.PostID,
		CreatedAt: n.CreatedAt,
	}
	if s.pusher.PushToUser(to, realtime.EvNotification, view) {
		metrics.NotificationsPushed.Inc()
	} else {
		metrics.NotificationsStored.Inc()
	}
	s.producer.Publish(ctx, s.topic, n.ID, n)
	return n
}

// List returns the recipient's notifications newest first, with the
// actor's identity resolved.
func (s *NotificationService) List(ctx context.Context, userID string) ([]models.NotificationView, error) {
	notifs, err := s.repo.ListForUser(ctx, userID, 50)
	if err != nil {
		return nil, err
	}

	actors := map[string]models.UserSummary{}
	out := make([]models.NotificationView, 0, len(notifs))
	for _, n := range notifs {
		actor, ok := actors[n.From]
		if !ok {
			u, err := s.users.GetByID(ctx, n.From)
			if err != nil {
				// actor account gone; keep the record with a bare id
				actor = models.UserSummary{ID: n.From}
			} else {
				actor = u.Summary()
			}
			actors[n.From] = actor
		}
		out = append(out, models.NotificationView{
			ID:        n.ID,
			From:      actor,
			Type:      n.Type,
			Message:   n.Message,
			PostID:    n.PostID,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

func (s *NotificationService) UnseenCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.UnseenCount(ctx, userID)
}

// MarkSeen flips the seen flag and schedules the record's deletion.
// An unknown id is a no-op: the record may already be cleaned up.
func (s *NotificationService) MarkSeen(ctx context.Context, id string) error {
	matched, err := s.repo.MarkSeen(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		return nil
	}
	s.sched.Schedule(id, s.deleteDelay, func() {
		if err := s.repo.Delete(context.Background(), id); err != nil {
			s.log.Warnw("deferred notification delete failed", "id", id, "err", err)
		}
	})
	return nil
}

func (s *NotificationService) CleanupSeen(ctx context.Context, userID string) error {
	return s.repo.DeleteSeenFor(ctx, userID)
}

// DeletionPending reports whether a deferred delete is scheduled.
func (s *NotificationService) DeletionPending(id string) bool {
	return s.sched.Scheduled(id)
}

// FlushDeletion runs a scheduled delete immediately.
func (s *NotificationService) FlushDeletion(id string) bool {
	return s.sched.Fire(id)
}
