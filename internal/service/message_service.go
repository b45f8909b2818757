package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fathima-sithara/socialnet/internal/events"
	"github.com/fathima-sithara/socialnet/internal/metrics"
	"github.com/fathima-sithara/socialnet/internal/models"
	"github.com/fathima-sithara/socialnet/internal/realtime"
	"github.com/fathima-sithara/socialnet/internal/repository"
)

var (
	ErrContentRequired = errors.New("message content required")
	ErrTargetRequired  = errors.New("message target required")
)

// Broadcaster is the hub capability the pipeline needs: room fan-out.
type Broadcaster interface {
	BroadcastToRoom(roomID, event string, payload any, excludeConnID string)
}

// MessageService is the delivery pipeline: persist first, then fan out
// to the target room, then publish the domain event. Fan-out and
// publishing are best effort; persistence is the only step that can
// fail the caller.
type MessageService struct {
	repo     repository.MessageRepository
	hub      Broadcaster
	producer *events.Producer
	topic    string
	log      *zap.Logger
}

func NewMessageService(repo repository.MessageRepository, hub Broadcaster, producer *events.Producer, topic string, log *zap.Logger) *MessageService {
	return &MessageService{repo: repo, hub: hub, producer: producer, topic: topic, log: log}
}

type SendInput struct {
	ReceiverID string `json:"receiverId"`
	GroupID    string `json:"groupId"`
	Content    string `json:"content"`
	Media      string `json:"media"`
}

func (s *MessageService) Send(ctx context.Context, senderID string, in SendInput) (*models.Message, error) {
	if in.Content == "" && in.Media == "" {
		return nil, ErrContentRequired
	}
	if in.ReceiverID == "" && in.GroupID == "" {
		return nil, ErrTargetRequired
	}

	m := &models.Message{
		SenderID:   senderID,
		ReceiverID: in.ReceiverID,
		GroupID:    in.GroupID,
		Content:    in.Content,
		Media:      in.Media,
	}
	m, err := s.repo.Insert(ctx, m)
	if err != nil {
		return nil, err
	}
	metrics.MessagesSent.Inc()

	s.hub.BroadcastToRoom(s.roomFor(m), realtime.EvReceiveMessage, m, "")
	s.producer.Publish(ctx, s.topic, m.ID, m)
	return m, nil
}

func (s *MessageService) roomFor(m *models.Message) string {
	if m.GroupID != "" {
		return m.GroupID
	}
	return realtime.DirectRoomID(m.SenderID, m.ReceiverID)
}

// History returns the direct conversation between two users in
// chronological order.
func (s *MessageService) History(ctx context.Context, userA, userB string) ([]models.Message, error) {
	return s.repo.HistoryBetween(ctx, userA, userB)
}

func (s *MessageService) GroupHistory(ctx context.Context, groupID string) ([]models.Message, error) {
	return s.repo.HistoryForGroup(ctx, groupID)
}
