package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer publishes domain events (message persisted, notification
// created) for downstream consumers. Publishing is best effort: a
// broker outage is logged and never surfaced to the triggering action.
type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewProducer returns nil when no brokers are configured; a nil
// Producer is safe to publish to.
func NewProducer(brokers []string, log *zap.Logger) *Producer {
	if len(brokers) == 0 {
		return nil
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	return &Producer{writer: w, log: log}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) {
	if p == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		p.log.Warn("event marshal failed", zap.String("topic", topic), zap.Error(err))
		return
	}
	msg := kafka.Message{Topic: topic, Key: []byte(key), Value: data, Time: time.Now()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warn("event publish failed", zap.String("topic", topic), zap.Error(err))
	}
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
