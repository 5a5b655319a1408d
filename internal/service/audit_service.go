package service

import (
	"context"

	"royalty-core/internal/service/mq"
	"royalty-core/pkg/logger"
	"royalty-core/pkg/monitor"

	"go.uber.org/zap"
)

// AuditService tails one event topic and writes an operational audit
// trail to the log. The outbox relay publishes at-least-once, so
// repeated entries for the same event are expected.
type AuditService struct {
	consumer mq.Consumer
	topic    string
}

func NewAuditService(consumer mq.Consumer, topic string) *AuditService {
	return &AuditService{consumer: consumer, topic: topic}
}

// Start subscribes and delivers until ctx is cancelled. Redis consumers
// block in here; Kafka consumers return after spawning their loop.
func (s *AuditService) Start(ctx context.Context) error {
	return s.consumer.Subscribe(ctx, s.topic, s.handle)
}

func (s *AuditService) handle(msg *mq.Message) error {
	monitor.EventsConsumedTotal.WithLabelValues(msg.Topic).Inc()
	logger.Info("event consumed",
		zap.String("topic", msg.Topic),
		zap.String("id", msg.ID),
		zap.ByteString("payload", msg.Payload))
	return nil
}
