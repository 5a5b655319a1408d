package service

import (
	"context"
	"time"

	"royalty-core/internal/model"
	"royalty-core/internal/service/mq"
	"royalty-core/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RelayService moves outbox rows to the message queue. Delivery is
// at-least-once: a row is marked SENT only after the broker accepts it, so
// consumers must be idempotent.
type RelayService struct {
	db       *gorm.DB
	producer mq.Producer
	interval time.Duration
}

func NewRelayService(db *gorm.DB, producer mq.Producer) *RelayService {
	return &RelayService{
		db:       db,
		producer: producer,
		interval: 500 * time.Millisecond,
	}
}

func (s *RelayService) Start(ctx context.Context) {
	logger.Info("outbox relay started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			s.processPendingMessages(ctx)
		}
	}
}

func (s *RelayService) processPendingMessages(ctx context.Context) {
	var messages []model.OutboxMessage
	// 50 at a time keeps memory bounded.
	if err := s.db.Where("status = ?", "PENDING").Limit(50).Find(&messages).Error; err != nil {
		logger.Error("relay: query outbox failed", zap.Error(err))
		return
	}

	if len(messages) == 0 {
		return
	}

	for _, msg := range messages {
		if err := s.producer.Publish(ctx, msg.Topic, "", msg.Payload); err != nil {
			logger.Error("relay: publish failed",
				zap.Uint64("id", msg.ID),
				zap.String("topic", msg.Topic),
				zap.Error(err))
			continue
		}

		// Marked SENT only after a successful publish. If this update fails
		// the message goes out again next tick.
		if err := s.db.Model(&msg).Update("status", "SENT").Error; err != nil {
			logger.Error("relay: mark sent failed", zap.Uint64("id", msg.ID), zap.Error(err))
		}
	}
}
