package service

import (
	"context"
	"time"

	"ledger-core/internal/model"
	"ledger-core/internal/service/mq"
	"ledger-core/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RelayService 负责将本地消息表的消息搬运到 MQ
type RelayService struct {
	db       *gorm.DB
	producer mq.Producer
	interval time.Duration
}

func NewRelayService(db *gorm.DB, producer mq.Producer) *RelayService {
	return &RelayService{
		db:       db,
		producer: producer,
		interval: 500 * time.Millisecond, // 500ms 轮询一次
	}
}

func (s *RelayService) Start(ctx context.Context) {
	logger.Info("启动 Outbox 消息中继")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Outbox 消息中继停止")
			return
		case <-ticker.C:
			s.processPendingMessages(ctx)
		}
	}
}

func (s *RelayService) processPendingMessages(ctx context.Context) {
	// 1. 取一批 Pending 消息，限制批量避免内存失控
	var messages []model.OutboxMessage
	if err := s.db.Where("status = ?", "PENDING").Order("id ASC").Limit(50).Find(&messages).Error; err != nil {
		logger.Error("查询 Outbox 消息失败", zap.Error(err))
		return
	}
	if len(messages) == 0 {
		return
	}

	for _, msg := range messages {
		// 2. 发送 MQ。发送成功才更新状态 => At-least-once，Consumer 需做好幂等
		if err := s.producer.Publish(ctx, msg.Topic, msg.Key, msg.Payload); err != nil {
			logger.Error("Outbox 消息投递失败", zap.Uint64("id", msg.ID), zap.Error(err))
			continue
		}

		// 3. 更新状态为 SENT。这里失败下次会重发
		if err := s.db.Model(&msg).Update("status", "SENT").Error; err != nil {
			logger.Error("Outbox 状态更新失败", zap.Uint64("id", msg.ID), zap.Error(err))
		}
	}
}
