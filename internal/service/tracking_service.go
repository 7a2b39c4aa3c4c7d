package service

import (
	"context"
	"time"

	"ledger-core/internal/model"
	"ledger-core/pkg/logger"
	"ledger-core/pkg/mailer"
	"ledger-core/pkg/monitor"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AlertMailer 管理员告警邮件
type AlertMailer interface {
	DispatchAdminAlert(ctx context.Context, subject, body string) error
}

type TrackingService struct {
	db     *gorm.DB
	alerts AlertMailer
}

func NewTrackingService(db *gorm.DB, alerts AlertMailer) *TrackingService {
	return &TrackingService{db: db, alerts: alerts}
}

// TrackWalletCopy 记录一次收款地址复制事件并尽力通知管理员。
// 告警邮件失败只记录日志，不影响请求。
func (s *TrackingService) TrackWalletCopy(ctx context.Context, t *model.WalletCopyTracking) error {
	if !t.CoinType.Valid() {
		return ErrUnsupportedCoin
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return err
	}

	monitor.Business.WalletCopyTrackedTotal.WithLabelValues(string(t.CoinType)).Inc()

	if s.alerts != nil {
		var user model.User
		if err := s.db.WithContext(ctx).First(&user, t.UserID).Error; err != nil {
			logger.Warn("复制事件关联用户查询失败", zap.Uint64("user_id", t.UserID), zap.Error(err))
			return nil
		}
		subject := "Wallet Address Copied: " + t.CoinType.Display()
		body := mailer.WalletCopyBody(user.Name, user.Email, t.CoinType.Display(),
			t.WalletAddress, t.IPAddress, t.UserAgent, t.CopiedAt.Format(time.RFC1123))
		if err := s.alerts.DispatchAdminAlert(ctx, subject, body); err != nil {
			logger.Warn("管理员告警邮件入队失败",
				zap.Uint64("user_id", t.UserID),
				zap.String("coin", string(t.CoinType)),
				zap.Error(err))
		}
	}
	return nil
}

// ListForUser 用户自己的复制历史，最近的在前
func (s *TrackingService) ListForUser(ctx context.Context, userID uint64) ([]model.WalletCopyTracking, error) {
	var list []model.WalletCopyTracking
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("copied_at DESC").
		Find(&list).Error
	return list, err
}
