package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-core/internal/model"
	"ledger-core/pkg/cache"
	"ledger-core/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

const unreadCountTTL = 5 * time.Minute

type NotificationService struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewNotificationService(db *gorm.DB, c cache.Cache) *NotificationService {
	return &NotificationService{db: db, cache: c}
}

func unreadCountKey(userID uint64) string {
	return fmt.Sprintf("notif:unread:%d", userID)
}

// CreateTx 在调用方事务内创建通知，并使未读数缓存失效
func (s *NotificationService) CreateTx(tx *gorm.DB, n *model.Notification) error {
	if err := tx.Create(n).Error; err != nil {
		return err
	}
	s.invalidate(n.UserID)
	return nil
}

// Create 创建通知 (独立事务)
func (s *NotificationService) Create(ctx context.Context, n *model.Notification) error {
	return s.CreateTx(s.db.WithContext(ctx), n)
}

// List 按创建时间倒序返回用户全部通知
func (s *NotificationService) List(ctx context.Context, userID uint64) ([]model.Notification, error) {
	var notifications []model.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// UnreadCount 返回未读通知数，带缓存
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	key := unreadCountKey(userID)

	var cached int64
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}

	if err := s.cache.Set(ctx, key, count, unreadCountTTL); err != nil {
		logger.Warn("缓存未读通知数失败", zap.Error(err))
	}
	return count, nil
}

// MarkRead 标记单条通知已读，只有所属用户可以操作
// 幂等: 重复标记不改变 is_read 和 read_at
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n model.Notification
		err := tx.Where("id = ? AND user_id = ?", notificationID, userID).First(&n).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		if err != nil {
			return err
		}

		if n.IsRead {
			return nil // 已读过，read_at 不再变化
		}

		now := time.Now()
		if err := tx.Model(&n).Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		}).Error; err != nil {
			return err
		}
		s.invalidate(userID)
		return nil
	})
}

// MarkAllRead 标记用户全部未读通知为已读，返回条数
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	s.invalidate(userID)
	return result.RowsAffected, nil
}

func (s *NotificationService) invalidate(userID uint64) {
	if err := s.cache.Delete(context.Background(), unreadCountKey(userID)); err != nil {
		logger.Warn("清除未读通知数缓存失败", zap.Uint64("user_id", userID), zap.Error(err))
	}
}
