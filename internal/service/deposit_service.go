package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-core/internal/event"
	"ledger-core/internal/model"
	"ledger-core/pkg/logger"
	"ledger-core/pkg/monitor"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrDepositNotFound   = errors.New("deposit transaction not found")
	ErrDepositRejected   = errors.New("deposit has been rejected")
	ErrDepositNotPending = errors.New("deposit is not in pending state")
)

// EmailDispatcher 把确认邮件的投递移出请求路径
// 实现方负责: 发送成功后才把 email_sent 置为 true，失败留待重试
type EmailDispatcher interface {
	DispatchDepositConfirmation(ctx context.Context, depositID uint64) error
}

type DepositService struct {
	db         *gorm.DB
	wallets    *WalletService
	notifs     *NotificationService
	dispatcher EmailDispatcher
	addresses  map[model.CoinType]string
}

func NewDepositService(db *gorm.DB, wallets *WalletService, notifs *NotificationService, dispatcher EmailDispatcher, addresses map[model.CoinType]string) *DepositService {
	return &DepositService{
		db:         db,
		wallets:    wallets,
		notifs:     notifs,
		dispatcher: dispatcher,
		addresses:  addresses,
	}
}

// Address 查询币种对应的固定收款地址
// 地址是共享的静态配置，不按用户生成；充值无法在链上逐笔归属 (已知信任边界)
func (s *DepositService) Address(coin model.CoinType) (string, error) {
	addr, ok := s.addresses[coin]
	if !ok || !coin.Valid() {
		return "", ErrUnsupportedCoin
	}
	return addr, nil
}

// Create 创建充值记录: 用户声称已向共享地址打款，等待管理员确认
func (s *DepositService) Create(ctx context.Context, userID uint64, coin model.CoinType, amount *decimal.Decimal) (*model.DepositTransaction, error) {
	address, err := s.Address(coin)
	if err != nil {
		return nil, err
	}

	deposit := model.DepositTransaction{
		UserID:        userID,
		CoinType:      coin,
		Amount:        amount,
		WalletAddress: address,
		Status:        model.DepositStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&deposit).Error; err != nil {
			return err
		}
		return s.notifs.CreateTx(tx, &model.Notification{
			UserID:  userID,
			Type:    model.NotifGeneral,
			Title:   "Deposit Initiated",
			Message: fmt.Sprintf("You have initiated a %s deposit. Please wait for admin confirmation.", coin.Display()),
		})
	})
	if err != nil {
		return nil, err
	}
	return &deposit, nil
}

// ListForUser 按创建时间倒序返回用户充值记录
func (s *DepositService) ListForUser(ctx context.Context, userID uint64) ([]model.DepositTransaction, error) {
	var deposits []model.DepositTransaction
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&deposits).Error
	return deposits, err
}

// ListAll 管理端充值列表，status 为空则不过滤
func (s *DepositService) ListAll(ctx context.Context, status string) ([]model.DepositTransaction, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var deposits []model.DepositTransaction
	err := q.Find(&deposits).Error
	return deposits, err
}

// Get 查询单条充值记录
func (s *DepositService) Get(ctx context.Context, depositID uint64) (*model.DepositTransaction, error) {
	var deposit model.DepositTransaction
	err := s.db.WithContext(ctx).First(&deposit, depositID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDepositNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deposit, nil
}

// notificationTitle 确认通知的标题，去重检查依赖 "Deposit #<id>" 子串
func notificationTitle(depositID uint64) string {
	return fmt.Sprintf("Deposit #%d Confirmed", depositID)
}

// Confirm 确认充值。整个状态迁移和副作用在一个事务内完成，
// 充值行加行锁，保证并发确认下至多入账一次。
//
// 事务内步骤:
//  1. 锁定充值行; rejected 不可确认; 已 confirmed 只重跑幂等检查
//  2. status -> confirmed, 记录 processed_by; confirmed_at 只在为空时写入
//  3. 通知去重: 标题含 "Deposit #<id>" 的 deposit_confirmed 通知已存在则跳过通知和入账
//  4. 创建通知并入账 (金额存在且为正时)。入账失败记录告警但不回滚通知
//  5. 同事务写入 Outbox 事件
//
// 事务提交后异步投递确认邮件 (email_sent 未置位时)。邮件失败不影响入账。
func (s *DepositService) Confirm(ctx context.Context, depositID, adminID uint64) error {
	var needEmail bool
	var firstConfirm bool
	var coin model.CoinType

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var deposit model.DepositTransaction
		err := lockForUpdate(tx).First(&deposit, depositID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepositNotFound
		}
		if err != nil {
			return err
		}
		if deposit.Status == model.DepositStatusRejected {
			return ErrDepositRejected
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":       model.DepositStatusConfirmed,
			"processed_by": adminID,
		}
		if deposit.ConfirmedAt == nil {
			updates["confirmed_at"] = &now
		}
		if err := tx.Model(&deposit).Updates(updates).Error; err != nil {
			return err
		}

		// 通知去重，同时挡住重复入账
		var existing int64
		if err := tx.Model(&model.Notification{}).
			Where("user_id = ? AND type = ? AND title LIKE ?",
				deposit.UserID, model.NotifDepositConfirmed, "%"+fmt.Sprintf("Deposit #%d", deposit.ID)+"%").
			Count(&existing).Error; err != nil {
			return err
		}

		firstConfirm = existing == 0
		if firstConfirm {
			amountStr := "0.00"
			if deposit.Amount != nil {
				amountStr = deposit.Amount.StringFixed(2)
			}
			if err := s.notifs.CreateTx(tx, &model.Notification{
				UserID:  deposit.UserID,
				Type:    model.NotifDepositConfirmed,
				Title:   notificationTitle(deposit.ID),
				Message: fmt.Sprintf("Your %s deposit of %s has been confirmed and credited to your wallet.", deposit.CoinType.Display(), amountStr),
			}); err != nil {
				return err
			}

			if deposit.Amount != nil && deposit.Amount.GreaterThan(decimal.Zero) {
				if err := s.wallets.CreditTx(tx, deposit.UserID, deposit.CoinType, *deposit.Amount); err != nil {
					// 钱没有入账是资金正确性问题: 告警但不阻塞通知和确认
					logger.Error("充值入账失败，需要人工处理",
						zap.Uint64("deposit_id", deposit.ID),
						zap.Uint64("user_id", deposit.UserID),
						zap.String("coin", string(deposit.CoinType)),
						zap.Error(err))
					monitor.Business.WalletCreditFailures.Inc()
				} else {
					monitor.Business.DepositCreditedAmount.
						WithLabelValues(string(deposit.CoinType)).
						Add(amountFloat(*deposit.Amount))
				}
			}

			confirmedAt := now
			if deposit.ConfirmedAt != nil {
				confirmedAt = *deposit.ConfirmedAt
			}
			amount := ""
			if deposit.Amount != nil {
				amount = deposit.Amount.String()
			}
			if err := model.CreateOutboxMessage(tx, event.TopicDepositEvents,
				fmt.Sprintf("%d", deposit.UserID),
				event.DepositConfirmedEvent{
					DepositID:   deposit.ID,
					UserID:      deposit.UserID,
					CoinType:    string(deposit.CoinType),
					Amount:      amount,
					ConfirmedBy: adminID,
					ConfirmedAt: confirmedAt.Format(time.RFC3339),
				}); err != nil {
				return err
			}
		}

		needEmail = !deposit.EmailSent
		coin = deposit.CoinType
		return nil
	})
	if err != nil {
		return err
	}

	// 只在第一次真正确认时计数，重复确认不重复累加
	if firstConfirm {
		monitor.Business.DepositConfirmedTotal.WithLabelValues(string(coin)).Inc()
	}

	// 邮件是尽力投递: 失败只记录，等待后续重试，不回滚入账
	if needEmail && s.dispatcher != nil {
		if err := s.dispatcher.DispatchDepositConfirmation(ctx, depositID); err != nil {
			logger.Error("确认邮件投递入队失败",
				zap.Uint64("deposit_id", depositID),
				zap.Error(err))
		}
	}
	return nil
}

// Reject 驳回充值，只允许 pending -> rejected
func (s *DepositService) Reject(ctx context.Context, depositID, adminID uint64, notes string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var deposit model.DepositTransaction
		err := lockForUpdate(tx).First(&deposit, depositID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepositNotFound
		}
		if err != nil {
			return err
		}
		if deposit.Status != model.DepositStatusPending {
			return ErrDepositNotPending
		}

		if err := tx.Model(&deposit).Updates(map[string]interface{}{
			"status":       model.DepositStatusRejected,
			"processed_by": adminID,
			"admin_notes":  notes,
		}).Error; err != nil {
			return err
		}

		if err := s.notifs.CreateTx(tx, &model.Notification{
			UserID:  deposit.UserID,
			Type:    model.NotifAccountUpdate,
			Title:   fmt.Sprintf("Deposit #%d Rejected", deposit.ID),
			Message: fmt.Sprintf("Your %s deposit could not be confirmed. Please contact support for details.", deposit.CoinType.Display()),
		}); err != nil {
			return err
		}

		return model.CreateOutboxMessage(tx, event.TopicDepositEvents,
			fmt.Sprintf("%d", deposit.UserID),
			event.DepositRejectedEvent{
				DepositID:  deposit.ID,
				UserID:     deposit.UserID,
				CoinType:   string(deposit.CoinType),
				RejectedBy: adminID,
			})
	})
}

// ResendPendingEmails 为已确认但邮件未送达的充值重新入队投递
func (s *DepositService) ResendPendingEmails(ctx context.Context) (int, error) {
	var deposits []model.DepositTransaction
	if err := s.db.WithContext(ctx).
		Where("status = ? AND email_sent = ?", model.DepositStatusConfirmed, false).
		Find(&deposits).Error; err != nil {
		return 0, err
	}

	queued := 0
	for _, d := range deposits {
		if err := s.dispatcher.DispatchDepositConfirmation(ctx, d.ID); err != nil {
			logger.Error("重发确认邮件入队失败", zap.Uint64("deposit_id", d.ID), zap.Error(err))
			continue
		}
		queued++
	}
	return queued, nil
}

func amountFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
