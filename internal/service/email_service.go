package service

import (
	"context"
	"errors"
	"fmt"

	"ledger-core/internal/model"
	"ledger-core/pkg/mailer"

	"gorm.io/gorm"
)

// EmailService 在 Worker 进程内同步发送业务邮件。
// 与 DepositService 分离: Worker 只需要取数、渲染、发送和回写 email_sent。
type EmailService struct {
	db      *gorm.DB
	sender  mailer.Sender
	siteURL string
}

func NewEmailService(db *gorm.DB, sender mailer.Sender, siteURL string) *EmailService {
	return &EmailService{db: db, sender: sender, siteURL: siteURL}
}

// SendDepositConfirmation 发送充值确认邮件并回写 email_sent。
// email_sent 已置位时直接返回，重复入队不会重复发信。
func (s *EmailService) SendDepositConfirmation(ctx context.Context, depositID uint64) error {
	var deposit model.DepositTransaction
	err := s.db.WithContext(ctx).First(&deposit, depositID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDepositNotFound
	}
	if err != nil {
		return err
	}
	if deposit.Status != model.DepositStatusConfirmed {
		return fmt.Errorf("deposit %d is not confirmed", depositID)
	}
	if deposit.EmailSent {
		return nil
	}

	var user model.User
	if err := s.db.WithContext(ctx).First(&user, deposit.UserID).Error; err != nil {
		return err
	}

	amount := "0.00"
	if deposit.Amount != nil {
		amount = deposit.Amount.StringFixed(2)
	}
	body := mailer.DepositConfirmedBody(user.Name, deposit.CoinType.Display(), amount, deposit.ID, s.siteURL)
	subject := fmt.Sprintf("Deposit Confirmed: %s", deposit.CoinType.Display())

	if err := s.sender.Send(user.Email, subject, body); err != nil {
		return err
	}

	// 发送成功才置位。这里失败, 下次任务重入时 EmailSent 仍为 false 会重发一封,
	// 属于可接受的 at-least-once 行为
	return s.db.WithContext(ctx).Model(&deposit).Update("email_sent", true).Error
}
