package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"ledger-core/pkg/logger"
	"ledger-core/pkg/mailer"
	"ledger-core/pkg/monitor"
)

// 任务类型常量
const (
	TypeDepositConfirmEmail = "email:deposit_confirm"
	TypePasswordResetEmail  = "email:password_reset"
	TypeAdminAlertEmail     = "email:admin_alert"
)

// DepositConfirmPayload 充值确认邮件任务参数
type DepositConfirmPayload struct {
	DepositID uint64 `json:"deposit_id"`
}

// PasswordResetPayload 密码重置邮件任务参数
type PasswordResetPayload struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	ResetURL string `json:"reset_url"`
}

// AdminAlertPayload 管理员告警邮件任务参数
type AdminAlertPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewDepositConfirmTask 创建充值确认邮件任务
// 最多重试 5 次，防止瞬时 SMTP 故障丢信
func NewDepositConfirmTask(depositID uint64) (*asynq.Task, error) {
	payload, err := json.Marshal(DepositConfirmPayload{DepositID: depositID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDepositConfirmEmail, payload,
		asynq.MaxRetry(5), asynq.Timeout(2*time.Minute), asynq.Queue("critical")), nil
}

func NewPasswordResetTask(email, name, resetURL string) (*asynq.Task, error) {
	payload, err := json.Marshal(PasswordResetPayload{Email: email, Name: name, ResetURL: resetURL})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePasswordResetEmail, payload,
		asynq.MaxRetry(3), asynq.Timeout(2*time.Minute), asynq.Queue("critical")), nil
}

func NewAdminAlertTask(subject, body string) (*asynq.Task, error) {
	payload, err := json.Marshal(AdminAlertPayload{Subject: subject, Body: body})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAdminAlertEmail, payload,
		asynq.MaxRetry(2), asynq.Timeout(2*time.Minute), asynq.Queue("low")), nil
}

// DepositEmailSender 由 handler 回调业务层完成取数、渲染、发送和 email_sent 回写
type DepositEmailSender interface {
	SendDepositConfirmation(ctx context.Context, depositID uint64) error
}

// Mailer 同步投递一封邮件
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// EmailHandlers 持有任务处理所需的依赖
type EmailHandlers struct {
	deposits   DepositEmailSender
	mailer     Mailer
	adminEmail string
}

func NewEmailHandlers(deposits DepositEmailSender, mailer Mailer, adminEmail string) *EmailHandlers {
	return &EmailHandlers{deposits: deposits, mailer: mailer, adminEmail: adminEmail}
}

// HandleDepositConfirm 处理充值确认邮件任务
func (h *EmailHandlers) HandleDepositConfirm(ctx context.Context, t *asynq.Task) error {
	var p DepositConfirmPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// JSON 解析失败，重试也没用，直接跳过 (SkipRetry)
		// 任务会进入 Archived 队列，方便排查
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.deposits.SendDepositConfirmation(ctx, p.DepositID); err != nil {
		monitor.Business.EmailFailedTotal.WithLabelValues("deposit_confirm").Inc()
		return err
	}

	monitor.Business.EmailSentTotal.WithLabelValues("deposit_confirm").Inc()
	logger.Info("充值确认邮件已发送", zap.Uint64("deposit_id", p.DepositID))
	return nil
}

// HandlePasswordReset 处理密码重置邮件任务
func (h *EmailHandlers) HandlePasswordReset(ctx context.Context, t *asynq.Task) error {
	var p PasswordResetPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	body := mailer.PasswordResetBody(p.Name, p.ResetURL)
	if err := h.mailer.Send(p.Email, "Reset Your Vault Ledger Password", body); err != nil {
		monitor.Business.EmailFailedTotal.WithLabelValues("password_reset").Inc()
		return err
	}

	monitor.Business.EmailSentTotal.WithLabelValues("password_reset").Inc()
	return nil
}

// HandleAdminAlert 处理管理员告警邮件任务
func (h *EmailHandlers) HandleAdminAlert(ctx context.Context, t *asynq.Task) error {
	var p AdminAlertPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.mailer.Send(h.adminEmail, p.Subject, p.Body); err != nil {
		monitor.Business.EmailFailedTotal.WithLabelValues("admin_alert").Inc()
		return err
	}

	monitor.Business.EmailSentTotal.WithLabelValues("admin_alert").Inc()
	return nil
}
