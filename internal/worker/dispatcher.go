package worker

import (
	"context"

	"ledger-core/internal/worker/tasks"
)

// Dispatcher 把邮件投递转成 Asynq 任务入队，
// 供业务层在事务提交后调用。
type Dispatcher struct {
	client *Client
}

func NewDispatcher(client *Client) *Dispatcher {
	return &Dispatcher{client: client}
}

func (d *Dispatcher) DispatchDepositConfirmation(ctx context.Context, depositID uint64) error {
	task, err := tasks.NewDepositConfirmTask(depositID)
	if err != nil {
		return err
	}
	_, err = d.client.Enqueue(task)
	return err
}

func (d *Dispatcher) DispatchPasswordReset(ctx context.Context, email, name, resetURL string) error {
	task, err := tasks.NewPasswordResetTask(email, name, resetURL)
	if err != nil {
		return err
	}
	_, err = d.client.Enqueue(task)
	return err
}

func (d *Dispatcher) DispatchAdminAlert(ctx context.Context, subject, body string) error {
	task, err := tasks.NewAdminAlertTask(subject, body)
	if err != nil {
		return err
	}
	_, err = d.client.Enqueue(task)
	return err
}
