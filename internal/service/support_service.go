package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ledger-core/internal/model"
	"ledger-core/pkg/monitor"

	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("support ticket not found")

// ticketSeqLockKey 工单编号分配使用的 Postgres 咨询锁 Key
const ticketSeqLockKey = 874201

type SupportService struct {
	db     *gorm.DB
	notifs *NotificationService
}

func NewSupportService(db *gorm.DB, notifs *NotificationService) *SupportService {
	return &SupportService{db: db, notifs: notifs}
}

// nextTicketID 分配下一个 ST-00001 格式编号
// 读取-递增必须串行化: Postgres 上用事务级咨询锁保护，避免并发建单撞号
func nextTicketID(tx *gorm.DB) (string, error) {
	if tx.Dialector.Name() == "postgres" {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", ticketSeqLockKey).Error; err != nil {
			return "", err
		}
	}

	var last model.SupportTicket
	err := tx.Order("id DESC").First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	next := 1
	if err == nil {
		parts := strings.SplitN(last.TicketID, "-", 2)
		if len(parts) == 2 {
			if n, perr := strconv.Atoi(parts[1]); perr == nil {
				next = n + 1
			}
		}
	}
	return fmt.Sprintf("ST-%05d", next), nil
}

// Create 创建工单并通知用户
func (s *SupportService) Create(ctx context.Context, userID uint64, department, subject, message string) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticketID, err := nextTicketID(tx)
		if err != nil {
			return err
		}

		ticket = model.SupportTicket{
			TicketID:   ticketID,
			UserID:     userID,
			Department: department,
			Subject:    subject,
			Message:    message,
			Status:     model.TicketStatusOpen,
			Priority:   model.PriorityMedium,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}

		return s.notifs.CreateTx(tx, &model.Notification{
			UserID:          userID,
			Type:            model.NotifSupportTicket,
			Title:           "Support Ticket Submitted",
			Message:         fmt.Sprintf("Your support ticket #%s has been received and assigned to our team. You will receive a response within 24 hours.", ticketID),
			SupportTicketID: &ticket.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	monitor.Business.TicketOpenedTotal.Inc()
	return &ticket, nil
}

// ListForUser 返回用户自己的工单，内部回复被过滤掉
func (s *SupportService) ListForUser(ctx context.Context, userID uint64) ([]model.SupportTicket, error) {
	var tickets []model.SupportTicket
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_internal = ?", false).Order("support_replies.created_at ASC")
		}).
		Find(&tickets).Error
	return tickets, err
}

// ListAll 管理端查询全部工单，包含内部回复
func (s *SupportService) ListAll(ctx context.Context) ([]model.SupportTicket, error) {
	var tickets []model.SupportTicket
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("support_replies.created_at ASC")
		}).
		Find(&tickets).Error
	return tickets, err
}

// UserReply 用户回复自己的工单。已关闭的工单被重新打开
func (s *SupportService) UserReply(ctx context.Context, userID uint64, ticketID, message string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket model.SupportTicket
		err := tx.Where("ticket_id = ? AND user_id = ?", ticketID, userID).First(&ticket).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketNotFound
		}
		if err != nil {
			return err
		}

		reply := model.SupportReply{
			TicketRowID: ticket.ID,
			UserID:      userID,
			Message:     message,
			IsInternal:  false,
		}
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}

		if ticket.Status == model.TicketStatusClosed {
			return tx.Model(&ticket).Updates(map[string]interface{}{
				"status":    model.TicketStatusOpen,
				"closed_at": nil,
			}).Error
		}
		return nil
	})
}

// AdminReply 管理员回复工单
// 内部回复不产生用户通知; 可选地同时变更工单状态 (closed 会记录 closed_at)
func (s *SupportService) AdminReply(ctx context.Context, adminID, ticketRowID uint64, message string, isInternal bool, newStatus string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket model.SupportTicket
		err := tx.First(&ticket, ticketRowID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketNotFound
		}
		if err != nil {
			return err
		}

		reply := model.SupportReply{
			TicketRowID: ticket.ID,
			UserID:      adminID,
			Message:     message,
			IsInternal:  isInternal,
		}
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}

		if !isInternal {
			if err := s.notifs.CreateTx(tx, &model.Notification{
				UserID:          ticket.UserID,
				Type:            model.NotifSupportReply,
				Title:           "Support Ticket Response",
				Message:         fmt.Sprintf("We have responded to your support ticket #%s. Please check your ticket for our response.", ticket.TicketID),
				SupportTicketID: &ticket.ID,
			}); err != nil {
				return err
			}
		}

		if newStatus != "" && validTicketStatus(newStatus) {
			updates := map[string]interface{}{"status": newStatus}
			if newStatus == model.TicketStatusClosed {
				now := time.Now()
				updates["closed_at"] = &now
			} else {
				updates["closed_at"] = nil
			}
			return tx.Model(&ticket).Updates(updates).Error
		}
		return nil
	})
}

func validTicketStatus(status string) bool {
	switch status {
	case model.TicketStatusOpen, model.TicketStatusInProgress,
		model.TicketStatusWaitingForUser, model.TicketStatusClosed:
		return true
	}
	return false
}
