package model

import "time"

// 工单状态
const (
	TicketStatusOpen           = "open"
	TicketStatusInProgress     = "in_progress"
	TicketStatusWaitingForUser = "waiting_for_user"
	TicketStatusClosed         = "closed"
)

// 工单部门
const (
	DeptTechnical = "technical"
	DeptBilling   = "billing"
	DeptAccount   = "account"
	DeptKYC       = "kyc"
	DeptTrading   = "trading"
	DeptGeneral   = "general"
)

// 工单优先级
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// SupportTicket 客服工单表
// TicketID 为 ST-00001 格式的人类可读编号，严格递增
type SupportTicket struct {
	ID         uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketID   string         `gorm:"type:varchar(20);not null;unique" json:"ticket_id"`
	UserID     uint64         `gorm:"not null;index" json:"user_id"`
	Department string         `gorm:"type:varchar(20);not null" json:"department"`
	Subject    string         `gorm:"type:varchar(200);not null" json:"subject"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	Status     string         `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	Priority   string         `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	AssignedTo *uint64        `json:"assigned_to,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	ClosedAt   *time.Time     `json:"closed_at,omitempty"`
	Replies    []SupportReply `gorm:"foreignKey:TicketRowID" json:"replies,omitempty"`
}

// SupportReply 工单回复，按创建时间排序
// IsInternal 的回复对工单所属用户不可见
type SupportReply struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TicketRowID uint64    `gorm:"not null;index" json:"-"`
	UserID      uint64    `gorm:"not null" json:"user_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	IsInternal  bool      `gorm:"not null;default:false" json:"is_internal"`
	CreatedAt   time.Time `json:"created_at"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}

func (SupportReply) TableName() string {
	return "support_replies"
}
