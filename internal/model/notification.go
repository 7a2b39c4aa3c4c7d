package model

import "time"

// 通知类型
const (
	NotifSupportTicket    = "support_ticket"
	NotifSupportReply     = "support_reply"
	NotifKYCUpdate        = "kyc_update"
	NotifAccountUpdate    = "account_update"
	NotifDepositConfirmed = "deposit_confirmed"
	NotifGeneral          = "general"
	NotifSystem           = "system"
)

// Notification 站内通知表
// 由业务事件创建，只能被所属用户标记已读，系统从不删除
type Notification struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint64     `gorm:"not null;index" json:"user_id"`
	Type            string     `gorm:"type:varchar(20);not null" json:"type"`
	Title           string     `gorm:"type:varchar(200);not null" json:"title"`
	Message         string     `gorm:"type:text;not null" json:"message"`
	IsRead          bool       `gorm:"not null;default:false" json:"is_read"`
	SupportTicketID *uint64    `gorm:"index" json:"support_ticket_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
