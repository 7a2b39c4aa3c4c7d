package model

import "time"

// WalletCopyTracking 记录用户复制收款地址的事件
type WalletCopyTracking struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint64    `gorm:"not null;index" json:"user_id"`
	CoinType      CoinType  `gorm:"type:varchar(20);not null" json:"coin_type"`
	WalletAddress string    `gorm:"type:varchar(255);not null" json:"wallet_address"`
	IPAddress     string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent     string    `gorm:"type:text" json:"user_agent"`
	CopiedAt      time.Time `gorm:"autoCreateTime" json:"copied_at"`
}

func (WalletCopyTracking) TableName() string {
	return "wallet_copy_trackings"
}
