package model

import "time"

// KYC 状态
const (
	KYCStatusNotSubmitted = "not_submitted"
	KYCStatusPending      = "pending"
	KYCStatusVerified     = "verified"
	KYCStatusRejected     = "rejected"
)

// KYC 证件类型
const (
	DocPassport       = "passport"
	DocDriversLicense = "drivers_license"
	DocNationalID     = "national_id"
	DocUtilityBill    = "utility_bill"
	DocBankStatement  = "bank_statement"
)

// KYCVerification KYC 认证记录 (与用户一对一)
type KYCVerification struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64 `gorm:"not null;uniqueIndex" json:"user_id"`
	Status       string `gorm:"type:varchar(20);not null;default:'not_submitted'" json:"status"`
	DocumentType string `gorm:"type:varchar(20)" json:"document_type"`
	DocumentPath string `gorm:"type:varchar(512)" json:"-"`
	DocumentName string `gorm:"type:varchar(255)" json:"document_name"`
	ContentType  string `gorm:"type:varchar(100)" json:"content_type"`
	FileSize     int64  `json:"file_size"`
	Checksum     string `gorm:"type:varchar(64)" json:"checksum"` // SHA-256 of the stored document

	AdminNotes  string     `gorm:"type:text" json:"admin_notes"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"` // 与 ReviewedBy 同时写入
	ReviewedBy  *uint64    `json:"reviewed_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (KYCVerification) TableName() string {
	return "kyc_verifications"
}
