package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"ledger-core/internal/model"
	"ledger-core/pkg/crypto_util"
	"ledger-core/pkg/monitor"
	"ledger-core/pkg/safe_random"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 证件文件限制
const (
	maxKYCFileSize = 5 << 20 // 5MB
)

var allowedKYCContentTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

var (
	ErrKYCNotFound        = errors.New("kyc verification not found")
	ErrKYCAlreadyVerified = errors.New("kyc already verified")
	ErrKYCFileTooLarge    = errors.New("document exceeds 5MB limit")
	ErrKYCBadFileType     = errors.New("document must be JPG, PNG, GIF or PDF")
	ErrKYCBadDocType      = errors.New("unsupported document type")
	ErrKYCBadStatus       = errors.New("invalid review status")
)

type KYCService struct {
	db        *gorm.DB
	notifs    *NotificationService
	uploadDir string
}

func NewKYCService(db *gorm.DB, notifs *NotificationService, uploadDir string) *KYCService {
	return &KYCService{db: db, notifs: notifs, uploadDir: uploadDir}
}

func validDocumentType(t string) bool {
	switch t {
	case model.DocPassport, model.DocDriversLicense, model.DocNationalID,
		model.DocUtilityBill, model.DocBankStatement:
		return true
	}
	return false
}

// Status 查询用户 KYC 状态，没有记录视为 not_submitted
func (s *KYCService) Status(ctx context.Context, userID uint64) (*model.KYCVerification, error) {
	var kyc model.KYCVerification
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&kyc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.KYCVerification{UserID: userID, Status: model.KYCStatusNotSubmitted}, nil
	}
	if err != nil {
		return nil, err
	}
	return &kyc, nil
}

// Submit 提交或重新提交证件。已通过的记录不允许再提交；
// 被驳回后重新提交会覆盖旧文件并回到 pending
func (s *KYCService) Submit(ctx context.Context, userID uint64, docType string, header *multipart.FileHeader) (*model.KYCVerification, error) {
	if !validDocumentType(docType) {
		return nil, ErrKYCBadDocType
	}
	if header.Size > maxKYCFileSize {
		return nil, ErrKYCFileTooLarge
	}
	contentType := header.Header.Get("Content-Type")
	ext, ok := allowedKYCContentTypes[contentType]
	if !ok {
		return nil, ErrKYCBadFileType
	}

	var existing model.KYCVerification
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && existing.Status == model.KYCStatusVerified {
		return nil, ErrKYCAlreadyVerified
	}

	path, checksum, err := s.storeDocument(userID, ext, header)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	kyc := model.KYCVerification{
		UserID:       userID,
		Status:       model.KYCStatusPending,
		DocumentType: docType,
		DocumentPath: path,
		DocumentName: header.Filename,
		ContentType:  contentType,
		FileSize:     header.Size,
		Checksum:     checksum,
		SubmittedAt:  &now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// user_id 唯一，重新提交走 upsert 覆盖旧记录
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "document_type", "document_path", "document_name",
				"content_type", "file_size", "checksum", "submitted_at",
				"admin_notes", "reviewed_at", "reviewed_by", "updated_at",
			}),
		}).Create(&kyc).Error; err != nil {
			return err
		}
		return s.notifs.CreateTx(tx, &model.Notification{
			UserID:  userID,
			Type:    model.NotifKYCUpdate,
			Title:   "KYC Documents Submitted",
			Message: "Your identity documents have been submitted and are pending review.",
		})
	})
	if err != nil {
		return nil, err
	}

	monitor.Business.KYCSubmittedTotal.Inc()
	return &kyc, nil
}

// storeDocument 落盘到上传目录，文件名用随机 hex 防止路径猜测和覆盖，
// 同时计算 SHA-256 校验和用于后续完整性核对
func (s *KYCService) storeDocument(userID uint64, ext string, header *multipart.FileHeader) (string, string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return "", "", err
	}
	suffix, err := safe_random.GenerateRandomHexString(16)
	if err != nil {
		return "", "", err
	}
	name := fmt.Sprintf("kyc_%d_%s%s", userID, suffix, ext)
	dst := filepath.Join(s.uploadDir, name)

	src, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxKYCFileSize+1))
	if err != nil {
		return "", "", err
	}
	if len(data) > maxKYCFileSize {
		return "", "", ErrKYCFileTooLarge
	}

	if err := os.WriteFile(dst, data, 0o640); err != nil {
		return "", "", err
	}
	return dst, crypto_util.CalculateSHA256(data), nil
}

// ListSubmitted 管理端审核列表，最新提交在前。status 为空时返回全部提交记录
func (s *KYCService) ListSubmitted(ctx context.Context, status string) ([]model.KYCVerification, error) {
	query := s.db.WithContext(ctx).Order("submitted_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var list []model.KYCVerification
	err := query.Find(&list).Error
	return list, err
}

// Review 管理员审核: pending -> verified / rejected
// reviewed_at 与 reviewed_by 必须同时写入
func (s *KYCService) Review(ctx context.Context, kycID, adminID uint64, status, notes string) error {
	if status != model.KYCStatusVerified && status != model.KYCStatusRejected {
		return ErrKYCBadStatus
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var kyc model.KYCVerification
		err := lockForUpdate(tx).First(&kyc, kycID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrKYCNotFound
		}
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&kyc).Updates(map[string]interface{}{
			"status":      status,
			"admin_notes": notes,
			"reviewed_at": &now,
			"reviewed_by": adminID,
		}).Error; err != nil {
			return err
		}

		title := "KYC Verification Approved"
		message := "Your identity verification has been approved. Your account is now fully verified."
		if status == model.KYCStatusRejected {
			title = "KYC Verification Rejected"
			message = "Your identity verification was rejected. Please review the notes and resubmit your documents."
			if notes != "" {
				message = fmt.Sprintf("%s Notes: %s", message, notes)
			}
		}
		return s.notifs.CreateTx(tx, &model.Notification{
			UserID:  kyc.UserID,
			Type:    model.NotifKYCUpdate,
			Title:   title,
			Message: message,
		})
	})
}
