package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ledger-core/internal/model"
	"ledger-core/pkg/config"
	"ledger-core/pkg/logger"
	"ledger-core/pkg/monitor"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrWrongOldPassword = errors.New("old password is incorrect")
	ErrBadResetToken    = errors.New("invalid or expired reset token")
)

// jwt purpose claims，登录 token 和重置 token 不可混用
const (
	tokenPurposeAccess = "access"
	tokenPurposeReset  = "password_reset"

	resetTokenTTL = 30 * time.Minute
)

// ResetMailer 负责发送密码重置邮件
type ResetMailer interface {
	DispatchPasswordReset(ctx context.Context, email, name, resetURL string) error
}

type UserService struct {
	db          *gorm.DB
	notifs      *NotificationService
	resetMailer ResetMailer
}

func NewUserService(db *gorm.DB, notifs *NotificationService, resetMailer ResetMailer) *UserService {
	return &UserService{db: db, notifs: notifs, resetMailer: resetMailer}
}

type tokenClaims struct {
	UserID  uint64 `json:"uid"`
	IsAdmin bool   `json:"is_admin"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func signToken(userID uint64, isAdmin bool, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID:  userID,
		IsAdmin: isAdmin,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.Global.JWT.Secret))
}

// ParseAccessToken 解析登录 token，返回 uid 与 is_admin
func ParseAccessToken(tokenStr string) (uint64, bool, error) {
	claims, err := parseToken(tokenStr, tokenPurposeAccess)
	if err != nil {
		return 0, false, err
	}
	return claims.UserID, claims.IsAdmin, nil
}

func parseToken(tokenStr, purpose string) (*tokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Global.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || claims.Purpose != purpose {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Register 注册用户并建立钱包，email 即用户名
func (s *UserService) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     email,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		// 注册即开钱包，七币种余额清零
		if err := tx.Create(&model.Wallet{UserID: user.ID}).Error; err != nil {
			return err
		}
		return s.notifs.CreateTx(tx, &model.Notification{
			UserID:  user.ID,
			Type:    model.NotifSystem,
			Title:   "Welcome to Vault Ledger",
			Message: "Your account has been created. Complete KYC verification to unlock all features.",
		})
	})
	if err != nil {
		return nil, err
	}

	monitor.Business.UserRegisteredTotal.Inc()
	return &user, nil
}

// Login 校验密码并签发访问 token
func (s *UserService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrBadCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrBadCredentials
	}

	ttl := time.Duration(config.Global.JWT.ExpireHour) * time.Hour
	token, err := signToken(user.ID, user.IsAdmin, tokenPurposeAccess, ttl)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Profile 查询用户资料
func (s *UserService) Profile(ctx context.Context, userID uint64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile 目前只允许改显示名
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, name string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("name", name).Error
}

// ChangePassword 需验证旧密码
func (s *UserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
			return err
		}
		return s.notifs.CreateTx(tx, &model.Notification{
			UserID:  userID,
			Type:    model.NotifAccountUpdate,
			Title:   "Password Changed",
			Message: "Your account password has been changed. If this was not you, contact support immediately.",
		})
	})
}

// ForgotPassword 签发带 purpose claim 的短期重置 token 并发邮件。
// 无论邮箱是否存在都返回成功，避免账号枚举。
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token, err := signToken(user.ID, false, tokenPurposeReset, resetTokenTTL)
	if err != nil {
		return err
	}
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", config.Global.App.FrontendURL, token)

	if s.resetMailer != nil {
		if err := s.resetMailer.DispatchPasswordReset(ctx, user.Email, user.Name, resetURL); err != nil {
			logger.Error("重置密码邮件入队失败", zap.Uint64("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

// ResetPassword 校验重置 token 并更新密码
func (s *UserService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	claims, err := parseToken(tokenStr, tokenPurposeReset)
	if err != nil {
		return ErrBadResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", claims.UserID).
		Update("password_hash", string(hash))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
