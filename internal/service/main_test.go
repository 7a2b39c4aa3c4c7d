package service

import (
	"os"
	"path/filepath"
	"testing"

	"ledger-core/internal/model"
	"ledger-core/pkg/config"
	"ledger-core/pkg/monitor"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	monitor.InitBusinessMetrics()
	config.Global.JWT.Secret = "test-secret"
	config.Global.JWT.ExpireHour = 1
	config.Global.App.FrontendURL = "http://localhost:3000"
	os.Exit(m.Run())
}

// newTestDB 打开一个隔离的 SQLite 库并迁移全部表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := model.User{
		Username:     email,
		Email:        email,
		Name:         "Test User",
		PasswordHash: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := db.Create(&model.Wallet{UserID: user.ID}).Error; err != nil {
		t.Fatalf("create wallet: %v", err)
	}
	return &user
}
