package cmd

import (
	"fmt"

	"ledger-core/internal/model"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

// createAdminCmd 创建管理员账号
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "创建一个管理员账号",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := model.User{
			Username:     adminEmail,
			Email:        adminEmail,
			Name:         adminName,
			PasswordHash: string(hash),
			IsAdmin:      true,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		// 管理员也持有钱包，方便测试环境自转自充
		if err := db.Create(&model.Wallet{UserID: user.ID}).Error; err != nil {
			return err
		}

		fmt.Printf("管理员已创建: id=%d email=%s\n", user.ID, user.Email)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "管理员邮箱")
	createAdminCmd.Flags().StringVar(&adminName, "name", "Administrator", "显示名")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "登录密码")
	createAdminCmd.MarkFlagRequired("email")
	createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}
