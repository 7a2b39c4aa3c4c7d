package cmd

import (
	"fmt"
	"os"

	"ledger-core/pkg/config"
	"ledger-core/pkg/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "ledger-cli",
	Short: "Vault Ledger 运维命令行工具",
	Long: `Vault Ledger 后端的运维工具。
支持创建管理员账号、初始化会计科目表以及在终端确认充值。`,
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openDB 加载配置并建立数据库连接，子命令共用
func openDB() (*gorm.DB, error) {
	config.Init()
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		config.Global.DB.Host,
		config.Global.DB.User,
		config.Global.DB.Password,
		config.Global.DB.Name,
		config.Global.DB.Port,
	)
	return database.ConnectPostgres(dsn)
}
