package cmd

import (
	"context"
	"fmt"

	"ledger-core/internal/service"
	"ledger-core/pkg/cache"
	"ledger-core/pkg/monitor"

	"github.com/spf13/cobra"
)

var confirmAdminID uint64

// confirmDepositCmd 在终端直接确认一笔充值 (不经过 HTTP API)
// 走与 API 相同的 Service 入口，幂等与入账语义一致
var confirmDepositCmd = &cobra.Command{
	Use:   "confirm-deposit [deposit-id]",
	Short: "确认一笔充值并入账",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var depositID uint64
		if _, err := fmt.Sscanf(args[0], "%d", &depositID); err != nil {
			return fmt.Errorf("invalid deposit id: %s", args[0])
		}

		db, err := openDB()
		if err != nil {
			return err
		}

		monitor.InitBusinessMetrics()

		notifs := service.NewNotificationService(db, cache.NewMemoryCache(0, 0))
		wallets := service.NewWalletService(db)
		// CLI 不投递邮件，交给 admin resend-emails 接口或下一次确认补发
		deposits := service.NewDepositService(db, wallets, notifs, nil, nil)

		if err := deposits.Confirm(context.Background(), depositID, confirmAdminID); err != nil {
			return err
		}
		fmt.Printf("充值 %d 已确认\n", depositID)
		return nil
	},
}

func init() {
	confirmDepositCmd.Flags().Uint64Var(&confirmAdminID, "admin-id", 1, "操作管理员的用户 ID")
	rootCmd.AddCommand(confirmDepositCmd)
}
