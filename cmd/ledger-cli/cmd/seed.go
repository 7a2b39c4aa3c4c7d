package cmd

import (
	"fmt"

	"ledger-core/internal/model"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// 默认会计科目表
var defaultAccounts = []model.Account{
	{Name: "Cash", Code: "1000", AccountType: model.AccountTypeAsset},
	{Name: "Crypto Holdings", Code: "1100", AccountType: model.AccountTypeAsset},
	{Name: "Customer Deposits", Code: "2000", AccountType: model.AccountTypeLiability},
	{Name: "Owner Equity", Code: "3000", AccountType: model.AccountTypeEquity},
	{Name: "Fee Revenue", Code: "4000", AccountType: model.AccountTypeRevenue},
	{Name: "Operating Expenses", Code: "5000", AccountType: model.AccountTypeExpense},
}

// seedAccountsCmd 初始化会计科目表
var seedAccountsCmd = &cobra.Command{
	Use:   "seed-accounts",
	Short: "初始化默认会计科目表 (幂等)",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}

		created := 0
		for _, account := range defaultAccounts {
			var existing model.Account
			err := db.Where("code = ?", account.Code).First(&existing).Error
			if err == nil {
				continue // 已存在，跳过
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}
			account.IsActive = true
			if err := db.Create(&account).Error; err != nil {
				return err
			}
			created++
		}

		fmt.Printf("科目表初始化完成，新建 %d 个科目\n", created)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedAccountsCmd)
}
