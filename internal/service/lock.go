package service

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate 在支持行锁的数据库上追加 SELECT ... FOR UPDATE
// SQLite (单元测试) 不支持行锁，事务本身已串行化
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
