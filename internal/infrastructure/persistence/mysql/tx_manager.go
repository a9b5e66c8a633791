package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey context中事务DB的key
type txKey struct{}

// TxManager 事务管理器
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB，Repository用dbFrom取出
// 3. 嵌套调用时GORM自动使用Savepoint
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn返回error或panic时ROLLBACK，返回nil时COMMIT
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if err := orderRepo.Create(ctx, o); err != nil {
//	        return err // 回滚
//	    }
//	    return nil
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return dbFrom(ctx, m.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom 优先返回context中的事务DB，否则返回带context的普通DB
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
