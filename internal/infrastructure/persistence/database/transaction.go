package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lecture-tranquille-api/internal/domain/repository"
)

// TxManager 实现 repository.Transactor
type TxManager struct {
	client *Client
}

func NewTxManager(client *Client) *TxManager {
	return &TxManager{client: client}
}

// WithTransaction 在事务中执行 fn；ctx 已携带事务时直接复用
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}
	return wrapTx(m.client.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.ContextWithTx(ctx, tx))
	}))
}

func wrapTx(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("transaction failed: %w", err)
}

func txFrom(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := repository.TxFromContext(ctx).(*gorm.DB)
	return tx, ok && tx != nil
}

// getDB 优先使用 ctx 中的事务
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := txFrom(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
