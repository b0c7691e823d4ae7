// Package repository 定义阅读会话、目录和结果的存储接口。
//
// 会话存在缓存里，目录和结果落在关系库；只有目录导入需要事务。
package repository

import (
	"context"

	"lecture-tranquille-api/internal/domain/entity"
)

type txKey struct{}

// ContextWithTx 把存储实现的事务句柄挂到 ctx 上
func ContextWithTx(ctx context.Context, tx any) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext 取出 ContextWithTx 挂上的事务句柄，没有时返回 nil
func TxFromContext(ctx context.Context) any {
	return ctx.Value(txKey{})
}

// Transactor 事务管理接口
type Transactor interface {
	// WithTransaction 在事务中执行操作，嵌套调用复用外层事务
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReloadAtEpoch 重新读取会话，并要求它仍处于给定的 epoch。
// 会话在两次读取之间进入了新一轮时返回 entity.ErrStaleWidget。
func ReloadAtEpoch(ctx context.Context, store SessionStore, id string, epoch int64) (*entity.ReadingSession, error) {
	sess, err := store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Epoch != epoch {
		return sess, entity.ErrStaleWidget
	}
	return sess, nil
}
