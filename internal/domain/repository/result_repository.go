package repository

import (
	"context"

	"lecture-tranquille-api/internal/domain/entity"
)

// ResultRepository 朗读结果仓储，只追加
type ResultRepository interface {
	// PersistResult 写入一条结果
	PersistResult(ctx context.Context, result *entity.ReadingResult) error

	// ListResults 获取文本的历史结果，时间倒序
	ListResults(ctx context.Context, textID int64, limit int) ([]*entity.ReadingResult, error)
}
