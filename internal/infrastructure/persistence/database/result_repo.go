package database

import (
	"context"
	"fmt"

	"lecture-tranquille-api/internal/domain/entity"
)

// ResultRepository 朗读结果仓储实现
type ResultRepository struct {
	client *Client
}

// NewResultRepository 创建结果仓储
func NewResultRepository(client *Client) *ResultRepository {
	return &ResultRepository{client: client}
}

// PersistResult 追加一条结果
func (r *ResultRepository) PersistResult(ctx context.Context, result *entity.ReadingResult) error {
	ctx, span := tracer.Start(ctx, "database.ResultRepository.PersistResult")
	defer span.End()

	if err := getDB(ctx, r.client.db).Create(result).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to persist reading result: %w", err)
	}
	return nil
}

// ListResults 获取文本的历史结果
func (r *ResultRepository) ListResults(ctx context.Context, textID int64, limit int) ([]*entity.ReadingResult, error) {
	ctx, span := tracer.Start(ctx, "database.ResultRepository.ListResults")
	defer span.End()

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var results []*entity.ReadingResult
	err := getDB(ctx, r.client.db).
		Where("text_id = ?", textID).
		Order("read_at DESC, id DESC").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list reading results: %w", err)
	}
	return results, nil
}
