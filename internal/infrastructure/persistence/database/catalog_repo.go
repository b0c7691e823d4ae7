package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lecture-tranquille-api/internal/domain/entity"
)

// CatalogRepository 文本与题目目录仓储实现
type CatalogRepository struct {
	client *Client
}

// NewCatalogRepository 创建目录仓储
func NewCatalogRepository(client *Client) *CatalogRepository {
	return &CatalogRepository{client: client}
}

// ListTextsByLevel 按学段获取文本
func (r *CatalogRepository) ListTextsByLevel(ctx context.Context, level string) ([]*entity.Text, error) {
	ctx, span := tracer.Start(ctx, "database.CatalogRepository.ListTextsByLevel")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var texts []*entity.Text
	if err := db.Where("level = ?", level).Order("difficulty ASC, id ASC").Find(&texts).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list texts: %w", err)
	}
	return texts, nil
}

// GetText 根据 ID 获取文本
func (r *CatalogRepository) GetText(ctx context.Context, id int64) (*entity.Text, error) {
	ctx, span := tracer.Start(ctx, "database.CatalogRepository.GetText")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var text entity.Text
	if err := db.First(&text, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get text: %w", err)
	}
	return &text, nil
}

// ListMultipleChoice 获取文本的选择题
func (r *CatalogRepository) ListMultipleChoice(ctx context.Context, textID int64) ([]*entity.MultipleChoiceQuestion, error) {
	ctx, span := tracer.Start(ctx, "database.CatalogRepository.ListMultipleChoice")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var qs []*entity.MultipleChoiceQuestion
	if err := db.Where("text_id = ?", textID).Order("difficulty_order ASC, id ASC").Find(&qs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list multiple choice questions: %w", err)
	}
	return qs, nil
}

// ListOpenQuestions 获取文本的开放题
func (r *CatalogRepository) ListOpenQuestions(ctx context.Context, textID int64) ([]*entity.OpenQuestion, error) {
	ctx, span := tracer.Start(ctx, "database.CatalogRepository.ListOpenQuestions")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var qs []*entity.OpenQuestion
	if err := db.Where("text_id = ?", textID).Order("difficulty_order ASC, id ASC").Find(&qs).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list open questions: %w", err)
	}
	return qs, nil
}

// CountTexts 文本总数
func (r *CatalogRepository) CountTexts(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "database.CatalogRepository.CountTexts")
	defer span.End()

	var count int64
	if err := getDB(ctx, r.client.db).Model(&entity.Text{}).Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count texts: %w", err)
	}
	return count, nil
}

// CreateText 写入文本及其题目，调用方负责事务
func (r *CatalogRepository) CreateText(ctx context.Context, text *entity.Text, qcm []*entity.MultipleChoiceQuestion, open []*entity.OpenQuestion) error {
	ctx, span := tracer.Start(ctx, "database.CatalogRepository.CreateText")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(text).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create text: %w", err)
	}
	for _, q := range qcm {
		q.TextID = text.ID
	}
	for _, q := range open {
		q.TextID = text.ID
	}
	if len(qcm) > 0 {
		if err := db.Create(&qcm).Error; err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to create multiple choice questions: %w", err)
		}
	}
	if len(open) > 0 {
		if err := db.Create(&open).Error; err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to create open questions: %w", err)
		}
	}
	return nil
}

// Truncate 清空目录与结果
func (r *CatalogRepository) Truncate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "database.CatalogRepository.Truncate")
	defer span.End()

	db := getDB(ctx, r.client.db)
	for _, m := range []any{&entity.ReadingResult{}, &entity.MultipleChoiceQuestion{}, &entity.OpenQuestion{}, &entity.Text{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to truncate catalog: %w", err)
		}
	}
	return nil
}
