package repository

import (
	"context"

	"lecture-tranquille-api/internal/domain/entity"
)

// CatalogRepository 阅读文本与题目目录（只读）
type CatalogRepository interface {
	// ListTextsByLevel 按学段获取文本，难度升序
	ListTextsByLevel(ctx context.Context, level string) ([]*entity.Text, error)

	// GetText 根据 ID 获取文本，不存在时返回 nil, nil
	GetText(ctx context.Context, id int64) (*entity.Text, error)

	// ListMultipleChoice 获取文本的选择题，难度升序
	ListMultipleChoice(ctx context.Context, textID int64) ([]*entity.MultipleChoiceQuestion, error)

	// ListOpenQuestions 获取文本的开放题，难度升序
	ListOpenQuestions(ctx context.Context, textID int64) ([]*entity.OpenQuestion, error)
}

// CatalogWriter 目录写入，仅供初始化工具使用
type CatalogWriter interface {
	// CountTexts 文本总数
	CountTexts(ctx context.Context) (int64, error)

	// CreateText 写入文本及其题目，题目的 TextID 由实现填充
	CreateText(ctx context.Context, text *entity.Text, qcm []*entity.MultipleChoiceQuestion, open []*entity.OpenQuestion) error

	// Truncate 清空目录与结果
	Truncate(ctx context.Context) error
}
