// Package catalog 提供只读的文本目录、题目、插图和历史结果查询
package catalog

import (
	"context"

	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/internal/domain/repository"
	apperrors "lecture-tranquille-api/pkg/errors"
)

// IllustrationRenderer 插图渲染
type IllustrationRenderer interface {
	Ensure(ctx context.Context, text *entity.Text) (string, error)
}

// TextSummary 文本列表项
type TextSummary struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Theme           string `json:"theme,omitempty"`
	Difficulty      int    `json:"difficulty"`
	DifficultyLabel string `json:"difficulty_label,omitempty"`
	WordCount       int    `json:"word_count"`
}

// TextDetail 文本详情
type TextDetail struct {
	TextSummary
	Level string `json:"level"`
	Body  string `json:"body"`
}

// ChoiceQuestion 不含正确答案的选择题
type ChoiceQuestion struct {
	ID              int64    `json:"id"`
	Key             string   `json:"key"`
	Prompt          string   `json:"prompt"`
	Options         []string `json:"options"`
	DifficultyOrder int      `json:"difficulty_order"`
}

// OpenQuestion 不含参考答案的开放题
type OpenQuestion struct {
	ID              int64  `json:"id"`
	Key             string `json:"key"`
	Prompt          string `json:"prompt"`
	DifficultyOrder int    `json:"difficulty_order"`
}

// QuestionSet 文本的全部题目
type QuestionSet struct {
	TextID         int64            `json:"text_id"`
	MultipleChoice []ChoiceQuestion `json:"multiple_choice"`
	Open           []OpenQuestion   `json:"open"`
}

// Benchmark 年龄段参考朗读速度
type Benchmark struct {
	Label        string `json:"label"`
	Level        string `json:"level"`
	ReferenceWPM string `json:"reference_wpm"`
}

// Service 目录查询服务
type Service struct {
	catalog  repository.CatalogRepository
	results  repository.ResultRepository
	renderer IllustrationRenderer
}

// NewService 创建目录服务
func NewService(catalog repository.CatalogRepository, results repository.ResultRepository, renderer IllustrationRenderer) *Service {
	return &Service{catalog: catalog, results: results, renderer: renderer}
}

// AgeBands 全部年龄段
func (s *Service) AgeBands() []entity.AgeBand {
	return entity.AgeBands()
}

// Benchmarks 参考朗读速度，仅作参考不作评判
func (s *Service) Benchmarks() []Benchmark {
	bands := entity.AgeBands()
	out := make([]Benchmark, 0, len(bands))
	for _, b := range bands {
		out = append(out, Benchmark{Label: b.Label, Level: b.Level, ReferenceWPM: b.ReferenceWPM})
	}
	return out
}

// ListTexts 年龄段下的文本，未识别的年龄段回退为默认值
func (s *Service) ListTexts(ctx context.Context, band string) (entity.AgeBand, []TextSummary, error) {
	resolved, ok := entity.ResolveAgeBand(band)
	if !ok {
		resolved = entity.DefaultAgeBand()
	}
	texts, err := s.catalog.ListTextsByLevel(ctx, resolved.Level)
	if err != nil {
		return resolved, nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list texts")
	}
	out := make([]TextSummary, 0, len(texts))
	for _, t := range texts {
		out = append(out, summarize(t))
	}
	return resolved, out, nil
}

func summarize(t *entity.Text) TextSummary {
	return TextSummary{
		ID:              t.ID,
		Title:           t.Title,
		Theme:           t.Theme,
		Difficulty:      t.Difficulty,
		DifficultyLabel: t.DifficultyLabel,
		WordCount:       t.WordCount(),
	}
}

func (s *Service) text(ctx context.Context, id int64) (*entity.Text, error) {
	t, err := s.catalog.GetText(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load text")
	}
	if t == nil {
		return nil, apperrors.New(apperrors.CodeTextNotFound, "text not found")
	}
	return t, nil
}

// GetText 文本详情
func (s *Service) GetText(ctx context.Context, id int64) (*TextDetail, error) {
	t, err := s.text(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TextDetail{TextSummary: summarize(t), Level: t.Level, Body: t.Body}, nil
}

// Questions 文本题目，不泄露答案
func (s *Service) Questions(ctx context.Context, id int64) (*QuestionSet, error) {
	if _, err := s.text(ctx, id); err != nil {
		return nil, err
	}
	qcm, err := s.catalog.ListMultipleChoice(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load questions")
	}
	open, err := s.catalog.ListOpenQuestions(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load questions")
	}

	set := &QuestionSet{
		TextID:         id,
		MultipleChoice: make([]ChoiceQuestion, 0, len(qcm)),
		Open:           make([]OpenQuestion, 0, len(open)),
	}
	for _, q := range qcm {
		set.MultipleChoice = append(set.MultipleChoice, ChoiceQuestion{
			ID:              q.ID,
			Key:             entity.QuestionKey(id, entity.QuestionKindMultipleChoice, q.ID),
			Prompt:          q.Prompt,
			Options:         q.Options(),
			DifficultyOrder: q.DifficultyOrder,
		})
	}
	for _, q := range open {
		set.Open = append(set.Open, OpenQuestion{
			ID:              q.ID,
			Key:             entity.QuestionKey(id, entity.QuestionKindOpen, q.ID),
			Prompt:          q.Prompt,
			DifficultyOrder: q.DifficultyOrder,
		})
	}
	return set, nil
}

// Illustration 插图文件路径，缺失时生成
func (s *Service) Illustration(ctx context.Context, id int64) (string, error) {
	t, err := s.text(ctx, id)
	if err != nil {
		return "", err
	}
	path, err := s.renderer.Ensure(ctx, t)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeStorageError, "illustration unavailable")
	}
	return path, nil
}

// Results 文本的历史朗读结果
func (s *Service) Results(ctx context.Context, id int64, limit int) ([]*entity.ReadingResult, error) {
	if _, err := s.text(ctx, id); err != nil {
		return nil, err
	}
	results, err := s.results.ListResults(ctx, id, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list results")
	}
	return results, nil
}
