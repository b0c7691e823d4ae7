// Package seed 加载内置的阅读目录并写入数据库
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/internal/domain/repository"
	"lecture-tranquille-api/pkg/logger"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog 目录文件结构
type Catalog struct {
	Texts []TextSeed `yaml:"texts"`
}

// TextSeed 单篇文本及题目
type TextSeed struct {
	Level           string               `yaml:"level"`
	Title           string               `yaml:"title"`
	Body            string               `yaml:"body"`
	Theme           string               `yaml:"theme"`
	Difficulty      int                  `yaml:"difficulty"`
	DifficultyLabel string               `yaml:"difficulty_label"`
	Illustration    string               `yaml:"illustration"`
	MultipleChoice  []MultipleChoiceSeed `yaml:"multiple_choice"`
	Open            []OpenQuestionSeed   `yaml:"open"`
}

// MultipleChoiceSeed 选择题
type MultipleChoiceSeed struct {
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Answer  string   `yaml:"answer"`
	Order   int      `yaml:"order"`
}

// OpenQuestionSeed 开放题
type OpenQuestionSeed struct {
	Prompt         string `yaml:"prompt"`
	ProposedAnswer string `yaml:"proposed_answer"`
	Order          int    `yaml:"order"`
}

// Load 解析内置目录
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse 解析并校验目录
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate 学段必须已知，选择题恰好三个选项且正确答案是其中之一
func (c *Catalog) Validate() error {
	for i, t := range c.Texts {
		if _, ok := entity.ResolveAgeBand(t.Level); !ok {
			return fmt.Errorf("text %d (%s): unknown level %q", i, t.Title, t.Level)
		}
		if t.Title == "" || t.Body == "" {
			return fmt.Errorf("text %d: title and body are required", i)
		}
		for _, q := range t.MultipleChoice {
			if len(q.Options) != 3 {
				return fmt.Errorf("text %d (%s): question %q needs 3 options", i, t.Title, q.Prompt)
			}
			if !slices.Contains(q.Options, q.Answer) {
				return fmt.Errorf("text %d (%s): answer of %q is not an option", i, t.Title, q.Prompt)
			}
		}
	}
	return nil
}

// Entities 转换为实体
func (t TextSeed) Entities() (*entity.Text, []*entity.MultipleChoiceQuestion, []*entity.OpenQuestion) {
	band, _ := entity.ResolveAgeBand(t.Level)
	text := &entity.Text{
		Level:           band.Level,
		Title:           t.Title,
		Body:            t.Body,
		Theme:           t.Theme,
		Difficulty:      t.Difficulty,
		DifficultyLabel: t.DifficultyLabel,
		IllustrationRef: t.Illustration,
	}
	qcm := make([]*entity.MultipleChoiceQuestion, 0, len(t.MultipleChoice))
	for _, q := range t.MultipleChoice {
		qcm = append(qcm, &entity.MultipleChoiceQuestion{
			Prompt:          q.Prompt,
			OptionA:         q.Options[0],
			OptionB:         q.Options[1],
			OptionC:         q.Options[2],
			CorrectAnswer:   q.Answer,
			DifficultyOrder: q.Order,
		})
	}
	open := make([]*entity.OpenQuestion, 0, len(t.Open))
	for _, q := range t.Open {
		open = append(open, &entity.OpenQuestion{
			Prompt:          q.Prompt,
			ProposedAnswer:  q.ProposedAnswer,
			DifficultyOrder: q.Order,
		})
	}
	return text, qcm, open
}

// Seeder 目录导入器
type Seeder struct {
	writer repository.CatalogWriter
	tx     repository.Transactor
}

// NewSeeder 创建导入器
func NewSeeder(writer repository.CatalogWriter, tx repository.Transactor) *Seeder {
	return &Seeder{writer: writer, tx: tx}
}

// Seed 在目录为空时导入；reset 为 true 时先清空目录和结果。返回导入的文本数。
func (s *Seeder) Seed(ctx context.Context, catalog *Catalog, reset bool) (int, error) {
	inserted := 0
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if reset {
			if err := s.writer.Truncate(ctx); err != nil {
				return err
			}
		} else {
			count, err := s.writer.CountTexts(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info(ctx, "catalog already seeded", "texts", count)
				return nil
			}
		}
		for _, t := range catalog.Texts {
			text, qcm, open := t.Entities()
			if err := s.writer.CreateText(ctx, text, qcm, open); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalog: %w", err)
	}
	if inserted > 0 {
		logger.Info(ctx, "catalog seeded", "texts", inserted, "reset", reset)
	}
	return inserted, nil
}
