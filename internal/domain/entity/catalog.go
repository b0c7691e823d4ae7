package entity

import (
	"strings"
	"time"
)

// Text 阅读文本
type Text struct {
	ID              int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Level           string    `json:"level" gorm:"type:varchar(8);index;not null"`
	Title           string    `json:"title" gorm:"type:varchar(255);not null"`
	Body            string    `json:"body" gorm:"type:text;not null"`
	Theme           string    `json:"theme,omitempty" gorm:"type:varchar(100)"`
	Difficulty      int       `json:"difficulty" gorm:"default:1"`
	DifficultyLabel string    `json:"difficulty_label,omitempty" gorm:"type:varchar(64)"`
	IllustrationRef string    `json:"illustration_ref,omitempty" gorm:"type:varchar(255)"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 指定表名
func (Text) TableName() string {
	return "texts"
}

// WordCount 文本词数
func (t *Text) WordCount() int {
	return len(strings.Fields(t.Body))
}

// MultipleChoiceQuestion 选择题（三选一）
type MultipleChoiceQuestion struct {
	ID              int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TextID          int64  `json:"text_id" gorm:"index;not null"`
	Prompt          string `json:"prompt" gorm:"type:text;not null"`
	OptionA         string `json:"option_a" gorm:"type:varchar(255);not null"`
	OptionB         string `json:"option_b" gorm:"type:varchar(255);not null"`
	OptionC         string `json:"option_c" gorm:"type:varchar(255);not null"`
	CorrectAnswer   string `json:"correct_answer" gorm:"type:varchar(255);not null"`
	DifficultyOrder int    `json:"difficulty_order" gorm:"default:1"`
}

// TableName 指定表名
func (MultipleChoiceQuestion) TableName() string {
	return "multiple_choice_questions"
}

// Options 按存储顺序返回三个选项
func (q *MultipleChoiceQuestion) Options() []string {
	return []string{q.OptionA, q.OptionB, q.OptionC}
}

// IsCorrect 判断答案是否正确，纯函数
func (q *MultipleChoiceQuestion) IsCorrect(answer string) bool {
	return answer != "" && answer == q.CorrectAnswer
}

// OpenQuestion 开放题
type OpenQuestion struct {
	ID              int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TextID          int64  `json:"text_id" gorm:"index;not null"`
	Prompt          string `json:"prompt" gorm:"type:text;not null"`
	ProposedAnswer  string `json:"proposed_answer" gorm:"type:text"`
	DifficultyOrder int    `json:"difficulty_order" gorm:"default:1"`
}

// TableName 指定表名
func (OpenQuestion) TableName() string {
	return "open_questions"
}
