package entity

import "time"

// ReadingResult 一次朗读的持久化结果，只追加不修改
type ReadingResult struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TextID         int64     `json:"text_id" gorm:"index;not null"`
	ReadAt         time.Time `json:"read_at" gorm:"not null"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	WordsRead      int       `json:"words_read"`
	WordsPerMinute float64   `json:"words_per_minute"`
}

// TableName 指定表名
func (ReadingResult) TableName() string {
	return "reading_results"
}
