package dto

import (
	"time"

	"lecture-tranquille-api/internal/application/catalog"
	"lecture-tranquille-api/internal/domain/entity"
)

// AgeBandListResponse 年龄段列表
type AgeBandListResponse struct {
	AgeBands []entity.AgeBand `json:"age_bands"`
	Default  string           `json:"default"`
}

// TextListResponse 年龄段下的文本列表
type TextListResponse struct {
	AgeBand entity.AgeBand        `json:"age_band"`
	Texts   []catalog.TextSummary `json:"texts"`
}

// ResultResponse 历史朗读结果
type ResultResponse struct {
	ID             int64   `json:"id"`
	TextID         int64   `json:"text_id"`
	ReadAt         string  `json:"read_at"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	WordsRead      int     `json:"words_read"`
	WordsPerMinute float64 `json:"words_per_minute"`
}

// ResultListResponse 历史结果列表
type ResultListResponse struct {
	Results []*ResultResponse `json:"results"`
}

// ToResultListResponse 转换历史结果
func ToResultListResponse(results []*entity.ReadingResult) *ResultListResponse {
	out := make([]*ResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, &ResultResponse{
			ID:             r.ID,
			TextID:         r.TextID,
			ReadAt:         r.ReadAt.Format(time.RFC3339),
			ElapsedSeconds: r.ElapsedSeconds,
			WordsRead:      r.WordsRead,
			WordsPerMinute: r.WordsPerMinute,
		})
	}
	return &ResultListResponse{Results: out}
}

// BenchmarkListResponse 参考朗读速度
type BenchmarkListResponse struct {
	Benchmarks []catalog.Benchmark `json:"benchmarks"`
	Note       string              `json:"note"`
}
