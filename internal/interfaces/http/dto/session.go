package dto

import (
	"time"

	"lecture-tranquille-api/internal/application/generation"
	"lecture-tranquille-api/internal/application/reading"
	"lecture-tranquille-api/internal/domain/entity"
)

// SessionResponse 会话快照
type SessionResponse struct {
	ID              string   `json:"id"`
	Level           string   `json:"level"`
	AgeBand         string   `json:"age_band"`
	TextID          int64    `json:"text_id,omitempty"`
	TotalWords      int      `json:"total_words"`
	Phase           string   `json:"phase"`
	ElapsedSeconds  *float64 `json:"elapsed_seconds,omitempty"`
	WordsRead       int      `json:"words_read"`
	WordsPerMinute  *float64 `json:"words_per_minute,omitempty"`
	ResultPersisted bool     `json:"result_persisted"`
	Epoch           int64    `json:"epoch"`
	GeneratedText   string   `json:"generated_text,omitempty"`
	// CreationWidgetKey 当前 epoch 下创作输入框的控件键
	CreationWidgetKey string `json:"creation_widget_key"`
	CreationDraft     string `json:"creation_draft,omitempty"`
	// Ignored 当前阶段不允许该事件，状态未变
	Ignored   bool   `json:"ignored,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

// ToSessionResponse 转换会话快照
func ToSessionResponse(s *entity.ReadingSession) *SessionResponse {
	creationKey := s.WidgetKey(entity.WidgetCreationInput, "")
	draft, _ := s.Draft(creationKey)
	return &SessionResponse{
		ID:                s.ID,
		Level:             s.Level,
		AgeBand:           entity.AgeBandByLevel(s.Level).Label,
		TextID:            s.TextID,
		TotalWords:        s.TotalWords,
		Phase:             string(s.Phase),
		ElapsedSeconds:    s.ElapsedSeconds,
		WordsRead:         s.WordsRead,
		WordsPerMinute:    s.WordsPerMinute,
		ResultPersisted:   s.ResultPersisted,
		Epoch:             s.Epoch,
		GeneratedText:     s.GeneratedText,
		CreationWidgetKey: creationKey,
		CreationDraft:     draft,
		UpdatedAt:         s.UpdatedAt.Format(time.RFC3339),
	}
}

// ToTransitionResponse 转换事件处理结果
func ToTransitionResponse(t *reading.Transition) *SessionResponse {
	resp := ToSessionResponse(t.Session)
	resp.Ignored = t.Ignored
	return resp
}

// FluencyResponse 朗读速度报告
type FluencyResponse struct {
	Session        *SessionResponse `json:"session"`
	ElapsedSeconds float64          `json:"elapsed_seconds"`
	WordsRead      int              `json:"words_read"`
	// WordsPerMinute 为空表示耗时不足，不报告速度
	WordsPerMinute *float64 `json:"words_per_minute"`
	Persisted      bool     `json:"persisted"`
	Ignored        bool     `json:"ignored,omitempty"`
}

// ToFluencyResponse 转换速度报告
func ToFluencyResponse(f *reading.Fluency) *FluencyResponse {
	return &FluencyResponse{
		Session:        ToSessionResponse(f.Session),
		ElapsedSeconds: f.ElapsedSeconds,
		WordsRead:      f.WordsRead,
		WordsPerMinute: f.WordsPerMinute,
		Persisted:      f.Persisted,
		Ignored:        f.Ignored,
	}
}

// GenerationFailure 生成失败的原因和提示语
type GenerationFailure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// GenerateResponse 创作或改写结果
type GenerateResponse struct {
	Session *SessionResponse `json:"session"`
	// Text 生成的文本，失败时为空
	Text          string             `json:"text,omitempty"`
	Failure       *GenerationFailure `json:"failure,omitempty"`
	Amendment     bool               `json:"amendment"`
	InputReplaced bool               `json:"input_replaced"`
}

// ToGenerateResponse 转换生成结果
func ToGenerateResponse(g *reading.Generated) *GenerateResponse {
	resp := &GenerateResponse{
		Session:       ToSessionResponse(g.Session),
		Amendment:     g.Amendment,
		InputReplaced: g.InputReplaced,
	}
	if g.Result.OK() {
		resp.Text = g.Result.Text
	} else {
		resp.Failure = toFailure(g.Result.Failure)
	}
	return resp
}

func toFailure(f *generation.Failure) *GenerationFailure {
	if f == nil {
		return nil
	}
	return &GenerationFailure{Kind: string(f.Kind), Message: f.Message}
}
