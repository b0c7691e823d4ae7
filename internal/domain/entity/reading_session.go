package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ReadingPhase 计时阶段
type ReadingPhase string

const (
	ReadingPhaseIdle     ReadingPhase = "idle"
	ReadingPhaseReading  ReadingPhase = "reading"
	ReadingPhaseFinished ReadingPhase = "finished"
)

// QuestionKind 题型，作为题目状态键的一部分
type QuestionKind string

const (
	QuestionKindMultipleChoice QuestionKind = "qcm"
	QuestionKindOpen           QuestionKind = "open"
)

// 交互控件类型，控件键形如 <kind>_<key>_<epoch>
const (
	WidgetRadio         = "radio"
	WidgetTextarea      = "textarea"
	WidgetCreationInput = "creation_input"
)

var (
	// ErrInvalidTransition 当前阶段不允许该操作，状态保持不变
	ErrInvalidTransition = errors.New("invalid reading session transition")
	// ErrOutOfRange 输入超出允许范围，状态保持不变
	ErrOutOfRange = errors.New("value out of range")
	// ErrStaleWidget 控件键属于已失效的 epoch
	ErrStaleWidget = errors.New("stale widget key")
	// ErrUnknownQuestion 题目键格式错误或不属于当前文本
	ErrUnknownQuestion = errors.New("unknown question key")
)

// QuestionState 单个题目的交互状态
type QuestionState struct {
	// Answer 已提交的选择题答案
	Answer string `json:"answer,omitempty"`
	// Revealed 开放题参考答案是否已展示，只能由 Reset 清除
	Revealed bool `json:"revealed,omitempty"`
}

// ReadingSession 阅读会话聚合，单用户单设备，不支持并发修改
type ReadingSession struct {
	ID              string                   `json:"id"`
	Level           string                   `json:"level"`
	TextID          int64                    `json:"text_id,omitempty"`
	TotalWords      int                      `json:"total_words"`
	Phase           ReadingPhase             `json:"phase"`
	StartedAt       *time.Time               `json:"started_at,omitempty"`
	ElapsedSeconds  *float64                 `json:"elapsed_seconds,omitempty"`
	WordsRead       int                      `json:"words_read"`
	WordsPerMinute  *float64                 `json:"words_per_minute,omitempty"`
	ResultPersisted bool                     `json:"result_persisted"`
	Epoch           int64                    `json:"epoch"`
	Questions       map[string]QuestionState `json:"questions"`
	Drafts          map[string]string        `json:"drafts"`
	GeneratedText   string                   `json:"generated_text,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// NewReadingSession 创建空闲状态的会话
func NewReadingSession(id string, now time.Time) *ReadingSession {
	return &ReadingSession{
		ID:        id,
		Level:     DefaultAgeBand().Level,
		Phase:     ReadingPhaseIdle,
		Questions: make(map[string]QuestionState),
		Drafts:    make(map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// QuestionKey 题目状态键：<text_id>_<kind>_<question_id>
func QuestionKey(textID int64, kind QuestionKind, questionID int64) string {
	return fmt.Sprintf("%d_%s_%d", textID, kind, questionID)
}

// ParseQuestionKey 解析题目状态键
func ParseQuestionKey(key string) (textID int64, kind QuestionKind, questionID int64, err error) {
	parts := strings.Split(key, "_")
	if len(parts) != 3 {
		return 0, "", 0, ErrUnknownQuestion
	}
	kind = QuestionKind(parts[1])
	if kind != QuestionKindMultipleChoice && kind != QuestionKindOpen {
		return 0, "", 0, ErrUnknownQuestion
	}
	if textID, err = strconv.ParseInt(parts[0], 10, 64); err != nil {
		return 0, "", 0, ErrUnknownQuestion
	}
	if questionID, err = strconv.ParseInt(parts[2], 10, 64); err != nil {
		return 0, "", 0, ErrUnknownQuestion
	}
	return textID, kind, questionID, nil
}

// WidgetKey 生成当前 epoch 下的控件键
func (s *ReadingSession) WidgetKey(widget, key string) string {
	if key == "" {
		return fmt.Sprintf("%s_%d", widget, s.Epoch)
	}
	return fmt.Sprintf("%s_%s_%d", widget, key, s.Epoch)
}

// IsCurrentWidget 控件键是否属于当前 epoch
func (s *ReadingSession) IsCurrentWidget(widgetKey string) bool {
	idx := strings.LastIndex(widgetKey, "_")
	if idx <= 0 {
		return false
	}
	epoch, err := strconv.ParseInt(widgetKey[idx+1:], 10, 64)
	return err == nil && epoch == s.Epoch
}

// SelectLevel 切换年龄段，未识别时回退为默认年龄段
func (s *ReadingSession) SelectLevel(level string) {
	s.Level = AgeBandByLevel(level).Level
}

// SelectText 选择文本；换成另一篇文本时计时回到 Idle，保证结果总是对应所读文本
func (s *ReadingSession) SelectText(textID int64, totalWords int) {
	if s.TextID != textID {
		s.clearTimer()
	}
	s.TextID = textID
	s.TotalWords = totalWords
}

// Start 开始朗读，可从 Idle 或 Finished 进入
func (s *ReadingSession) Start(now time.Time) error {
	if s.Phase == ReadingPhaseReading || s.TextID == 0 {
		return ErrInvalidTransition
	}
	started := now
	s.Phase = ReadingPhaseReading
	s.StartedAt = &started
	s.ElapsedSeconds = nil
	s.WordsPerMinute = nil
	s.ResultPersisted = false
	s.WordsRead = s.TotalWords
	return nil
}

// Stop 结束朗读，仅在 Reading 阶段有效
func (s *ReadingSession) Stop(now time.Time) error {
	if s.Phase != ReadingPhaseReading || s.StartedAt == nil {
		return ErrInvalidTransition
	}
	elapsed := now.Sub(*s.StartedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	s.ElapsedSeconds = &elapsed
	s.Phase = ReadingPhaseFinished
	s.WordsRead = s.TotalWords
	return nil
}

// SetWordsRead 调整实际读完的词数，范围 [1, TotalWords]；结果落库后不可再改
func (s *ReadingSession) SetWordsRead(n int) error {
	if s.Phase != ReadingPhaseFinished || s.ResultPersisted {
		return ErrInvalidTransition
	}
	if n < 1 || n > s.TotalWords {
		return ErrOutOfRange
	}
	s.WordsRead = n
	return nil
}

// Elapsed 已结束朗读的耗时（秒），未结束时返回 false
func (s *ReadingSession) Elapsed() (float64, bool) {
	if s.Phase != ReadingPhaseFinished || s.ElapsedSeconds == nil {
		return 0, false
	}
	return *s.ElapsedSeconds, true
}

// MarkPersisted 记录已计算的速度并置位落库标记
func (s *ReadingSession) MarkPersisted(wpm float64) {
	s.WordsPerMinute = &wpm
	s.ResultPersisted = true
}

// Reset 开始新一轮阅读：计时、题目状态和草稿全部清空，epoch 递增
func (s *ReadingSession) Reset() {
	s.clearTimer()
	s.Questions = make(map[string]QuestionState)
	s.Drafts = make(map[string]string)
	s.Epoch++
}

func (s *ReadingSession) clearTimer() {
	s.Phase = ReadingPhaseIdle
	s.StartedAt = nil
	s.ElapsedSeconds = nil
	s.WordsRead = 0
	s.WordsPerMinute = nil
	s.ResultPersisted = false
}

// SubmitAnswer 提交选择题答案，正确性在读取时计算
func (s *ReadingSession) SubmitAnswer(key, answer string) error {
	if _, kind, _, err := ParseQuestionKey(key); err != nil || kind != QuestionKindMultipleChoice {
		return ErrUnknownQuestion
	}
	st := s.Questions[key]
	st.Answer = answer
	s.Questions[key] = st
	return nil
}

// RevealProposedAnswer 展示开放题参考答案，单向
func (s *ReadingSession) RevealProposedAnswer(key string) error {
	if _, kind, _, err := ParseQuestionKey(key); err != nil || kind != QuestionKindOpen {
		return ErrUnknownQuestion
	}
	st := s.Questions[key]
	st.Revealed = true
	s.Questions[key] = st
	return nil
}

// Question 返回题目状态
func (s *ReadingSession) Question(key string) (QuestionState, bool) {
	st, ok := s.Questions[key]
	return st, ok
}

// SaveDraft 保存控件草稿，旧 epoch 的控件键不可寻址
func (s *ReadingSession) SaveDraft(widgetKey, value string) error {
	if !s.IsCurrentWidget(widgetKey) {
		return ErrStaleWidget
	}
	if s.Drafts == nil {
		s.Drafts = make(map[string]string)
	}
	s.Drafts[widgetKey] = value
	return nil
}

// Draft 读取当前 epoch 下的控件草稿
func (s *ReadingSession) Draft(widgetKey string) (string, bool) {
	if !s.IsCurrentWidget(widgetKey) {
		return "", false
	}
	v, ok := s.Drafts[widgetKey]
	return v, ok
}

// SetGeneratedText 保存生成结果并清空创作输入框
func (s *ReadingSession) SetGeneratedText(text string) {
	s.GeneratedText = text
	s.advanceEpoch()
}

// NewIdea 丢弃当前生成文本，重新开始创作
func (s *ReadingSession) NewIdea() {
	s.GeneratedText = ""
	s.advanceEpoch()
}

// advanceEpoch 递增 epoch，旧控件键随之失效；题目状态不受影响
func (s *ReadingSession) advanceEpoch() {
	s.Epoch++
	for k := range s.Drafts {
		if !s.IsCurrentWidget(k) {
			delete(s.Drafts, k)
		}
	}
}

// Clone 深拷贝，供会话存储隔离使用
func (s *ReadingSession) Clone() *ReadingSession {
	if s == nil {
		return nil
	}
	c := *s
	if s.StartedAt != nil {
		t := *s.StartedAt
		c.StartedAt = &t
	}
	if s.ElapsedSeconds != nil {
		e := *s.ElapsedSeconds
		c.ElapsedSeconds = &e
	}
	if s.WordsPerMinute != nil {
		w := *s.WordsPerMinute
		c.WordsPerMinute = &w
	}
	c.Questions = make(map[string]QuestionState, len(s.Questions))
	for k, v := range s.Questions {
		c.Questions[k] = v
	}
	c.Drafts = make(map[string]string, len(s.Drafts))
	for k, v := range s.Drafts {
		c.Drafts[k] = v
	}
	return &c
}
