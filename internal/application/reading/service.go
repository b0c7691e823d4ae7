// Package reading 编排阅读会话：加载会话、执行一次状态迁移、保存并返回快照
package reading

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lecture-tranquille-api/internal/application/generation"
	"lecture-tranquille-api/internal/domain/entity"
	"lecture-tranquille-api/internal/domain/repository"
	"lecture-tranquille-api/internal/domain/service"
	apperrors "lecture-tranquille-api/pkg/errors"
	"lecture-tranquille-api/pkg/logger"
	"lecture-tranquille-api/pkg/metrics"
)

// ErrEmptyCreationInput 创作输入为空白
var ErrEmptyCreationInput = apperrors.New(apperrors.CodeEmptyCreationInput, "Écris quelques mots ou une idée pour commencer !")

// Transition 一次事件处理后的会话快照；Ignored 表示当前阶段不允许该事件，状态未变
type Transition struct {
	Session *entity.ReadingSession
	Ignored bool
}

// Fluency 朗读速度报告
type Fluency struct {
	Session        *entity.ReadingSession
	ElapsedSeconds float64
	WordsRead      int
	// WordsPerMinute 为 nil 表示耗时不足，不报告速度
	WordsPerMinute *float64
	// Persisted 本次调用是否写入了结果
	Persisted bool
	Ignored   bool
}

// GenerateInput 创作或改写请求
type GenerateInput struct {
	Level     string
	Mode      string
	Text      string
	WidgetKey string
}

// Generated 生成结果与会话快照
type Generated struct {
	Session       *entity.ReadingSession
	Result        generation.Result
	Amendment     bool
	InputReplaced bool
}

// Service 阅读会话服务
type Service struct {
	sessions  repository.SessionStore
	catalog   repository.CatalogRepository
	results   repository.ResultRepository
	generator *generation.Service
	now       func() time.Time
	locks     [64]sync.Mutex
}

// NewService 创建阅读会话服务
func NewService(
	sessions repository.SessionStore,
	catalog repository.CatalogRepository,
	results repository.ResultRepository,
	generator *generation.Service,
) *Service {
	return &Service{
		sessions:  sessions,
		catalog:   catalog,
		results:   results,
		generator: generator,
		now:       time.Now,
	}
}

// SetClock 替换时钟，仅用于测试
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// stripe 会话 ID 对应的锁槽，不同会话可能共用同一槽
func (s *Service) stripe(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &s.locks[h.Sum32()%uint32(len(s.locks))]
}

// lock 同一进程内串行化同一会话的事件，保证结果最多写入一次。
// 持锁期间不得调用外部后端。
func (s *Service) lock(id string) func() {
	m := s.stripe(id)
	m.Lock()
	return m.Unlock
}

// CreateSession 创建新会话
func (s *Service) CreateSession(ctx context.Context, level string) (*entity.ReadingSession, error) {
	sess := entity.NewReadingSession(uuid.NewString(), s.now())
	sess.SelectLevel(level)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to create session")
	}
	logger.Info(ctx, "reading session created", "session_id", sess.ID, "level", sess.Level)
	return sess, nil
}

// GetSession 获取会话快照
func (s *Service) GetSession(ctx context.Context, id string) (*entity.ReadingSession, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return sess, nil
}

// DeleteSession 删除会话
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()
	if err := s.sessions.Delete(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

// update 加载会话、执行迁移并保存；迁移返回 ErrInvalidTransition 时不保存
func (s *Service) update(ctx context.Context, id string, apply func(*entity.ReadingSession) error) (*Transition, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := apply(sess); err != nil {
		if errors.Is(err, entity.ErrInvalidTransition) {
			logger.Debug(ctx, "reading session event ignored", "session_id", id, "phase", string(sess.Phase))
			return &Transition{Session: sess, Ignored: true}, nil
		}
		return nil, mapError(err)
	}
	sess.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, mapError(err)
	}
	return &Transition{Session: sess}, nil
}

// SelectLevel 切换年龄段
func (s *Service) SelectLevel(ctx context.Context, id, level string) (*Transition, error) {
	return s.update(ctx, id, func(sess *entity.ReadingSession) error {
		sess.SelectLevel(level)
		return nil
	})
}

// SelectText 选择目录中的文本
func (s *Service) SelectText(ctx context.Context, id string, textID int64) (*Transition, error) {
	text, err := s.catalog.GetText(ctx, textID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load text")
	}
	if text == nil {
		return nil, apperrors.New(apperrors.CodeTextNotFound, "text not found")
	}
	return s.update(ctx, id, func(sess *entity.ReadingSession) error {
		sess.Level = text.Level
		sess.SelectText(text.ID, text.WordCount())
		return nil
	})
}

// Start 开始朗读计时
func (s *Service) Start(ctx context.Context, id string) (*Transition, error) {
	return s.update(ctx, id, func(sess *entity.ReadingSession) error {
		return sess.Start(s.now())
	})
}

// Stop 结束朗读计时
func (s *Service) Stop(ctx context.Context, id string) (*Transition, error) {
	return s.update(ctx, id, func(sess *entity.ReadingSession) error {
		return sess.Stop(s.now())
	})
}

// SetWordsRead 调整读完的词数
func (s *Service) SetWordsRead(ctx context.Context, id string, n int) (*Transition, error) {
	return s.update(ctx, id, func(sess *entity.ReadingSession) error {
		return sess.SetWordsRead(n)
	})
}

// Reset 开始新一轮阅读
func (s *Service) Reset(ctx context.Context, id string) (*Transition, error) {
	return s.update(ctx, id, func(sess *entity.ReadingSession) error {
		sess.Reset()
		return nil
	})
}

// SaveDraft 保存控件草稿
func (s *Service) SaveDraft(ctx context.Context, id, widgetKey, value string) (*Transition, error) {
	return s.update(ctx, id, func(sess *entity.ReadingSession) error {
		return sess.SaveDraft(widgetKey, value)
	})
}

// ComputeAndPersist 计算速度并在本阶段首次调用时写入一条结果。
// 写入失败时不置位标记，之后的调用可以重试这唯一的一次写入。
func (s *Service) ComputeAndPersist(ctx context.Context, id string) (*Fluency, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	elapsed, ok := sess.Elapsed()
	if !ok {
		return &Fluency{Session: sess, Ignored: true}, nil
	}
	report := &Fluency{Session: sess, ElapsedSeconds: elapsed, WordsRead: sess.WordsRead}

	if sess.ResultPersisted {
		report.WordsPerMinute = sess.WordsPerMinute
		return report, nil
	}

	wpm, ok := service.WordsPerMinute(sess.WordsRead, elapsed)
	if !ok {
		return report, nil
	}

	result := &entity.ReadingResult{
		TextID:         sess.TextID,
		ReadAt:         s.now(),
		ElapsedSeconds: elapsed,
		WordsRead:      sess.WordsRead,
		WordsPerMinute: wpm,
	}
	// 先落标记再写结果：会话保存失败时不会留下结果行，结果写入失败时撤回标记
	before := sess.Clone()
	sess.MarkPersisted(wpm)
	sess.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, mapError(err)
	}
	if err := s.results.PersistResult(ctx, result); err != nil {
		logger.Error(ctx, "failed to persist reading result", err, "session_id", id, "text_id", sess.TextID)
		if rbErr := s.sessions.Save(ctx, before); rbErr != nil {
			logger.Error(ctx, "failed to reopen result latch", rbErr, "session_id", id)
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to persist reading result")
	}

	metrics.ReadingResultsTotal.WithLabelValues(sess.Level).Inc()
	metrics.ReadingWordsPerMinute.WithLabelValues(sess.Level).Observe(wpm)
	logger.Info(ctx, "reading result persisted",
		"session_id", id,
		"text_id", sess.TextID,
		"words_read", sess.WordsRead,
		"elapsed_seconds", elapsed,
		"words_per_minute", wpm,
	)

	report.WordsPerMinute = sess.WordsPerMinute
	report.Persisted = true
	return report, nil
}

// Generate 创作新文本，会话已有文本时改写它；失败时保留原文本和输入框。
// 后端调用期间不持锁；其间会话进入新一轮（重置、新想法、另一次生成）时丢弃结果并返回 StaleWidget。
func (s *Service) Generate(ctx context.Context, id string, in GenerateInput) (*Generated, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrEmptyCreationInput
	}

	sess, err := s.snapshotForGeneration(ctx, id, in.WidgetKey)
	if err != nil {
		return nil, err
	}

	band, ok := entity.ResolveAgeBand(in.Level)
	if !ok {
		band = entity.AgeBandByLevel(sess.Level)
	}
	out := s.generator.Run(ctx, generation.Input{
		AgeBand:   band,
		Mode:      entity.ParseContentMode(in.Mode),
		Text:      in.Text,
		PriorText: sess.GeneratedText,
	})

	res := &Generated{
		Session:       sess,
		Result:        out.Result,
		Amendment:     out.Request.IsAmendment(),
		InputReplaced: out.Verdict.Replaced(),
	}
	if !out.Result.OK() {
		return res, nil
	}

	unlock := s.lock(id)
	defer unlock()
	cur, err := repository.ReloadAtEpoch(ctx, s.sessions, id, sess.Epoch)
	if errors.Is(err, entity.ErrStaleWidget) {
		logger.Info(ctx, "generated text discarded, session moved on", "session_id", id, "epoch", cur.Epoch)
	}
	if err != nil {
		return nil, mapError(err)
	}
	cur.SetGeneratedText(out.Result.Text)
	cur.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, cur); err != nil {
		return nil, mapError(err)
	}
	res.Session = cur
	return res, nil
}

// snapshotForGeneration 在锁内读取会话并校验输入框属于当前一轮
func (s *Service) snapshotForGeneration(ctx context.Context, id, widgetKey string) (*entity.ReadingSession, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if widgetKey != "" && !sess.IsCurrentWidget(widgetKey) {
		return nil, mapError(entity.ErrStaleWidget)
	}
	return sess, nil
}

// NewIdea 丢弃生成文本
func (s *Service) NewIdea(ctx context.Context, id string) (*Transition, error) {
	return s.update(ctx, id, func(sess *entity.ReadingSession) error {
		sess.NewIdea()
		return nil
	})
}

// mapError 领域错误转应用错误
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, repository.ErrSessionNotFound):
		return apperrors.Wrap(err, apperrors.CodeSessionNotFound, "reading session not found")
	case errors.Is(err, entity.ErrOutOfRange):
		return apperrors.Wrap(err, apperrors.CodeOutOfRangeInput, "value out of range")
	case errors.Is(err, entity.ErrStaleWidget):
		return apperrors.Wrap(err, apperrors.CodeStaleWidget, "widget belongs to a previous round")
	case errors.Is(err, entity.ErrUnknownQuestion):
		return apperrors.Wrap(err, apperrors.CodeUnknownQuestion, "unknown question key")
	case errors.Is(err, entity.ErrInvalidTransition):
		return apperrors.Wrap(err, apperrors.CodeInvalidTransition, "event ignored in current phase")
	default:
		return apperrors.Wrap(fmt.Errorf("session store: %w", err), apperrors.CodeCacheError, "session store failure")
	}
}
