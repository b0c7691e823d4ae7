package reading

import (
	"context"

	"lecture-tranquille-api/internal/domain/entity"
	apperrors "lecture-tranquille-api/pkg/errors"
)

// MultipleChoiceView 选择题的会话视图
type MultipleChoiceView struct {
	Key       string   `json:"key"`
	WidgetKey string   `json:"widget_key"`
	Prompt    string   `json:"prompt"`
	Options   []string `json:"options"`
	Answer    string   `json:"answer,omitempty"`
	// Correct 仅在已提交答案时给出
	Correct *bool `json:"correct,omitempty"`
	// CorrectAnswer 答错时给出正确答案
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

// OpenQuestionView 开放题的会话视图
type OpenQuestionView struct {
	Key       string `json:"key"`
	WidgetKey string `json:"widget_key"`
	Prompt    string `json:"prompt"`
	Draft     string `json:"draft,omitempty"`
	Revealed  bool   `json:"revealed"`
	// ProposedAnswer 仅在展示后给出
	ProposedAnswer string `json:"proposed_answer,omitempty"`
}

// Quiz 当前文本的理解题
type Quiz struct {
	TextID         int64                `json:"text_id"`
	Epoch          int64                `json:"epoch"`
	MultipleChoice []MultipleChoiceView `json:"multiple_choice"`
	Open           []OpenQuestionView   `json:"open"`
}

// Quiz 组装当前文本的题目视图，正确性在读取时计算
func (s *Service) Quiz(ctx context.Context, id string) (*Quiz, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if sess.TextID == 0 {
		return nil, apperrors.New(apperrors.CodeTextNotFound, "no text selected")
	}
	return s.buildQuiz(ctx, sess)
}

func (s *Service) buildQuiz(ctx context.Context, sess *entity.ReadingSession) (*Quiz, error) {
	qcm, err := s.catalog.ListMultipleChoice(ctx, sess.TextID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load questions")
	}
	open, err := s.catalog.ListOpenQuestions(ctx, sess.TextID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load questions")
	}

	quiz := &Quiz{
		TextID:         sess.TextID,
		Epoch:          sess.Epoch,
		MultipleChoice: make([]MultipleChoiceView, 0, len(qcm)),
		Open:           make([]OpenQuestionView, 0, len(open)),
	}
	for _, q := range qcm {
		key := entity.QuestionKey(sess.TextID, entity.QuestionKindMultipleChoice, q.ID)
		v := MultipleChoiceView{
			Key:       key,
			WidgetKey: sess.WidgetKey(entity.WidgetRadio, key),
			Prompt:    q.Prompt,
			Options:   q.Options(),
		}
		if st, ok := sess.Question(key); ok && st.Answer != "" {
			correct := q.IsCorrect(st.Answer)
			v.Answer = st.Answer
			v.Correct = &correct
			if !correct {
				v.CorrectAnswer = q.CorrectAnswer
			}
		}
		quiz.MultipleChoice = append(quiz.MultipleChoice, v)
	}
	for _, q := range open {
		key := entity.QuestionKey(sess.TextID, entity.QuestionKindOpen, q.ID)
		widget := sess.WidgetKey(entity.WidgetTextarea, key)
		v := OpenQuestionView{
			Key:       key,
			WidgetKey: widget,
			Prompt:    q.Prompt,
		}
		v.Draft, _ = sess.Draft(widget)
		if st, ok := sess.Question(key); ok && st.Revealed {
			v.Revealed = true
			v.ProposedAnswer = q.ProposedAnswer
		}
		quiz.Open = append(quiz.Open, v)
	}
	return quiz, nil
}

// SubmitAnswer 提交选择题答案并返回更新后的题目视图
func (s *Service) SubmitAnswer(ctx context.Context, id, key, answer string) (*Quiz, error) {
	if err := s.checkQuestion(ctx, id, key, entity.QuestionKindMultipleChoice); err != nil {
		return nil, err
	}
	t, err := s.update(ctx, id, func(sess *entity.ReadingSession) error {
		return sess.SubmitAnswer(key, answer)
	})
	if err != nil {
		return nil, err
	}
	return s.buildQuiz(ctx, t.Session)
}

// RevealProposedAnswer 展示开放题参考答案
func (s *Service) RevealProposedAnswer(ctx context.Context, id, key string) (*Quiz, error) {
	if err := s.checkQuestion(ctx, id, key, entity.QuestionKindOpen); err != nil {
		return nil, err
	}
	t, err := s.update(ctx, id, func(sess *entity.ReadingSession) error {
		return sess.RevealProposedAnswer(key)
	})
	if err != nil {
		return nil, err
	}
	return s.buildQuiz(ctx, t.Session)
}

// checkQuestion 题目必须属于会话当前文本且存在于目录中
func (s *Service) checkQuestion(ctx context.Context, id, key string, kind entity.QuestionKind) error {
	textID, k, qid, err := entity.ParseQuestionKey(key)
	if err != nil || k != kind {
		return mapError(entity.ErrUnknownQuestion)
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return mapError(err)
	}
	if sess.TextID != textID {
		return mapError(entity.ErrUnknownQuestion)
	}

	found := false
	switch kind {
	case entity.QuestionKindMultipleChoice:
		qs, err := s.catalog.ListMultipleChoice(ctx, textID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load questions")
		}
		for _, q := range qs {
			found = found || q.ID == qid
		}
	case entity.QuestionKindOpen:
		qs, err := s.catalog.ListOpenQuestions(ctx, textID)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load questions")
		}
		for _, q := range qs {
			found = found || q.ID == qid
		}
	}
	if !found {
		return mapError(entity.ErrUnknownQuestion)
	}
	return nil
}
