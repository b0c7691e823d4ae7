package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-tranquille-api/internal/domain/entity"
	apperrors "lecture-tranquille-api/pkg/errors"
)

type stubCatalog struct {
	texts map[int64]*entity.Text
	err   error
}

func (c *stubCatalog) ListTextsByLevel(_ context.Context, level string) ([]*entity.Text, error) {
	if c.err != nil {
		return nil, c.err
	}
	var out []*entity.Text
	for id := int64(1); id <= int64(len(c.texts)); id++ {
		if t := c.texts[id]; t != nil && t.Level == level {
			out = append(out, t)
		}
	}
	return out, nil
}

func (c *stubCatalog) GetText(_ context.Context, id int64) (*entity.Text, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.texts[id], nil
}

func (c *stubCatalog) ListMultipleChoice(_ context.Context, textID int64) ([]*entity.MultipleChoiceQuestion, error) {
	return []*entity.MultipleChoiceQuestion{
		{ID: 5, TextID: textID, Prompt: "Qui dort ?", OptionA: "Le chat", OptionB: "Le chien", OptionC: "Le poisson", CorrectAnswer: "Le chat"},
	}, nil
}

func (c *stubCatalog) ListOpenQuestions(_ context.Context, textID int64) ([]*entity.OpenQuestion, error) {
	return []*entity.OpenQuestion{{ID: 6, TextID: textID, Prompt: "Pourquoi ?", ProposedAnswer: "Il fait chaud."}}, nil
}

type stubResults struct {
	limit int
}

func (r *stubResults) PersistResult(context.Context, *entity.ReadingResult) error { return nil }

func (r *stubResults) ListResults(_ context.Context, textID int64, limit int) ([]*entity.ReadingResult, error) {
	r.limit = limit
	return []*entity.ReadingResult{{TextID: textID, WordsRead: 5, WordsPerMinute: 30}}, nil
}

type stubRenderer struct {
	err error
}

func (r stubRenderer) Ensure(_ context.Context, text *entity.Text) (string, error) {
	return "/tmp/" + text.IllustrationRef, r.err
}

func newService(c *stubCatalog, renderErr error) *Service {
	return NewService(c, &stubResults{}, stubRenderer{err: renderErr})
}

func fixture() *stubCatalog {
	return &stubCatalog{texts: map[int64]*entity.Text{
		1: {ID: 1, Level: "CP", Title: "Mon chat", Body: "J'ai un chat. Il est gris.", IllustrationRef: "cp_chat.png"},
		2: {ID: 2, Level: "CE1", Title: "La récré", Body: "On joue."},
	}}
}

func TestListTextsResolvesBandPermissively(t *testing.T) {
	s := newService(fixture(), nil)

	band, texts, err := s.ListTexts(context.Background(), "7-8 ans")
	require.NoError(t, err)
	assert.Equal(t, "CE1", band.Level)
	require.Len(t, texts, 1)
	assert.Equal(t, int64(2), texts[0].ID)

	band, texts, err = s.ListTexts(context.Background(), "12 ans")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAgeBand(), band)
	require.Len(t, texts, 1)
	assert.Equal(t, 6, texts[0].WordCount)
}

func TestQuestionsHideAnswers(t *testing.T) {
	set, err := newService(fixture(), nil).Questions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, set.MultipleChoice, 1)
	assert.Equal(t, "1_qcm_5", set.MultipleChoice[0].Key)
	assert.Equal(t, []string{"Le chat", "Le chien", "Le poisson"}, set.MultipleChoice[0].Options)
	require.Len(t, set.Open, 1)
	assert.Equal(t, "1_open_6", set.Open[0].Key)
}

func TestUnknownTextIsNotFound(t *testing.T) {
	s := newService(fixture(), nil)
	_, err := s.GetText(context.Background(), 99)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTextNotFound))

	_, err = s.Illustration(context.Background(), 99)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTextNotFound))
}

func TestIllustrationAndResults(t *testing.T) {
	s := newService(fixture(), nil)
	path, err := s.Illustration(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cp_chat.png", path)

	results, err := s.Results(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = newService(fixture(), errors.New("read-only fs")).Illustration(context.Background(), 1)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStorageError))
}

func TestDatabaseFailureIsWrapped(t *testing.T) {
	_, _, err := newService(&stubCatalog{err: errors.New("conn refused")}, nil).ListTexts(context.Background(), "CP")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDatabaseError))
}

func TestBenchmarksFollowAgeBands(t *testing.T) {
	b := newService(fixture(), nil).Benchmarks()
	require.Len(t, b, 3)
	assert.Equal(t, "CP", b[0].Level)
	assert.Equal(t, "environ 50 mots/minute", b[0].ReferenceWPM)
}
