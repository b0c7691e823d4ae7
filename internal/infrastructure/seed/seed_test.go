package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-tranquille-api/internal/domain/entity"
)

type memoryWriter struct {
	texts     []*entity.Text
	qcm       int
	open      int
	truncated bool
	failAt    int
}

func (w *memoryWriter) CountTexts(context.Context) (int64, error) {
	return int64(len(w.texts)), nil
}

func (w *memoryWriter) CreateText(_ context.Context, text *entity.Text, qcm []*entity.MultipleChoiceQuestion, open []*entity.OpenQuestion) error {
	if w.failAt > 0 && len(w.texts)+1 == w.failAt {
		return errors.New("disk full")
	}
	text.ID = int64(len(w.texts) + 1)
	w.texts = append(w.texts, text)
	w.qcm += len(qcm)
	w.open += len(open)
	return nil
}

func (w *memoryWriter) Truncate(context.Context) error {
	w.truncated = true
	w.texts = nil
	w.qcm, w.open = 0, 0
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Len(t, c.Texts, 30)

	perLevel := map[string]int{}
	for _, text := range c.Texts {
		perLevel[text.Level]++
		assert.NotEmpty(t, text.MultipleChoice, text.Title)
		assert.NotEmpty(t, text.Open, text.Title)
		assert.NotEmpty(t, text.Illustration, text.Title)
	}
	assert.Equal(t, map[string]int{"CP": 10, "CE1": 10, "CE2": 10}, perLevel)

	first := c.Texts[0]
	assert.Equal(t, "Mon chat", first.Title)
	assert.Equal(t, 1, first.Difficulty)
	assert.Equal(t, "1 - Très facile", first.DifficultyLabel)
}

func TestParseRejectsInvalidCatalog(t *testing.T) {
	_, err := Parse([]byte(`texts:
  - level: CM2
    title: "x"
    body: "y"
`))
	assert.ErrorContains(t, err, "unknown level")

	_, err = Parse([]byte(`texts:
  - level: CP
    title: "x"
    body: "y"
    multiple_choice:
      - prompt: "?"
        options: ["a", "b", "c"]
        answer: "d"
`))
	assert.ErrorContains(t, err, "not an option")
}

func TestEntitiesMapsOptionsInOrder(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	text, qcm, open := c.Texts[0].Entities()

	assert.Equal(t, "CP", text.Level)
	assert.Equal(t, "cp_chat.png", text.IllustrationRef)
	require.Len(t, qcm, 1)
	assert.Equal(t, []string{"Noir", "Gris", "Blanc"}, qcm[0].Options())
	assert.True(t, qcm[0].IsCorrect("Gris"))
	require.Len(t, open, 1)
	assert.Equal(t, "Le chat dort sur le lit.", open[0].ProposedAnswer)
}

func TestSeedIsIdempotentUnlessReset(t *testing.T) {
	ctx := context.Background()
	c, err := Load()
	require.NoError(t, err)
	w := &memoryWriter{}
	s := NewSeeder(w, passthroughTx{})

	n, err := s.Seed(ctx, c, false)
	require.NoError(t, err)
	assert.Equal(t, 30, n)

	n, err = s.Seed(ctx, c, false)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, w.texts, 30)

	n, err = s.Seed(ctx, c, true)
	require.NoError(t, err)
	assert.Equal(t, 30, n)
	assert.True(t, w.truncated)
	assert.Len(t, w.texts, 30)
}

func TestSeedPropagatesWriterError(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	_, err = NewSeeder(&memoryWriter{failAt: 3}, passthroughTx{}).Seed(context.Background(), c, false)
	assert.ErrorContains(t, err, "disk full")
}
