package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-tranquille-api/internal/config"
	"lecture-tranquille-api/internal/domain/entity"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())},
	}
	client, err := NewClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.AutoMigrate(context.Background()))
	return client
}

func seedText(ctx context.Context, t *testing.T, repo *CatalogRepository, level string, difficulty int) *entity.Text {
	t.Helper()
	text := &entity.Text{Level: level, Title: "Le chat", Body: "Le chat dort au soleil.", Difficulty: difficulty}
	qcm := []*entity.MultipleChoiceQuestion{
		{Prompt: "Où dort le chat ?", OptionA: "Au soleil", OptionB: "Dans l'eau", OptionC: "Sur la lune", CorrectAnswer: "Au soleil", DifficultyOrder: 2},
		{Prompt: "Qui dort ?", OptionA: "Le chien", OptionB: "Le chat", OptionC: "L'oiseau", CorrectAnswer: "Le chat", DifficultyOrder: 1},
	}
	open := []*entity.OpenQuestion{{Prompt: "Pourquoi dort-il ?", ProposedAnswer: "Il a chaud.", DifficultyOrder: 1}}
	require.NoError(t, repo.CreateText(ctx, text, qcm, open))
	return text
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(newTestClient(t))

	hard := seedText(ctx, t, repo, "CE1", 3)
	easy := seedText(ctx, t, repo, "CE1", 1)
	seedText(ctx, t, repo, "CM2", 1)

	texts, err := repo.ListTextsByLevel(ctx, "CE1")
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, easy.ID, texts[0].ID)
	assert.Equal(t, hard.ID, texts[1].ID)

	got, err := repo.GetText(ctx, hard.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.WordCount())

	missing, err := repo.GetText(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	qcm, err := repo.ListMultipleChoice(ctx, hard.ID)
	require.NoError(t, err)
	require.Len(t, qcm, 2)
	assert.Equal(t, "Qui dort ?", qcm[0].Prompt)
	assert.Equal(t, hard.ID, qcm[0].TextID)

	open, err := repo.ListOpenQuestions(ctx, hard.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Il a chaud.", open[0].ProposedAnswer)

	count, err := repo.CountTexts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	require.NoError(t, repo.Truncate(ctx))
	count, err = repo.CountTexts(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestResultRepositoryOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	text := seedText(ctx, t, NewCatalogRepository(client), "CP", 1)
	repo := NewResultRepository(client)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := range 3 {
		require.NoError(t, repo.PersistResult(ctx, &entity.ReadingResult{
			TextID:         text.ID,
			ReadAt:         base.Add(time.Duration(i) * time.Minute),
			ElapsedSeconds: 30,
			WordsRead:      5 + i,
			WordsPerMinute: float64(10 + 2*i),
		}))
	}

	results, err := repo.ListResults(ctx, text.ID, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 7, results[0].WordsRead)
	assert.Equal(t, 6, results[1].WordsRead)

	none, err := repo.ListResults(ctx, text.ID+1, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTxManagerRollsBack(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	repo := NewCatalogRepository(client)
	tx := NewTxManager(client)

	boom := errors.New("boom")
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		seedText(ctx, t, repo, "CE2", 1)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := repo.CountTexts(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, tx.WithTransaction(ctx, func(ctx context.Context) error {
		return repo.CreateText(ctx, &entity.Text{Level: "CE2", Title: "t", Body: "b"}, nil, nil)
	}))
	count, err = repo.CountTexts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestNewClientRejectsUnknownDriver(t *testing.T) {
	_, err := NewClient(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
