package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lecture-tranquille-api/internal/domain/entity"
)

func TestSessionCodecRoundTripKeepsRoundState(t *testing.T) {
	now := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	sess := entity.NewReadingSession("abc", now)
	sess.SelectText(7, 12)
	require.NoError(t, sess.Start(now))
	require.NoError(t, sess.Stop(now.Add(30*time.Second)))
	key := entity.QuestionKey(7, entity.QuestionKindMultipleChoice, 3)
	require.NoError(t, sess.SubmitAnswer(key, "Au soleil"))
	sess.SetGeneratedText("Il était une fois.")

	data, err := encodeSession(sess)
	require.NoError(t, err)
	got, err := decodeSession(data)
	require.NoError(t, err)

	assert.Equal(t, entity.ReadingPhaseFinished, got.Phase)
	assert.Equal(t, sess.Epoch, got.Epoch)
	assert.Equal(t, "Au soleil", got.Questions[key].Answer)
	assert.Equal(t, "Il était une fois.", got.GeneratedText)
	elapsed, ok := got.Elapsed()
	require.True(t, ok)
	assert.InDelta(t, 30.0, elapsed, 1e-9)
}

func TestDecodeSessionInitialisesMaps(t *testing.T) {
	got, err := decodeSession([]byte(`{"id":"x","level":"CE1","phase":"idle"}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Questions)
	assert.NotNil(t, got.Drafts)
	require.NoError(t, got.SaveDraft(got.WidgetKey(entity.WidgetCreationInput, "creation"), "un ours"))

	_, err = decodeSession([]byte("{"))
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "session:abc", sessionKey("session", "abc"))
	cache := NewCache(nil, CatalogCachePrefix)
	assert.Equal(t, "catalog:texts:CE1", cache.key("texts", "CE1"))
	assert.Equal(t, "catalog:qcm:4", cache.key("qcm", int64(4)))
	assert.Equal(t, "ratelimit:abc:generate", BuildSessionRateLimitKey("abc", "generate"))
}
