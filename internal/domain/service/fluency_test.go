package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordsPerMinute(t *testing.T) {
	cases := []struct {
		words   int
		seconds float64
		want    float64
	}{
		{120, 60, 120},
		{90, 45, 120},
		{50, 120, 25},
	}
	for _, tc := range cases {
		got, ok := WordsPerMinute(tc.words, tc.seconds)
		require.True(t, ok)
		assert.InDelta(t, tc.want, got, 1e-9)
	}
}

func TestWordsPerMinuteWithoutElapsedTime(t *testing.T) {
	_, ok := WordsPerMinute(120, 0)
	assert.False(t, ok)
	_, ok = WordsPerMinute(120, -3)
	assert.False(t, ok)
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("  \n\t "))
	assert.Equal(t, 5, CountWords("Le chat, le chien\net moi"))
}

func TestCallLabels(t *testing.T) {
	l := CallLabelsFromContext(context.Background())
	assert.Equal(t, CallLabels{Workflow: "unknown", Provider: "unknown"}, l)

	ctx := WithCallLabels(context.Background(), " child_text_amend ", "  ")
	assert.Equal(t, CallLabels{Workflow: "child_text_amend", Provider: "unknown"}, CallLabelsFromContext(ctx))
}
