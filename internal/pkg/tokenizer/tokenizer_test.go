package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/pagesage/core/internal/pkg/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFallsBackToDefaultEncoding(t *testing.T) {
	tr, err := tokenizer.New("definitely-not-an-encoding")
	require.NoError(t, err)
	assert.Equal(t, tokenizer.DefaultEncoding, tr.Encoding())
}

func TestNewEmptyNameUsesDefault(t *testing.T) {
	tr, err := tokenizer.New("")
	require.NoError(t, err)
	assert.Equal(t, tokenizer.DefaultEncoding, tr.Encoding())
}

func TestTruncateBelowLimitIsIdentity(t *testing.T) {
	tr, err := tokenizer.New(tokenizer.DefaultEncoding)
	require.NoError(t, err)

	text := "a short sentence"
	assert.Equal(t, text, tr.Truncate(text, 100))
}

func TestTruncateBoundsTokenCount(t *testing.T) {
	tr, err := tokenizer.New(tokenizer.DefaultEncoding)
	require.NoError(t, err)

	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 50)
	require.Greater(t, tr.CountTokens(text), 20)

	got := tr.Truncate(text, 20)
	assert.LessOrEqual(t, tr.CountTokens(got), 20)
	assert.True(t, strings.HasPrefix(text, got))
}

func TestTruncateZeroBudget(t *testing.T) {
	tr, err := tokenizer.New(tokenizer.DefaultEncoding)
	require.NoError(t, err)

	assert.Equal(t, "", tr.Truncate("anything", 0))
}
