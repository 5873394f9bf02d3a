package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSummarizeWithoutCache(t *testing.T) {
	stub := &stubCompleter{reply: "summary text"}
	svc := NewService(stub, nil, time.Hour, zap.NewNop())

	out, err := svc.Summarize(context.Background(), "token-1", "stored text")
	require.NoError(t, err)
	assert.Equal(t, "summary text", out)

	require.Len(t, stub.lastMsgs, 2)
	assert.Equal(t, "stored text", stub.lastMsgs[1].Content)
}

func TestSummarizePropagatesCompletionError(t *testing.T) {
	stub := &stubCompleter{err: &CompletionError{Err: errors.New("down")}}
	svc := NewService(stub, nil, time.Hour, zap.NewNop())

	_, err := svc.Summarize(context.Background(), "token-1", "stored text")

	var ce *CompletionError
	assert.ErrorAs(t, err, &ce)
}

func TestTaskDispatch(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	svc := NewService(stub, nil, time.Hour, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Answer(ctx, "text", "question")
	require.NoError(t, err)
	assert.Contains(t, stub.lastMsgs[1].Content, "question")

	_, err = svc.CorrectGrammar(ctx, "teh text")
	require.NoError(t, err)
	assert.Equal(t, "teh text", stub.lastMsgs[1].Content)

	_, err = svc.Translate(ctx, "text", "Spanish")
	require.NoError(t, err)
	assert.Contains(t, stub.lastMsgs[1].Content, "Spanish")

	_, err = svc.Chat(ctx, "selected", "why?")
	require.NoError(t, err)
	assert.Contains(t, stub.lastMsgs[1].Content, "selected")
}
