package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageScaffolds(t *testing.T) {
	cases := []struct {
		name     string
		messages []Message
		wantIn   []string
	}{
		{"summarize", summarizeMessages("the text"), []string{"the text"}},
		{"ask", askMessages("the text", "the question"), []string{"the text", "the question"}},
		{"grammar", grammarMessages("teh text"), []string{"teh text"}},
		{"translate", translateMessages("the text", "French"), []string{"the text", "French"}},
		{"chat", chatMessages("selected bit", "the question"), []string{"selected bit", "the question"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Len(t, tc.messages, 2)
			assert.Equal(t, RoleSystem, tc.messages[0].Role)
			assert.Equal(t, RoleUser, tc.messages[1].Role)
			assert.NotEmpty(t, tc.messages[0].Content)
			for _, want := range tc.wantIn {
				assert.Contains(t, tc.messages[1].Content, want)
			}
		})
	}
}

func TestScaffoldsKeepDataOutOfInstructions(t *testing.T) {
	msgs := askMessages("<b>payload</b>", "q")
	assert.NotContains(t, msgs[0].Content, "payload")
}
