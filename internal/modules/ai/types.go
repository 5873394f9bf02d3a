package ai

import "fmt"

// Message is a single role-tagged turn sent to the language-model backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionError wraps any backend failure: timeout, malformed response or
// an unavailable provider. The gateway never retries; retry policy belongs
// to the caller.
type CompletionError struct {
	Err error
}

func (e *CompletionError) Error() string { return fmt.Sprintf("completion failed: %v", e.Err) }
func (e *CompletionError) Unwrap() error { return e.Err }

type correctGrammarDTO struct {
	Text string `json:"text" binding:"required"`
}

type translateDTO struct {
	Text       string `json:"text"       binding:"required"`
	TargetLang string `json:"targetLang" binding:"required"`
}

type chatDTO struct {
	Question        string `json:"question"        binding:"required"`
	SelectedContent string `json:"selectedContent" binding:"required"`
}
