package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is used when the configured encoding cannot be resolved.
const DefaultEncoding = "cl100k_base"

// Truncator bounds text to a model-token budget using a tiktoken encoding.
type Truncator struct {
	encodingName string
	tke          *tiktoken.Tiktoken
}

// New creates a Truncator for the given encoding or model name. Unknown
// names fall back to DefaultEncoding.
func New(encodingName string) (*Truncator, error) {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}

	tke, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		// Maybe a model name rather than an encoding name.
		tke, err = tiktoken.EncodingForModel(encodingName)
		if err != nil {
			tke, err = tiktoken.GetEncoding(DefaultEncoding)
			if err != nil {
				return nil, fmt.Errorf("get default encoding %q: %w", DefaultEncoding, err)
			}
			encodingName = DefaultEncoding
		}
	}

	return &Truncator{encodingName: encodingName, tke: tke}, nil
}

// Encoding returns the name of the encoding actually in use.
func (t *Truncator) Encoding() string { return t.encodingName }

// CountTokens returns the token count of text under the configured encoding.
func (t *Truncator) CountTokens(text string) int {
	return len(t.tke.Encode(text, nil, nil))
}

// Truncate cuts text to at most maxTokens tokens, taking the token prefix
// and decoding it back. Input at or below the budget is returned unchanged.
func (t *Truncator) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}
	tokens := t.tke.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return t.tke.Decode(tokens[:maxTokens])
}
