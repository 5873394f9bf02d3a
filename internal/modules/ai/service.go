package ai

import (
	"context"
	"time"

	"github.com/pagesage/core/internal/pkg/redis"
	"go.uber.org/zap"
)

const summaryCachePrefix = "ps:summary:"

// Service runs the language-model tasks. Summaries are cached in redis per
// content token; cache entries live exactly as long as the content itself,
// so a cached summary can never outlive its source entry.
type Service struct {
	completer Completer
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewService(completer Completer, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		completer: completer,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger.Named("ai"),
	}
}

// Summarize returns a summary of the stored text, consulting the cache first.
// Cache failures are logged and ignored; the completion still runs.
func (s *Service) Summarize(ctx context.Context, token, text string) (string, error) {
	cacheKey := summaryCachePrefix + token

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			s.logger.Warn("summary cache read failed", zap.String("token", token), zap.Error(err))
		} else if cached != "" {
			return cached, nil
		}
	}

	summary, err := s.completer.Complete(ctx, summarizeMessages(text))
	if err != nil {
		return "", err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cacheTTL); err != nil {
			s.logger.Warn("summary cache write failed", zap.String("token", token), zap.Error(err))
		}
	}
	return summary, nil
}

// Answer answers a question about the stored text.
func (s *Service) Answer(ctx context.Context, text, question string) (string, error) {
	return s.completer.Complete(ctx, askMessages(text, question))
}

// CorrectGrammar returns the text with grammar and spelling corrected.
func (s *Service) CorrectGrammar(ctx context.Context, text string) (string, error) {
	return s.completer.Complete(ctx, grammarMessages(text))
}

// Translate translates the text into the target language.
func (s *Service) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return s.completer.Complete(ctx, translateMessages(text, targetLang))
}

// Chat answers a question about a user-selected fragment that was never
// stored server-side.
func (s *Service) Chat(ctx context.Context, selectedContent, question string) (string, error) {
	return s.completer.Complete(ctx, chatMessages(selectedContent, question))
}
