// Package narrative asks a language model for a personalized reading of
// a wheel entry. Generate never fails: every problem becomes one of the
// fixed apology messages.
package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/abhisek/lifewheel/internal/llm"
	"github.com/abhisek/lifewheel/internal/wheel"
)

// Fixed messages returned in place of an analysis.
const (
	MsgUnavailable       = "The smart analysis service is not available right now. Please check the API key configuration."
	MsgConnectionProblem = "Sorry, something went wrong while contacting the analysis service. Please check your internet connection."
	MsgEmptyResponse     = "The analysis service returned an empty response."
)

// IsApology reports whether text is one of the fixed fallback messages.
func IsApology(text string) bool {
	switch text {
	case MsgUnavailable, MsgConnectionProblem, MsgEmptyResponse:
		return true
	}
	return false
}

// Service generates narratives. A nil provider is allowed and yields
// MsgUnavailable.
type Service struct {
	provider llm.Provider
	set      wheel.CategorySet
	cfg      Config
	cache    *lru.Cache[string, string]
	logger   *slog.Logger
}

// NewService creates a narrative service over provider.
func NewService(provider llm.Provider, set wheel.CategorySet, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{provider: provider, set: set, cfg: cfg, logger: logger}
	if cfg.CacheSize > 0 {
		// Only fails for a non-positive size.
		s.cache, _ = lru.New[string, string](cfg.CacheSize)
	}
	return s
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s != nil && s.provider != nil
}

// Generate returns the analysis for current, compared with previous
// when it is non-nil. The call is bounded by Config.Timeout.
func (s *Service) Generate(ctx context.Context, current wheel.Entry, previous *wheel.Entry) string {
	if !s.Available() {
		return MsgUnavailable
	}

	key := cacheKey(s.set, current, previous)
	if s.cache != nil {
		if text, ok := s.cache.Get(key); ok {
			return text
		}
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	text, err := s.generate(llm.WithPurpose(ctx, llm.PurposeNarrative), current, previous)
	switch {
	case errors.Is(err, llm.ErrEmptyResponse):
		s.logger.Warn("narrative empty", "entry", current.ID)
		return MsgEmptyResponse
	case err != nil:
		s.logger.Warn("narrative failed", "entry", current.ID, "kind", llm.ErrorKind(err), "error", err)
		return MsgConnectionProblem
	}

	if s.cache != nil {
		s.cache.Add(key, text)
	}
	return text
}

func (s *Service) generate(ctx context.Context, current wheel.Entry, previous *wheel.Entry) (string, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(s.set, current, previous)}},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}

	var out output
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		// Some gateways ignore the schema and answer in prose.
		if text := strings.TrimSpace(resp.Text()); text != "" {
			return text, nil
		}
		return "", llm.ErrEmptyResponse
	}

	text := render(out)
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}
