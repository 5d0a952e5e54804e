package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/lifewheel/internal/store"
)

// Observer receives one call per completed LLM request.
type Observer interface {
	ObserveLLMCall(purpose, model, outcome string, latency time.Duration, inputTokens, outputTokens int)
}

// LoggingProvider is a decorator that records every request as a stored
// event, a structured log line and an observer callback.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	logger    *slog.Logger
	observer  Observer
}

// WithLogging wraps p. repo, logger and observer may each be nil.
func WithLogging(p Provider, repo store.EventRepo, logger *slog.Logger, observer Observer) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, eventRepo: repo, logger: logger, observer: observer}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	attrs := []any{
		"purpose", purpose,
		"model", data.Model,
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
	}
	if err != nil {
		l.logger.Warn("llm request failed", append(attrs, "kind", ErrorKind(err), "error", err)...)
	} else {
		l.logger.Debug("llm request", attrs...)
	}

	if l.observer != nil {
		l.observer.ObserveLLMCall(purpose, data.Model, ErrorKind(err), latency, data.InputTokens, data.OutputTokens)
	}

	// Recording must not fail the request. The caller's context may
	// already be done, so the write gets its own deadline.
	if l.eventRepo != nil {
		wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		if logErr := l.eventRepo.AppendLLMRequest(wctx, data); logErr != nil {
			l.logger.Warn("failed to record llm event", "error", logErr)
		}
		cancel()
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
