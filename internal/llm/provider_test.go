package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeNarrative)
	if p := PurposeFrom(ctx); p != PurposeNarrative {
		t.Fatalf("expected 'question-gen', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     Config{Provider: "openrouter"},
			wantErr: true,
		},
		{
			name:    "gemini with key",
			cfg:     Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMockProvider_DelayHonorsContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"late"`), Delay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestResponseText(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want string
	}{
		{"nil", nil, ""},
		{"json string", &Response{Content: json.RawMessage(`"hello\nworld"`)}, "hello\nworld"},
		{"raw object", &Response{Content: json.RawMessage(`{"a":1}`)}, `{"a":1}`},
		{"whitespace", &Response{Content: json.RawMessage("  plain  ")}, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Text(); got != tt.want {
				t.Fatalf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{context.DeadlineExceeded, "timeout"},
		{fmt.Errorf("wrapped: %w", context.Canceled), "canceled"},
		{ErrEmptyResponse, "empty"},
		{&ErrRateLimit{}, "rate_limit"},
		{&ErrInvalidResponse{Err: errors.New("bad")}, "invalid"},
		{&ErrMaxTokensExceeded{}, "max_tokens"},
		{&ErrProviderUnavailable{}, "unavailable"},
		{errors.New("boom"), "other"},
	}
	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LIFEWHEEL_LLM_PROVIDER", "openrouter")
	t.Setenv("LIFEWHEEL_OPENROUTER_API_KEY", "sk-or")
	t.Setenv("LIFEWHEEL_OPENROUTER_MODEL", "meta-llama/llama-3-8b")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenRouter {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.OpenRouter.APIKey != "sk-or" || cfg.OpenRouter.Model != "meta-llama/llama-3-8b" {
		t.Fatalf("unexpected openrouter config: %+v", cfg.OpenRouter)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Fatalf("gemini default lost: %q", cfg.Gemini.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func clearDiscoveryEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LIFEWHEEL_LLM_PROVIDER", "LIFEWHEEL_GEMINI_API_KEY", "LIFEWHEEL_ANTHROPIC_API_KEY",
		"LIFEWHEEL_OPENAI_API_KEY", "LIFEWHEEL_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		clearDiscoveryEnv(t)
		if _, err := ResolveConfig(); !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured, got %v", err)
		}
	})

	t.Run("discovers vendor key", func(t *testing.T) {
		clearDiscoveryEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
		cfg, err := ResolveConfig()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Provider != ProviderAnthropic || cfg.Anthropic.APIKey != "sk-ant" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	})

	t.Run("gemini wins discovery", func(t *testing.T) {
		clearDiscoveryEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-oa")
		t.Setenv("GEMINI_API_KEY", "g-key")
		cfg, ok := DiscoverConfig()
		if !ok || cfg.Provider != ProviderGemini {
			t.Fatalf("expected gemini, got %+v", cfg)
		}
	})

	t.Run("explicit config preferred", func(t *testing.T) {
		clearDiscoveryEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-key")
		t.Setenv("LIFEWHEEL_LLM_PROVIDER", "mock")
		cfg, err := ResolveConfig()
		if err != nil || cfg.Provider != ProviderMock {
			t.Fatalf("expected mock, got %+v (%v)", cfg, err)
		}
	})
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock, Retry: RetryConfig{MaxAttempts: 1}}, nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID() = %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if _, err := NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, nil, nil, nil); err == nil {
		t.Fatal("expected error for missing key")
	}
}
