package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/lifewheel/internal/store"
)

type recordingRepo struct {
	store.EventRepo // unused methods panic

	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	r.events = append(r.events, data)
	return r.err
}

type observation struct {
	purpose, model, outcome string
	in, out                 int
}

type recordingObserver struct {
	calls []observation
}

func (o *recordingObserver) ObserveLLMCall(purpose, model, outcome string, _ time.Duration, in, out int) {
	o.calls = append(o.calls, observation{purpose, model, outcome, in, out})
}

func TestWithLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	obs := &recordingObserver{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`"fine"`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, repo, nil, obs)

	ctx := WithPurpose(context.Background(), PurposeNarrative)
	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hi"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if !ev.Success || ev.Purpose != PurposeNarrative || ev.InputTokens != 12 || ev.OutputTokens != 7 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.ResponseBody != `"fine"` {
		t.Fatalf("response body = %q", ev.ResponseBody)
	}
	if want := "[system]\nsys\n\n[user]\nhi\n\n"; ev.RequestBody != want {
		t.Fatalf("request body = %q, want %q", ev.RequestBody, want)
	}

	if len(obs.calls) != 1 || obs.calls[0] != (observation{PurposeNarrative, "mock", "none", 12, 7}) {
		t.Fatalf("unexpected observations: %+v", obs.calls)
	}
}

func TestWithLogging_RecordsFailureAfterCancel(t *testing.T) {
	repo := &recordingRepo{}
	obs := &recordingObserver{}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"late"`), Delay: time.Second})
	p := WithLogging(mock, repo, nil, obs)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success {
		t.Fatalf("expected one failed event, got %+v", repo.events)
	}
	if obs.calls[0].outcome != "timeout" {
		t.Fatalf("outcome = %q", obs.calls[0].outcome)
	}
}

func TestWithLogging_RepoErrorDoesNotFailRequest(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)})
	p := WithLogging(mock, repo, nil, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWithLogging_NilCollaborators(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)})
	p := WithLogging(mock, nil, nil, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("ModelID() = %q", p.ModelID())
	}
}
