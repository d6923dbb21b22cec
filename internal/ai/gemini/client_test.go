package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/spigell/career-referee/internal/ai"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeCaller struct {
	mu      sync.Mutex
	queue   []fakeResponse
	prompts []string
	systems []string
}

type fakeResponse struct {
	output string
	err    error
}

func (f *fakeCaller) call(_ context.Context, _ string, system, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.systems = append(f.systems, system)
	f.prompts = append(f.prompts, prompt)

	if len(f.queue) == 0 {
		return "", errors.New("unexpected call")
	}

	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.output, res.err
}

func newClient(caller contentCaller, retries int) *Client {
	return &Client{
		caller:    caller,
		model:     "gemini-test",
		retries:   retries,
		baseDelay: time.Nanosecond,
		maxLogLen: 50,
		logger:    zap.NewNop(),
	}
}

func testRequest() ai.Request {
	return ai.Request{CareerA: "Pilot", CareerB: "Surgeon", UserName: "Sam"}
}

func TestGenerateRetriesOnTemporaryError(t *testing.T) {
	caller := &fakeCaller{queue: []fakeResponse{
		{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}},
		{output: `{"ok": true}`},
	}}

	output, err := newClient(caller, 3).Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != `{"ok": true}` {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(caller.prompts) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(caller.prompts))
	}

	for _, system := range caller.systems {
		if system != ai.SystemInstruction {
			t.Fatalf("unexpected system instruction: %q", system)
		}
	}
}

func TestGenerateStopsAfterRetriesExhausted(t *testing.T) {
	tempErr := genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}
	caller := &fakeCaller{queue: []fakeResponse{{err: tempErr}, {err: tempErr}}}

	_, err := newClient(caller, 2).Generate(context.Background(), testRequest())

	var provErr *ai.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Kind != ai.ErrExhausted {
		t.Fatalf("expected exhausted kind, got %q", provErr.Kind)
	}

	if len(caller.prompts) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(caller.prompts))
	}
}

func TestGenerateDoesNotRetryPermanentErrors(t *testing.T) {
	permanent := genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}
	caller := &fakeCaller{queue: []fakeResponse{{err: permanent}}}

	_, err := newClient(caller, 3).Generate(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error for permanent failure")
	}

	if len(caller.prompts) != 1 {
		t.Fatalf("expected single call, got %d", len(caller.prompts))
	}
}

func TestGenerateRetriesEmptyResponses(t *testing.T) {
	caller := &fakeCaller{queue: []fakeResponse{
		{output: "   "},
		{output: `{"ok": true}`},
	}}

	output, err := newClient(caller, 2).Generate(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != `{"ok": true}` {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestGenerateUnavailableWithoutAPIKey(t *testing.T) {
	client, err := New(context.Background(), Config{}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.Generate(context.Background(), testRequest())

	var provErr *ai.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.Kind != ai.ErrUnavailable {
		t.Fatalf("expected unavailable kind, got %q", provErr.Kind)
	}
}
