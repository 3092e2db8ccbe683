package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func invalidRow() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`{"id":`), Err: errors.New("truncated row")}}
}

func TestClassifyRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want retryClass
	}{
		{"cancelled", context.Canceled, retryNever},
		{"deadline wrapped", fmt.Errorf("drafting context: %w", context.DeadlineExceeded), retryNever},
		{"max tokens", &ErrMaxTokensExceeded{}, retryNever},
		{"invalid row", &ErrInvalidResponse{Err: errors.New("bad")}, retryOnce},
		{"invalid row wrapped", fmt.Errorf("decode: %w", &ErrInvalidResponse{Err: errors.New("bad")}), retryOnce},
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, retryAlways},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("503")}, retryAlways},
		{"network", errors.New("connection reset"), retryAlways},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyRetry(tt.err); got != tt.want {
				t.Errorf("classifyRetry(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetry_Attempts(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{"id":"bus_wait"}`)}
	tests := []struct {
		name      string
		responses []MockResponse
		maxTries  int
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", []MockResponse{ok}, 3, 1, false},
		{"transient then success", []MockResponse{unavailable(), ok}, 3, 2, false},
		{"transient exhausts attempts", []MockResponse{unavailable(), unavailable(), unavailable(), ok}, 3, 3, true},
		{"invalid row retried once", []MockResponse{invalidRow(), ok}, 3, 2, false},
		{"second invalid row stops", []MockResponse{invalidRow(), invalidRow(), ok}, 3, 2, true},
		{"invalid row after transient still gets its retry", []MockResponse{unavailable(), invalidRow(), ok}, 3, 3, false},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok}, 3, 1, true},
		{"zero attempts clamps to one", []MockResponse{unavailable(), ok}, 0, 1, true},
		{"negative attempts clamps to one", []MockResponse{ok}, -2, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			cfg := retryConfig()
			cfg.MaxAttempts = tt.maxTries

			_, err := WithRetry(mock, cfg).Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Errorf("calls = %d, want %d", mock.CallCount(), tt.wantCalls)
			}
		})
	}
}

func TestRetry_CancelledBeforeFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"id":"bus_wait"}`)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, retryConfig()).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times after cancellation", mock.CallCount())
	}
}

func TestRetry_CancelledDuringBackoff(t *testing.T) {
	mock := NewMockProvider(unavailable(), MockResponse{Content: json.RawMessage(`{"id":"bus_wait"}`)})
	cfg := retryConfig()
	cfg.InitialWait, cfg.MaxWait = time.Hour, time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{
		MaxAttempts: 5,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     300 * time.Millisecond,
		Multiplier:  2,
	}}

	if got := r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}); got != 7*time.Second {
		t.Errorf("rate limit hint ignored: %v", got)
	}

	tests := []struct {
		attempt int
		base    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{4, 300 * time.Millisecond}, // capped
	}
	for _, tt := range tests {
		got := r.backoff(tt.attempt, errors.New("down"))
		lo, hi := tt.base*8/10, tt.base*12/10
		if got < lo || got > hi {
			t.Errorf("attempt %d: wait %v outside [%v, %v]", tt.attempt, got, lo, hi)
		}
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	if got := WithRetry(NewMockProvider(), retryConfig()).ModelID(); got != "mock" {
		t.Fatalf("expected 'mock', got %q", got)
	}
}
