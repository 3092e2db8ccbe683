package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mathctx/internal/store"
)

type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}

func (r *recordingRepo) GetLLMEvent(context.Context, int) (*store.LLMEvent, error) {
	return nil, nil
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"id":"bus_wait","name":"Bus Wait","value_min":2,"value_max":25}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, "anthropic", repo, nil)

	ctx := WithPurpose(context.Background(), PurposeContextDraft)
	_, err := p.Generate(ctx, Request{
		System:   "be brief",
		Messages: UserMessage("draft"),
		Schema:   testSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "anthropic" || e.Model != "mock" || e.Purpose != PurposeContextDraft {
		t.Errorf("unexpected identity fields: %+v", e)
	}
	if !e.Success || e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Errorf("unexpected outcome fields: %+v", e)
	}
	for _, want := range []string{"[system]\nbe brief", "[user]\ndraft", "[schema: context-row-test]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, e.RequestBody)
		}
	}
	if e.ResponseBody != `{"id":"bus_wait","name":"Bus Wait","value_min":2,"value_max":25}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	p := WithLogging(NewMockProvider(MockResponse{Err: errors.New("boom")}), "openai", repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage != "boom" {
		t.Errorf("failure not recorded: %+v", repo.events)
	}
	if repo.events[0].Purpose != "unknown" {
		t.Errorf("purpose = %q, want unknown", repo.events[0].Purpose)
	}
}

func TestLoggingProvider_StoreErrorDoesNotFailCall(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)}), "gemini", repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("logging failure leaked into the call: %v", err)
	}
}

func TestLoggingProvider_WithStore(t *testing.T) {
	s, err := store.Open("file:llm_logging_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`"ok"`)}), "mock", s.EventRepo(), nil)
	if _, err := p.Generate(WithPurpose(context.Background(), PurposeContextDraft), Request{Messages: UserMessage("hi")}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{Purpose: PurposeContextDraft})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].ResponseBody != `"ok"` {
		t.Errorf("unexpected events: %+v", events)
	}
}

func TestConfigFrom(t *testing.T) {
	env := map[string]string{
		"MATHCTX_LLM_PROVIDER":       "OpenRouter",
		"MATHCTX_OPENROUTER_API_KEY": "or-key",
		"MATHCTX_OPENROUTER_MODEL":   "meta/llama",
		"MATHCTX_OPENAI_BASE_URL":    "http://localhost:8080/v1",
	}
	cfg := configFrom(func(k string) string { return env[k] })

	if cfg.Provider != ProviderOpenRouter {
		t.Fatalf("provider = %q, want openrouter", cfg.Provider)
	}
	sel := cfg.Selected()
	if sel.APIKey != "or-key" || sel.Model != "meta/llama" || sel.BaseURL != defaultOpenRouterBaseURL {
		t.Errorf("unexpected openrouter config: %+v", sel)
	}
	if cfg.Providers[ProviderOpenAI].BaseURL != "http://localhost:8080/v1" {
		t.Errorf("openai base URL not read: %+v", cfg.Providers[ProviderOpenAI])
	}
	if cfg.Providers[ProviderAnthropic].Model != "claude-haiku" {
		t.Errorf("anthropic default model lost: %+v", cfg.Providers[ProviderAnthropic])
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("mock provider: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	cfg.Provider = ProviderOpenAI
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Error("expected missing key error")
	}

	cfg.Provider = ProviderOpenRouter
	cfg.Providers[ProviderOpenRouter] = ProviderConfig{APIKey: "k", Model: "m"}
	p, err = NewProvider(context.Background(), cfg, &recordingRepo{}, nil)
	if err != nil {
		t.Fatalf("openrouter provider: %v", err)
	}
	if p.ModelID() != "m" {
		t.Errorf("ModelID = %q, want m", p.ModelID())
	}
}

func TestGenerateJSON(t *testing.T) {
	type row struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		ValueMin float64 `json:"value_min"`
		ValueMax float64 `json:"value_max"`
	}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(busWaitRow)})

	got, resp, err := GenerateJSON[row](context.Background(), mock, Request{Schema: testSchema()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "bus_wait" || got.ValueMin != 2 || got.ValueMax != 25 || resp.Model != "mock" {
		t.Errorf("unexpected result: %+v %+v", got, resp)
	}

	if _, _, err := GenerateJSON[row](context.Background(), mock, Request{}); err == nil {
		t.Error("expected error without a schema")
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]any{"id": "bus_wait", "name": "Bus Wait"}))
	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestWithTimeout(t *testing.T) {
	mock := NewMockProvider()
	if WithTimeout(mock, 0) != Provider(mock) {
		t.Error("zero timeout should return the provider unchanged")
	}
	wrapped := WithTimeout(mock, 1)
	if wrapped.ModelID() != "mock" {
		t.Errorf("ModelID = %q", wrapped.ModelID())
	}
}
