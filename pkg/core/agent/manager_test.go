package agent

import (
	"context"
	"errors"
	"testing"

	"growth_analyzer/pkg/core/llm"

	"golang.org/x/time/rate"
)

type mockProvider struct {
	name     string
	lastOpts map[string]interface{}
	calls    int
}

func (m *mockProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	m.calls++
	m.lastOpts = options
	return m.name + ":" + prompt, nil
}

func (m *mockProvider) AdaptInstructions(raw string) string { return raw }

type mockGrounded struct {
	mockProvider
}

func (m *mockGrounded) GenerateGrounded(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (*llm.GroundedResponse, error) {
	m.calls++
	return &llm.GroundedResponse{Text: "news", Sources: []llm.Source{{Title: "t", URI: "u"}}}, nil
}

func newTestManager(cfg Config) (*Manager, *mockGrounded, *mockProvider) {
	gemini := &mockGrounded{mockProvider{name: "gemini"}}
	deepseek := &mockProvider{name: "deepseek"}
	mgr := NewManagerWithProviders(cfg, map[string]llm.Provider{
		"gemini":   gemini,
		"deepseek": deepseek,
	}, nil)
	return mgr, gemini, deepseek
}

func TestGetProviderResolution(t *testing.T) {
	mgr, gemini, deepseek := newTestManager(Config{
		ActiveProvider: "gemini",
		Agents: map[string]AgentConfig{
			RoleScoring: {Provider: "deepseek"},
			RoleNews:    {Provider: "nonexistent"},
		},
	})

	if got := mgr.GetProvider(RoleScoring); got != deepseek {
		t.Errorf("scoring provider = %T, want deepseek override", got)
	}
	if got := mgr.GetProvider(RoleNews); got != gemini {
		t.Errorf("news provider should fall back to the active provider")
	}
	if got := mgr.GetProvider(RoleMetrics); got != gemini {
		t.Errorf("metrics provider should use the active provider")
	}
}

func TestSetGlobalProvider(t *testing.T) {
	mgr, _, deepseek := newTestManager(Config{})

	if mgr.GetActiveProvider() != "gemini" {
		t.Fatalf("default active provider = %q, want gemini", mgr.GetActiveProvider())
	}
	if err := mgr.SetGlobalProvider("kimi"); err == nil {
		t.Error("expected error for unknown provider")
	}
	if err := mgr.SetGlobalProvider("deepseek"); err != nil {
		t.Fatalf("SetGlobalProvider() error: %v", err)
	}
	if mgr.GetProvider(RoleMetrics) != deepseek {
		t.Error("switch did not take effect")
	}

	avail := mgr.Available()
	if len(avail) != 2 || avail[0] != "deepseek" || avail[1] != "gemini" {
		t.Errorf("Available() = %v", avail)
	}
}

func TestRoleProviderModelOverride(t *testing.T) {
	mgr, gemini, _ := newTestManager(Config{
		Agents: map[string]AgentConfig{
			RoleScoring: {Provider: "gemini", Model: "gemini-2.5-pro"},
		},
	})

	out, err := mgr.ForRole(RoleScoring).GenerateResponse(context.Background(), "p", "", nil)
	if err != nil {
		t.Fatalf("GenerateResponse() error: %v", err)
	}
	if out != "gemini:p" {
		t.Errorf("output = %q", out)
	}
	if gemini.lastOpts[llm.OptModel] != "gemini-2.5-pro" {
		t.Errorf("model override not applied: %v", gemini.lastOpts)
	}

	// an explicit option wins over the configured model
	_, _ = mgr.ForRole(RoleScoring).GenerateResponse(context.Background(), "p", "", map[string]interface{}{llm.OptModel: "x"})
	if gemini.lastOpts[llm.OptModel] != "x" {
		t.Errorf("explicit model lost: %v", gemini.lastOpts)
	}
}

func TestRoleProviderGrounding(t *testing.T) {
	mgr, _, _ := newTestManager(Config{
		Agents: map[string]AgentConfig{RoleNews: {Provider: "deepseek"}},
	})

	_, err := mgr.ForRole(RoleNews).GenerateGrounded(context.Background(), "p", "", nil)
	if !errors.Is(err, llm.ErrNoGrounding) {
		t.Fatalf("expected ErrNoGrounding, got %v", err)
	}

	resp, err := mgr.ForRole(RoleMetrics).GenerateGrounded(context.Background(), "p", "", nil)
	if err != nil {
		t.Fatalf("GenerateGrounded() error: %v", err)
	}
	if len(resp.Sources) != 1 {
		t.Errorf("sources = %v", resp.Sources)
	}
}

func TestRoleProviderRateLimited(t *testing.T) {
	gemini := &mockGrounded{mockProvider{name: "gemini"}}
	limiter := rate.NewLimiter(rate.Limit(0.001), 1)
	mgr := NewManagerWithProviders(Config{}, map[string]llm.Provider{"gemini": gemini}, limiter)

	if _, err := mgr.ForRole(RoleMetrics).GenerateResponse(context.Background(), "p", "", nil); err != nil {
		t.Fatalf("first call should use the burst: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := mgr.ForRole(RoleMetrics).GenerateResponse(ctx, "p", "", nil); err == nil {
		t.Fatal("expected limiter error on cancelled context")
	}
	if gemini.calls != 1 {
		t.Errorf("provider calls = %d, want 1", gemini.calls)
	}
}
