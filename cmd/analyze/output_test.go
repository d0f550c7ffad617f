package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"growth_analyzer/pkg/core/agent"
	"growth_analyzer/pkg/core/config"
	"growth_analyzer/pkg/core/news"
	"growth_analyzer/pkg/core/scoring"

	"github.com/fatih/color"
	"github.com/spf13/viper"
)

func init() {
	color.NoColor = true
}

func TestRenderAnalysis(t *testing.T) {
	a := &scoring.StockAnalysis{
		Ticker: "AAPL",
		Scores: scoring.Scores{
			scoring.GrowthPotential: {Score: 90, Justification: "Services growth"},
		},
		WeightedScore: 18,
	}

	var buf bytes.Buffer
	if err := renderAnalysis(&buf, a); err != nil {
		t.Fatalf("renderAnalysis() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"AAPL", "overall 18.0 (poor)", "Growth Potential", "90.0", "Services growth"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCriteria(t *testing.T) {
	var buf bytes.Buffer
	if err := renderCriteria(&buf, scoring.Criteria); err != nil {
		t.Fatalf("renderCriteria() error: %v", err)
	}
	for _, c := range scoring.Criteria {
		if !strings.Contains(buf.String(), c.Name) {
			t.Errorf("criteria table missing %q", c.Name)
		}
	}
}

func TestRenderNews(t *testing.T) {
	var buf bytes.Buffer
	renderNews(&buf, "TSLA", nil)
	if !strings.Contains(buf.String(), "No news articles found for TSLA") {
		t.Errorf("unexpected empty output %q", buf.String())
	}

	buf.Reset()
	renderNews(&buf, "TSLA", []news.Article{{Title: "Deliveries up", URI: "https://n.example/1"}})
	if !strings.Contains(buf.String(), "1. Deliveries up") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestApplyOverrides(t *testing.T) {
	viper.Set("timeout", 90*time.Second+time.Millisecond)
	viper.Set("gemini-api-key", "k")
	t.Cleanup(viper.Reset)

	cfg := config.Default()
	applyOverrides(cfg)

	if cfg.Oracle.TimeoutSeconds != 91 {
		t.Errorf("timeout seconds = %d, want 91 (rounded up)", cfg.Oracle.TimeoutSeconds)
	}
	if cfg.Credentials.Gemini != "k" {
		t.Errorf("gemini key = %q", cfg.Credentials.Gemini)
	}
}

func TestSelectProvider(t *testing.T) {
	mgr := agent.NewManager(agent.Config{}, agent.Credentials{}, agent.Limits{})

	if err := selectProvider(mgr, ""); err != nil {
		t.Errorf("empty name should be a no-op, got %v", err)
	}
	if err := selectProvider(mgr, "deepseek"); err != nil {
		t.Fatalf("selectProvider(deepseek) error: %v", err)
	}
	if got := mgr.GetActiveProvider(); got != "deepseek" {
		t.Errorf("active provider = %q, want deepseek", got)
	}

	err := selectProvider(mgr, "kimi")
	if err == nil || !strings.Contains(err.Error(), "kimi") || !strings.Contains(err.Error(), "gemini") {
		t.Errorf("expected unknown-provider error listing available providers, got %v", err)
	}
	if got := mgr.GetActiveProvider(); got != "deepseek" {
		t.Errorf("failed switch changed provider to %q", got)
	}
}
