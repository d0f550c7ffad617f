// Package app assembles the oracle pipeline shared by the API server and the CLI.
package app

import (
	"fmt"

	"growth_analyzer/pkg/core/agent"
	"growth_analyzer/pkg/core/config"
	"growth_analyzer/pkg/core/dashboard"
	"growth_analyzer/pkg/core/logger"
	"growth_analyzer/pkg/core/metrics"
	"growth_analyzer/pkg/core/news"
	"growth_analyzer/pkg/core/prompt"
	"growth_analyzer/pkg/core/scoring"
)

type Services struct {
	Config   *config.AppConfig
	Agents   *agent.Manager
	Prompts  *prompt.Registry
	Metrics  *metrics.Fetcher
	Analyzer *scoring.Analyzer
	News     *news.Fetcher
}

// New builds the providers, prompts and fetchers described by cfg.
func New(cfg *config.AppConfig) (*Services, error) {
	mgr := agent.NewManager(cfg.Models, cfg.Credentials, cfg.Limits())
	return NewWithManager(cfg, mgr)
}

// NewWithManager is New with a caller-supplied agent manager.
func NewWithManager(cfg *config.AppConfig, mgr *agent.Manager) (*Services, error) {
	prompts, err := loadPrompts(cfg.Prompts.Dir)
	if err != nil {
		return nil, err
	}

	return &Services{
		Config:   cfg,
		Agents:   mgr,
		Prompts:  prompts,
		Metrics:  metrics.NewFetcher(mgr.ForRole(agent.RoleMetrics), prompts),
		Analyzer: scoring.NewAnalyzer(mgr.ForRole(agent.RoleScoring), prompts),
		News:     news.NewFetcher(mgr.ForRole(agent.RoleNews), prompts),
	}, nil
}

func (s *Services) Dashboard(opts ...dashboard.Option) *dashboard.Dashboard {
	opts = append([]dashboard.Option{dashboard.WithTimeout(s.Config.Timeout())}, opts...)
	return dashboard.New(s.Metrics, s.Analyzer, s.News, opts...)
}

func loadPrompts(dir string) (*prompt.Registry, error) {
	if dir == "" {
		return prompt.Default(), nil
	}

	r := prompt.NewRegistry()
	if err := r.LoadDefaults(); err != nil {
		return nil, fmt.Errorf("PROMPT_LOAD_FAILED: %w", err)
	}
	if err := r.LoadFromDirectory(dir); err != nil {
		return nil, fmt.Errorf("PROMPT_LOAD_FAILED: %s: %w", dir, err)
	}
	logger.Component("prompt").Infof("Loaded %d prompts (overrides from %s)", r.Count(), dir)
	return r, nil
}
