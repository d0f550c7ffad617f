package agent

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"growth_analyzer/pkg/core/llm"
	"growth_analyzer/pkg/core/logger"

	"golang.org/x/time/rate"
)

// Oracle roles. Each maps to a provider through Config.
const (
	RoleMetrics = "metrics"
	RoleScoring = "scoring"
	RoleNews    = "news"
)

const fallbackProvider = "gemini"

type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Model       string `yaml:"model"`    // Only applied together with Provider
	Description string `yaml:"description"`
}

// Credentials carries the API keys used to build the stock providers.
type Credentials struct {
	Gemini   string
	DeepSeek string
	Qwen     string
	OpenAI   string
}

// Limits bounds the rate of oracle calls across all roles.
type Limits struct {
	RequestsPerMinute int
	Burst             int
}

type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
	limiter   *rate.Limiter
}

// NewManager builds the stock provider set from creds.
func NewManager(config Config, creds Credentials, limits Limits) *Manager {
	providers := map[string]llm.Provider{
		"gemini":        llm.NewGeminiProvider(creds.Gemini, ""),
		"gemini-legacy": &llm.GeminiLegacyProvider{APIKey: creds.Gemini},
		"deepseek":      llm.NewDeepSeekProvider(creds.DeepSeek),
		"qwen":          llm.NewQwenProvider(creds.Qwen),
		"openai":        llm.NewOpenAIProvider(creds.OpenAI),
	}
	return NewManagerWithProviders(config, providers, newLimiter(limits))
}

// NewManagerWithProviders is NewManager with an explicit provider set. A nil limiter disables rate limiting.
func NewManagerWithProviders(config Config, providers map[string]llm.Provider, limiter *rate.Limiter) *Manager {
	if config.ActiveProvider == "" {
		config.ActiveProvider = fallbackProvider
	}
	return &Manager{
		config:    config,
		providers: providers,
		limiter:   limiter,
	}
}

func newLimiter(limits Limits) *rate.Limiter {
	if limits.RequestsPerMinute <= 0 {
		return nil
	}
	burst := limits.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(limits.RequestsPerMinute)/60.0), burst)
}

// GetProvider resolves the provider for a role: agent override, then the global provider, then gemini.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	p, _, _ := m.resolve(agentType)
	return p
}

func (m *Manager) resolve(agentType string) (llm.Provider, string, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p, agentConfig.Provider, agentConfig.Model
		}
	}

	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p, m.config.ActiveProvider, ""
	}

	return m.providers[fallbackProvider], fallbackProvider, ""
}

// GetProviderByName retrieves a provider instance by its name (e.g. "deepseek", "gemini").
func (m *Manager) GetProviderByName(name string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.providers[name]
}

func (m *Manager) SetGlobalProvider(newProvider string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	logger.Component("agent").Infof("Global provider set to: %s", newProvider)
	return nil
}

func (m *Manager) GetActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// Available lists the registered provider names, sorted.
func (m *Manager) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForRole returns a provider bound to one role. The underlying provider is resolved on every call,
// so a global switch takes effect immediately.
func (m *Manager) ForRole(role string) *RoleProvider {
	return &RoleProvider{mgr: m, role: role}
}

func (m *Manager) wait(ctx context.Context) error {
	if m.limiter == nil {
		return nil
	}
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}
