package prompt

import "fmt"

// PromptIDs contains all known prompt identifiers
var PromptIDs = struct {
	MetricsFetch   string
	ScoringAnalyze string
	NewsSummary    string
}{
	MetricsFetch:   "metrics.fetch",
	ScoringAnalyze: "scoring.analyze",
	NewsSummary:    "news.summary",
}

// Default returns the global registry, loading the embedded prompts on first use.
func Default() *Registry {
	r := Get()
	defaultsOnce.Do(func() {
		if err := r.LoadDefaults(); err != nil {
			panic(fmt.Sprintf("embedded prompts are broken: %v", err))
		}
	})
	return r
}

// Render looks up id in r and renders it. It returns the system and user prompts.
func (r *Registry) Render(id string, ctx *PromptExecutionContext) (string, string, error) {
	pt, err := r.GetPrompt(id)
	if err != nil {
		return "", "", err
	}
	user, err := RenderUserPrompt(pt, ctx)
	if err != nil {
		return "", "", err
	}
	return pt.SystemPrompt, user, nil
}
