package metrics

import (
	"context"
	"fmt"
	"strings"

	"growth_analyzer/pkg/core/llm"
	"growth_analyzer/pkg/core/logger"
	"growth_analyzer/pkg/core/prompt"
)

// Fetcher asks the oracle for the current metrics of a ticker.
type Fetcher struct {
	Oracle  llm.Provider
	Prompts *prompt.Registry
}

func NewFetcher(oracle llm.Provider, prompts *prompt.Registry) *Fetcher {
	return &Fetcher{Oracle: oracle, Prompts: prompts}
}

// Fetch looks up and normalizes the metrics for ticker.
func (f *Fetcher) Fetch(ctx context.Context, ticker string) (FinancialMetrics, error) {
	log := logger.Component("metrics").WithField("ticker", ticker)
	log.Info("Fetching real-time financial data")

	keys := make([]string, len(Fields))
	for i, field := range Fields {
		keys[i] = fmt.Sprintf("%q", field.Key)
	}

	system, user, err := f.Prompts.Render(prompt.PromptIDs.MetricsFetch, prompt.NewContext().
		Set("Ticker", ticker).
		Set("Fields", Fields).
		Set("Keys", strings.Join(keys, ", ")))
	if err != nil {
		return FinancialMetrics{}, fmt.Errorf("METRICS_PROMPT_ERROR: %w", err)
	}

	text, err := f.Oracle.GenerateResponse(ctx, user, system, map[string]interface{}{
		llm.OptGoogleSearch: true,
		llm.OptTemperature:  0.0,
	})
	if err != nil {
		log.WithError(err).Warn("Metrics request failed")
		return FinancialMetrics{}, err
	}

	m, err := Parse(text)
	if err != nil {
		log.WithError(err).Warn("Metrics response could not be parsed")
		return FinancialMetrics{}, err
	}
	return m, nil
}
