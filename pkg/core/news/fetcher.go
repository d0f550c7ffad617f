package news

import (
	"context"
	"fmt"

	"growth_analyzer/pkg/core/llm"
	"growth_analyzer/pkg/core/logger"
	"growth_analyzer/pkg/core/prompt"
)

// Fetcher pulls recent news citations for a ticker from a search-grounded oracle.
type Fetcher struct {
	Oracle  llm.GroundedProvider
	Prompts *prompt.Registry
}

func NewFetcher(oracle llm.GroundedProvider, prompts *prompt.Registry) *Fetcher {
	return &Fetcher{Oracle: oracle, Prompts: prompts}
}

// Fetch returns at most MaxArticles unique articles. An answer without citations is not an error.
func (f *Fetcher) Fetch(ctx context.Context, ticker string) ([]Article, error) {
	log := logger.Component("news").WithField("ticker", ticker)

	system, user, err := f.Prompts.Render(prompt.PromptIDs.NewsSummary, prompt.NewContext().Set("Ticker", ticker))
	if err != nil {
		return nil, fmt.Errorf("NEWS_PROMPT_ERROR: %w", err)
	}

	resp, err := f.Oracle.GenerateGrounded(ctx, user, system, nil)
	if err != nil {
		log.WithError(err).Warn("News request failed")
		return nil, fmt.Errorf("failed to fetch news for %s: %w", ticker, err)
	}

	articles := Dedup(resp.Sources)
	if len(articles) == 0 {
		log.Warn("No news articles found from grounding chunks")
	}
	return articles, nil
}
