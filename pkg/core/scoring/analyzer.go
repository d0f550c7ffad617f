package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"growth_analyzer/pkg/core/llm"
	"growth_analyzer/pkg/core/logger"
	"growth_analyzer/pkg/core/metrics"
	"growth_analyzer/pkg/core/prompt"
	"growth_analyzer/pkg/core/utils"

	"github.com/sirupsen/logrus"
)

// DriftTolerance is how far the oracle's own total may stray from the recomputed one
// before a warning is logged.
const DriftTolerance = 0.5

// Analyzer asks the oracle to score a ticker against Criteria.
type Analyzer struct {
	Oracle  llm.Provider
	Prompts *prompt.Registry
}

func NewAnalyzer(oracle llm.Provider, prompts *prompt.Registry) *Analyzer {
	return &Analyzer{Oracle: oracle, Prompts: prompts}
}

type rawCriterion struct {
	Score         *float64 `json:"score"`
	Justification string   `json:"justification"`
}

type rawAnalysis struct {
	Ticker        string                  `json:"ticker"`
	Scores        map[string]rawCriterion `json:"scores"`
	WeightedScore *float64                `json:"weightedScore"`
}

// Analyze scores ticker from its normalized metrics. The weighted score is always recomputed
// locally from the per-criterion scores.
func (a *Analyzer) Analyze(ctx context.Context, ticker string, m metrics.FinancialMetrics) (*StockAnalysis, error) {
	log := logger.Component("scoring").WithField("ticker", ticker)

	metricsJSON, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("SCORING_MARSHAL_ERROR: %w", err)
	}

	system, user, err := a.Prompts.Render(prompt.PromptIDs.ScoringAnalyze, prompt.NewContext().
		Set("Ticker", ticker).
		Set("Criteria", Criteria).
		Set("MetricsJSON", string(metricsJSON)))
	if err != nil {
		return nil, fmt.Errorf("SCORING_PROMPT_ERROR: %w", err)
	}

	log.Info("Requesting scored analysis")
	text, err := a.Oracle.GenerateResponse(ctx, user, system, map[string]interface{}{
		llm.OptResponseSchema: ResponseSchema(),
		llm.OptJSON:           true,
		llm.OptTemperature:    0.2,
	})
	if err != nil {
		log.WithError(err).Warn("Scoring request failed")
		return nil, err
	}

	analysis, err := ParseAnalysis(text)
	if err != nil {
		log.WithError(err).Warn("Scoring response rejected")
		return nil, err
	}
	analysis.Ticker = ticker

	if reported := analysis.ReportedWeightedScore; reported != nil && math.Abs(*reported-analysis.WeightedScore) > DriftTolerance {
		log.WithFields(logrus.Fields{
			"reported":   *reported,
			"recomputed": analysis.WeightedScore,
		}).Warn("Oracle weighted score drifted from recomputed total")
	}
	return analysis, nil
}

// ParseAnalysis decodes an oracle scoring payload. Every criterion of the table must be present
// with a numeric score, otherwise the payload is rejected as ErrInvalidFormat.
func ParseAnalysis(text string) (*StockAnalysis, error) {
	var raw rawAnalysis
	if err := utils.SmartParse(text, &raw); err != nil {
		return nil, fmt.Errorf("%w: scoring payload: %v", llm.ErrInvalidFormat, err)
	}

	scores := make(Scores, len(Criteria))
	for _, c := range Criteria {
		rc, ok := raw.Scores[string(c.Key)]
		if !ok || rc.Score == nil {
			return nil, fmt.Errorf("%w: scoring payload missing %s", llm.ErrInvalidFormat, c.Key)
		}
		scores[c.Key] = CriterionScore{Score: *rc.Score, Justification: rc.Justification}
	}

	return &StockAnalysis{
		Ticker:                raw.Ticker,
		Scores:                scores,
		WeightedScore:         Aggregate(scores),
		ReportedWeightedScore: raw.WeightedScore,
	}, nil
}
