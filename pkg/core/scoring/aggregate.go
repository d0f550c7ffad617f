package scoring

import "math"

// CriterionScore is the oracle's verdict on one criterion. Score is expected in [0,100]
// but is not clamped here.
type CriterionScore struct {
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}

// Scores maps every criterion to its score.
type Scores map[Criterion]CriterionScore

// StockAnalysis is one scored ticker in the working set.
type StockAnalysis struct {
	Ticker        string  `json:"ticker"`
	Scores        Scores  `json:"scores"`
	WeightedScore float64 `json:"weightedScore"`
	// ReportedWeightedScore is the total the oracle computed itself. Diagnostic only.
	ReportedWeightedScore *float64 `json:"reportedWeightedScore,omitempty"`
}

// WeightedScore computes Σ score × weight / 100 over table, in table order.
// Criteria missing from scores contribute nothing.
func WeightedScore(scores Scores, table []CriterionSpec) float64 {
	var total float64
	for _, c := range table {
		s, ok := scores[c.Key]
		if !ok {
			continue
		}
		total += s.Score * c.Weight / 100
	}
	return total
}

// Aggregate is WeightedScore over the fixed criteria table.
func Aggregate(scores Scores) float64 {
	return WeightedScore(scores, Criteria)
}

// Missing lists the criteria of table that scores does not cover.
func Missing(scores Scores, table []CriterionSpec) []Criterion {
	var missing []Criterion
	for _, c := range table {
		if _, ok := scores[c.Key]; !ok {
			missing = append(missing, c.Key)
		}
	}
	return missing
}

// Score bands used by the dashboard.
const (
	BandExcellent = "excellent"
	BandGood      = "good"
	BandFair      = "fair"
	BandPoor      = "poor"
)

// Band classifies a score for colouring: >=80 excellent, >=60 good, >=40 fair, else poor.
func Band(score float64) string {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandFair
	default:
		return BandPoor
	}
}

// ClampPercent bounds a score to [0,100] for bar rendering. Stored scores are left as-is.
func ClampPercent(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}
