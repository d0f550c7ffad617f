package scoring

import (
	"fmt"
	"math"
)

// Criterion is the wire key of one scoring criterion.
type Criterion string

const (
	CompetitiveAdvantage Criterion = "competitiveAdvantage"
	ManagementTeam       Criterion = "managementTeam"
	GrowthPotential      Criterion = "growthPotential"
	MarketCapSize        Criterion = "marketCapSize"
	LowDebt              Criterion = "lowDebt"
	CapitalEfficiency    Criterion = "capitalEfficiency"
	AddressableMarket    Criterion = "addressableMarket"
	Innovation           Criterion = "innovation"
	LongTermPotential    Criterion = "longTermPotential"
	Valuation            Criterion = "valuation"
)

// CriterionSpec is one row of the weight table. Weight is a percentage.
type CriterionSpec struct {
	Key         Criterion `json:"key"`
	Name        string    `json:"name"`
	Weight      float64   `json:"weight"`
	Description string    `json:"description"`
	Guidance    string    `json:"-"` // instructions for the oracle
}

// Criteria is the fixed Gunderson growth table. Order is display order and summation order.
var Criteria = []CriterionSpec{
	{
		Key: CompetitiveAdvantage, Name: "Competitive Advantage", Weight: 15,
		Description: "A defensible niche, proprietary tech, brand strength, or a moat.",
		Guidance:    "Does the company have a defensible niche, proprietary tech, brand strength, or a moat? You may infer this from the company's reputation if it is a well-known ticker.",
	},
	{
		Key: ManagementTeam, Name: "Management Team", Weight: 10,
		Description: "Capable, honest, and shareholder-oriented leadership.",
		Guidance:    "Is leadership capable, honest, and shareholder-oriented? Is it founder-led? Infer from public knowledge of the company.",
	},
	{
		Key: GrowthPotential, Name: "Growth Potential", Weight: 20,
		Description: "Consistent and accelerating top/bottom-line growth (ideally >20%).",
		Guidance:    "Look for consistent and accelerating top/bottom-line growth. Prioritize high revenue growth. Favorable: Revenue/EPS Growth > 20%.",
	},
	{
		Key: MarketCapSize, Name: "Market Cap Size", Weight: 5,
		Description: "Smaller cap stocks (ideally under $2 billion) have more room to grow.",
		Guidance:    "Ideal is under $2 billion. Score high for small caps, low for large caps.",
	},
	{
		Key: LowDebt, Name: "Low Debt", Weight: 10,
		Description: "A strong balance sheet is key (Debt/Equity ratio < 0.5 is favorable).",
		Guidance:    "A strong balance sheet is key. Favorable: Debt/Equity ratio < 0.5.",
	},
	{
		Key: CapitalEfficiency, Name: "Capital Efficiency (ROE/ROIC)", Weight: 10,
		Description: "Efficient use of capital (ROE & ROIC > 15% is favorable).",
		Guidance:    "Efficient capital use. Favorable: ROE & ROIC > 15%.",
	},
	{
		Key: AddressableMarket, Name: "Addressable Market", Weight: 10,
		Description: "Operates in a large, growing industry with room to scale.",
		Guidance:    "Does the company operate in a large, growing industry with room to scale? Infer from public knowledge of the industry.",
	},
	{
		Key: Innovation, Name: "Innovation", Weight: 10,
		Description: "A disruptor or innovator in its field.",
		Guidance:    "Is the company a disruptor or innovator in its field? Infer from public knowledge.",
	},
	{
		Key: LongTermPotential, Name: "Long-Term Potential", Weight: 5,
		Description: "Potential to compound value over many years.",
		Guidance:    "Based on all factors, can this company compound value over many years? This is a summary score of its long-term potential.",
	},
	{
		Key: Valuation, Name: "Valuation", Weight: 5,
		Description: "Reasonable valuation for its growth (PEG ratio <= 1.5 is favorable).",
		Guidance:    "Is the valuation reasonable for its growth? Favorable: PEG ratio <= 1.5. Avoid extremely high P/E, P/B ratios unless growth justifies it.",
	},
}

// Lookup returns the table row for key.
func Lookup(key Criterion) (CriterionSpec, bool) {
	for _, c := range Criteria {
		if c.Key == key {
			return c, true
		}
	}
	return CriterionSpec{}, false
}

// ValidateWeights checks that a weight table sums to 100 and has no duplicate keys.
func ValidateWeights(table []CriterionSpec) error {
	seen := make(map[Criterion]bool, len(table))
	var total float64
	for _, c := range table {
		if seen[c.Key] {
			return fmt.Errorf("duplicate criterion %s", c.Key)
		}
		seen[c.Key] = true
		if c.Weight < 0 {
			return fmt.Errorf("criterion %s has negative weight %v", c.Key, c.Weight)
		}
		total += c.Weight
	}
	if math.Abs(total-100) > 1e-9 {
		return fmt.Errorf("weights sum to %v, want 100", total)
	}
	return nil
}
