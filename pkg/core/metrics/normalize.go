package metrics

import (
	"encoding/json"
	"fmt"
	"math"

	"growth_analyzer/pkg/core/llm"
	"growth_analyzer/pkg/core/utils"
)

// Normalize copies every known field out of an untyped oracle payload. A field is taken only
// when its value is a finite number; null, strings, booleans, nested values and absent keys
// all become 0.
func Normalize(raw map[string]interface{}) FinancialMetrics {
	return FinancialMetrics{
		Price:         number(raw, "price"),
		SMA50:         number(raw, "sma50"),
		SMA200:        number(raw, "sma200"),
		WeekHigh52:    number(raw, "52WeekHigh"),
		WeekLow52:     number(raw, "52WeekLow"),
		PERatio:       number(raw, "peRatio"),
		PEGRatio:      number(raw, "pegRatio"),
		PBRatio:       number(raw, "pbRatio"),
		EPSGrowth:     number(raw, "epsGrowth"),
		RevenueGrowth: number(raw, "revenueGrowth"),
		ROE:           number(raw, "roe"),
		RSI14:         number(raw, "rsi14"),
		MACDHistogram: number(raw, "macdHistogram"),
		ForwardPE:     number(raw, "forwardPE"),
		EVEBITDA:      number(raw, "evEbitda"),
		FCFYield:      number(raw, "fcfYield"),
		DividendYield: number(raw, "dividendYield"),
		MarketCap:     number(raw, "marketCap"),
		DebtToEquity:  number(raw, "debtToEquity"),
		ROIC:          number(raw, "roic"),
	}
}

func number(raw map[string]interface{}, key string) float64 {
	var f float64
	switch v := raw[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Parse turns a raw oracle response into a complete record. Missing or non-numeric fields
// degrade to 0, but a response that holds no JSON object, or an object that names none of
// the known fields, is an error.
func Parse(text string) (FinancialMetrics, error) {
	var raw map[string]interface{}
	if err := utils.SmartParse(text, &raw); err != nil {
		return FinancialMetrics{}, fmt.Errorf("%w: metrics payload: %v", llm.ErrInvalidFormat, err)
	}
	if !hasKnownField(raw) {
		return FinancialMetrics{}, fmt.Errorf("%w: metrics payload has none of the expected fields", llm.ErrInvalidFormat)
	}
	return Normalize(raw), nil
}

// hasKnownField guards against prose that the lenient decoder turned into an object,
// e.g. "no data for {ticker}" becoming {"ticker": ...}.
func hasKnownField(raw map[string]interface{}) bool {
	for _, f := range Fields {
		if _, ok := raw[f.Key]; ok {
			return true
		}
	}
	return false
}
