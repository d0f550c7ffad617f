package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"growth_analyzer/pkg/core/llm"
	"growth_analyzer/pkg/core/prompt"
)

func TestNormalizePartialInput(t *testing.T) {
	raw := map[string]interface{}{
		"price":        123.45,
		"sma50":        nil,
		"peRatio":      "28.1",
		"roe":          true,
		"marketCap":    json.Number("2.5"),
		"debtToEquity": map[string]interface{}{"value": 1},
		"unknown":      99.0,
	}

	got := Normalize(raw)
	want := FinancialMetrics{Price: 123.45, MarketCap: 2.5}
	if got != want {
		t.Errorf("Normalize() = %+v, want %+v", got, want)
	}

	if len(got.Map()) != len(Fields) {
		t.Errorf("Map() has %d fields, want %d", len(got.Map()), len(Fields))
	}
}

func TestNormalizeEmptyAndNil(t *testing.T) {
	if got := Normalize(nil); got != (FinancialMetrics{}) {
		t.Errorf("Normalize(nil) = %+v, want zero record", got)
	}
	if got := Normalize(map[string]interface{}{}); got != (FinancialMetrics{}) {
		t.Errorf("Normalize({}) = %+v, want zero record", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	full := FinancialMetrics{
		Price: 190.1, SMA50: 185, SMA200: 170.2, WeekHigh52: 199.6, WeekLow52: 164.1,
		PERatio: 29.4, PEGRatio: 2.1, PBRatio: 45, EPSGrowth: 0.11, RevenueGrowth: 0.05,
		ROE: 1.47, RSI14: 55, MACDHistogram: -0.4, ForwardPE: 27, EVEBITDA: 22.3,
		FCFYield: 0.035, DividendYield: 0.005, MarketCap: 2900, DebtToEquity: 1.8, ROIC: 0.55,
	}

	if got := Normalize(full.Map()); got != full {
		t.Errorf("Normalize(Map()) = %+v, want %+v", got, full)
	}

	// round trip through the wire format as well
	data, err := json.Marshal(full)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := Normalize(raw); got != full {
		t.Errorf("Normalize(wire) = %+v, want %+v", got, full)
	}
}

func TestMapKeysMatchFields(t *testing.T) {
	m := FinancialMetrics{}.Map()
	for _, f := range Fields {
		if _, ok := m[f.Key]; !ok {
			t.Errorf("Map() missing %s", f.Key)
		}
	}
}

func TestParse(t *testing.T) {
	t.Run("fenced with nulls", func(t *testing.T) {
		got, err := Parse("```json\n{\"price\": 10, \"52WeekHigh\": 12.5, \"roic\": null}\n```")
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if got.Price != 10 || got.WeekHigh52 != 12.5 || got.ROIC != 0 {
			t.Errorf("Parse() = %+v", got)
		}
	})

	t.Run("all fields null", func(t *testing.T) {
		got, err := Parse(`{"price": null, "roic": "n/a"}`)
		if err != nil {
			t.Fatalf("Parse() error: %v", err)
		}
		if got != (FinancialMetrics{}) {
			t.Errorf("Parse() = %+v, want zero record", got)
		}
	})

	invalid := map[string]string{
		"prose":                 "Sorry, I cannot find data for that ticker.",
		"prose with braces":     "I could not find data for {ticker} right now.",
		"bare word in braces":   "{unavailable}",
		"object without fields": `{"error": "rate limited"}`,
		"array":                 "[1,2,3]",
		"null":                  "null",
	}
	for name, text := range invalid {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse(text); !errors.Is(err, llm.ErrInvalidFormat) {
				t.Fatalf("Parse(%q): expected ErrInvalidFormat, got %v", text, err)
			}
		})
	}
}

type scriptedOracle struct {
	text    string
	err     error
	prompt  string
	options map[string]interface{}
}

func (s *scriptedOracle) GenerateResponse(ctx context.Context, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	s.prompt = prompt
	s.options = options
	return s.text, s.err
}

func (s *scriptedOracle) AdaptInstructions(raw string) string { return raw }

func newRegistry(t *testing.T) *prompt.Registry {
	t.Helper()
	r := prompt.NewRegistry()
	if err := r.LoadDefaults(); err != nil {
		t.Fatalf("LoadDefaults() error: %v", err)
	}
	return r
}

func TestFetcherFetch(t *testing.T) {
	oracle := &scriptedOracle{text: `{"price": 42, "marketCap": 1.2}`}
	f := NewFetcher(oracle, newRegistry(t))

	got, err := f.Fetch(context.Background(), "CRWD")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if got.Price != 42 || got.MarketCap != 1.2 {
		t.Errorf("Fetch() = %+v", got)
	}
	if !strings.Contains(oracle.prompt, `"CRWD"`) || !strings.Contains(oracle.prompt, `"52WeekHigh"`) {
		t.Errorf("prompt missing ticker or keys: %s", oracle.prompt)
	}
	if oracle.options[llm.OptGoogleSearch] != true {
		t.Errorf("metrics lookup should be grounded: %v", oracle.options)
	}
}

func TestFetcherPropagatesOracleError(t *testing.T) {
	oracle := &scriptedOracle{err: errors.New("ORACLE_UNAVAILABLE: 503")}
	f := NewFetcher(oracle, newRegistry(t))

	if _, err := f.Fetch(context.Background(), "CRWD"); err == nil {
		t.Fatal("expected error")
	}
}
