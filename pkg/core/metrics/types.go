package metrics

// FinancialMetrics is the fixed-shape quote record for one ticker. Every field is always
// populated; values the oracle could not supply are 0. Ratios expressed "as a decimal"
// (growth, ROE, ROIC, yields) are fractions, MarketCap is in billions of USD.
type FinancialMetrics struct {
	Price         float64 `json:"price"`
	SMA50         float64 `json:"sma50"`
	SMA200        float64 `json:"sma200"`
	WeekHigh52    float64 `json:"52WeekHigh"`
	WeekLow52     float64 `json:"52WeekLow"`
	PERatio       float64 `json:"peRatio"`
	PEGRatio      float64 `json:"pegRatio"`
	PBRatio       float64 `json:"pbRatio"`
	EPSGrowth     float64 `json:"epsGrowth"`
	RevenueGrowth float64 `json:"revenueGrowth"`
	ROE           float64 `json:"roe"`
	RSI14         float64 `json:"rsi14"`
	MACDHistogram float64 `json:"macdHistogram"`
	ForwardPE     float64 `json:"forwardPE"`
	EVEBITDA      float64 `json:"evEbitda"`
	FCFYield      float64 `json:"fcfYield"`
	DividendYield float64 `json:"dividendYield"`
	MarketCap     float64 `json:"marketCap"`
	DebtToEquity  float64 `json:"debtToEquity"`
	ROIC          float64 `json:"roic"`
}

// Field describes one metric: its wire key and the label used when asking the oracle for it.
type Field struct {
	Key   string
	Label string
}

// Fields lists every metric in prompt order.
var Fields = []Field{
	{"price", "Current Stock Price"},
	{"sma50", "50-day Simple Moving Average (SMA)"},
	{"sma200", "200-day Simple Moving Average (SMA)"},
	{"52WeekHigh", "52-Week High"},
	{"52WeekLow", "52-Week Low"},
	{"peRatio", "Price-to-Earnings (P/E) Ratio (Trailing Twelve Months, TTM)"},
	{"pegRatio", "Price/Earnings to Growth (PEG) Ratio (TTM)"},
	{"pbRatio", "Price-to-Book (P/B) Ratio"},
	{"epsGrowth", "EPS Growth (latest quarter vs. same quarter last year), as a decimal"},
	{"revenueGrowth", "Revenue Growth (latest quarter vs. same quarter last year), as a decimal"},
	{"roe", "Return on Equity (ROE) (TTM), as a decimal"},
	{"rsi14", "14-day Relative Strength Index (RSI)"},
	{"macdHistogram", "MACD Histogram value"},
	{"forwardPE", "Forward P/E Ratio"},
	{"evEbitda", "Enterprise Value to EBITDA (EV/EBITDA)"},
	{"fcfYield", "Free Cash Flow (FCF) Yield, as a decimal"},
	{"dividendYield", "Dividend Yield, as a decimal"},
	{"marketCap", "Market Capitalization (in billions of USD)"},
	{"debtToEquity", "Total Debt to Equity Ratio"},
	{"roic", "Return on Invested Capital (ROIC) (TTM), as a decimal"},
}

// Map returns the record keyed by wire name.
func (m FinancialMetrics) Map() map[string]interface{} {
	return map[string]interface{}{
		"price":         m.Price,
		"sma50":         m.SMA50,
		"sma200":        m.SMA200,
		"52WeekHigh":    m.WeekHigh52,
		"52WeekLow":     m.WeekLow52,
		"peRatio":       m.PERatio,
		"pegRatio":      m.PEGRatio,
		"pbRatio":       m.PBRatio,
		"epsGrowth":     m.EPSGrowth,
		"revenueGrowth": m.RevenueGrowth,
		"roe":           m.ROE,
		"rsi14":         m.RSI14,
		"macdHistogram": m.MACDHistogram,
		"forwardPE":     m.ForwardPE,
		"evEbitda":      m.EVEBITDA,
		"fcfYield":      m.FCFYield,
		"dividendYield": m.DividendYield,
		"marketCap":     m.MarketCap,
		"debtToEquity":  m.DebtToEquity,
		"roic":          m.ROIC,
	}
}
