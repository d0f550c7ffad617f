// Package dashboard owns the working set of analyzed tickers, the current selection
// and the quote/news side panel, and sequences the oracle calls behind them.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"growth_analyzer/pkg/core/logger"
	"growth_analyzer/pkg/core/metrics"
	"growth_analyzer/pkg/core/news"
	"growth_analyzer/pkg/core/scoring"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds one add-ticker sequence or one panel refresh.
const DefaultTimeout = 120 * time.Second

type MetricsFetcher interface {
	Fetch(ctx context.Context, ticker string) (metrics.FinancialMetrics, error)
}

type Analyzer interface {
	Analyze(ctx context.Context, ticker string, m metrics.FinancialMetrics) (*scoring.StockAnalysis, error)
}

type NewsFetcher interface {
	Fetch(ctx context.Context, ticker string) ([]news.Article, error)
}

// State is a point-in-time copy of the dashboard. Stocks are newest first.
type State struct {
	Stocks   []*scoring.StockAnalysis `json:"stocks"`
	Selected string                   `json:"selected,omitempty"`
	Loading  bool                     `json:"loading"`
	Error    string                   `json:"error,omitempty"`
}

// AddResult reports the outcome of AddTicker. Reselected is true when the ticker was
// already in the working set and no oracle call was made.
type AddResult struct {
	Analysis   *scoring.StockAnalysis `json:"analysis"`
	Reselected bool                   `json:"reselected"`
}

type Option func(*Dashboard)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(db *Dashboard) {
		if d > 0 {
			db.timeout = d
		}
	}
}

// WithoutAutoPanel stops selection changes from starting a background panel refresh.
func WithoutAutoPanel() Option {
	return func(db *Dashboard) { db.autoPanel = false }
}

type Dashboard struct {
	metrics  MetricsFetcher
	analyzer Analyzer
	news     NewsFetcher

	timeout   time.Duration
	autoPanel bool

	mu       sync.Mutex
	stocks   []*scoring.StockAnalysis
	selected string
	inflight int
	errMsg   string
	panel    Panel

	group singleflight.Group
	bg    sync.WaitGroup
	log   *logrus.Entry
}

func New(m MetricsFetcher, a Analyzer, n NewsFetcher, opts ...Option) *Dashboard {
	db := &Dashboard{
		metrics:   m,
		analyzer:  a,
		news:      n,
		timeout:   DefaultTimeout,
		autoPanel: true,
		log:       logger.Component("dashboard"),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// NormalizeTicker trims surrounding whitespace and upper-cases the symbol.
func NormalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (db *Dashboard) State() State {
	db.mu.Lock()
	defer db.mu.Unlock()

	stocks := make([]*scoring.StockAnalysis, len(db.stocks))
	copy(stocks, db.stocks)
	return State{
		Stocks:   stocks,
		Selected: db.selected,
		Loading:  db.inflight > 0,
		Error:    db.errMsg,
	}
}

// Lookup returns the analysis for ticker if it is in the working set.
func (db *Dashboard) Lookup(ticker string) (*scoring.StockAnalysis, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.findLocked(NormalizeTicker(ticker))
}

func (db *Dashboard) findLocked(ticker string) (*scoring.StockAnalysis, bool) {
	for _, s := range db.stocks {
		if s.Ticker == ticker {
			return s, true
		}
	}
	return nil, false
}

// AddTicker analyzes a new ticker and puts it at the front of the working set, or re-selects it
// when it is already there. On failure the working set is left unchanged and the user-facing
// error is recorded in State.
func (db *Dashboard) AddTicker(ctx context.Context, raw string) (*AddResult, error) {
	ticker := NormalizeTicker(raw)
	if ticker == "" {
		return nil, ErrEmptyTicker
	}

	db.mu.Lock()
	if existing, ok := db.findLocked(ticker); ok {
		db.errMsg = ""
		changed := db.selectLocked(ticker)
		// Re-adding the selected ticker retries a failed panel.
		retryPanel := !changed && db.panel.Ticker == ticker && db.panel.Error != ""
		db.mu.Unlock()
		if changed || retryPanel {
			db.refreshPanel(ticker)
		}
		db.log.WithField("ticker", ticker).Debug("Ticker already analyzed, re-selecting")
		return &AddResult{Analysis: existing, Reselected: true}, nil
	}
	db.inflight++
	db.errMsg = ""
	db.mu.Unlock()

	// The flight is shared by every caller adding this ticker, so one caller going away
	// must not cancel it. analyze still applies the dashboard timeout.
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := db.group.Do(ticker, func() (interface{}, error) {
		return db.analyze(flightCtx, ticker)
	})

	db.mu.Lock()
	db.inflight--
	if err != nil {
		db.errMsg = UserMessage(err)
		db.mu.Unlock()
		db.log.WithError(err).WithField("ticker", ticker).Error("Analysis failed")
		return nil, err
	}

	analysis := v.(*scoring.StockAnalysis)
	if current, ok := db.findLocked(ticker); ok {
		// A shared flight already inserted it.
		analysis = current
	} else {
		db.stocks = append([]*scoring.StockAnalysis{analysis}, db.stocks...)
	}
	changed := db.selectLocked(ticker)
	db.mu.Unlock()

	if changed {
		db.refreshPanel(ticker)
	}
	db.log.WithFields(logrus.Fields{
		"ticker": ticker,
		"score":  analysis.WeightedScore,
		"shared": shared,
	}).Info("Ticker added")
	return &AddResult{Analysis: analysis}, nil
}

func (db *Dashboard) analyze(ctx context.Context, ticker string) (*scoring.StockAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	m, err := db.metrics.Fetch(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch financial metrics: %w", err)
	}
	analysis, err := db.analyzer.Analyze(ctx, ticker, m)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", ticker, err)
	}
	return analysis, nil
}

// Select makes ticker the current selection. The ticker must already be in the working set.
func (db *Dashboard) Select(raw string) error {
	ticker := NormalizeTicker(raw)

	db.mu.Lock()
	if _, ok := db.findLocked(ticker); !ok {
		db.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownTicker, ticker)
	}
	changed := db.selectLocked(ticker)
	db.mu.Unlock()

	if changed {
		db.refreshPanel(ticker)
	}
	return nil
}

// selectLocked reports whether the selection moved to a different ticker.
func (db *Dashboard) selectLocked(ticker string) bool {
	if db.selected == ticker {
		return false
	}
	db.selected = ticker
	return true
}

func (db *Dashboard) SetError(msg string) {
	db.mu.Lock()
	db.errMsg = msg
	db.mu.Unlock()
}

func (db *Dashboard) ClearError() {
	db.SetError("")
}

// Wait blocks until all background panel refreshes have finished.
func (db *Dashboard) Wait() {
	db.bg.Wait()
}

// Timeout is the deadline applied to each oracle sequence.
func (db *Dashboard) Timeout() time.Duration {
	return db.timeout
}
