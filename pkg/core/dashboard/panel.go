package dashboard

import (
	"context"

	"growth_analyzer/pkg/core/metrics"
	"growth_analyzer/pkg/core/news"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Panel is the quote/news side panel for the selected ticker. Its error is independent
// of the dashboard's main error.
type Panel struct {
	Ticker     string                    `json:"ticker,omitempty"`
	Metrics    *metrics.FinancialMetrics `json:"metrics,omitempty"`
	News       []news.Article            `json:"news"`
	Loading    bool                      `json:"loading"`
	Error      string                    `json:"error,omitempty"`
	Generation uint64                    `json:"generation"`
}

func (db *Dashboard) Panel() Panel {
	db.mu.Lock()
	defer db.mu.Unlock()

	p := db.panel
	p.News = append([]news.Article(nil), db.panel.News...)
	if p.News == nil {
		p.News = []news.Article{}
	}
	return p
}

// refreshPanel starts a background load for ticker. Results from a refresh that has been
// superseded by a newer selection are dropped.
func (db *Dashboard) refreshPanel(ticker string) {
	if !db.autoPanel {
		return
	}
	gen := db.beginPanel(ticker)

	db.bg.Add(1)
	go func() {
		defer db.bg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), db.timeout)
		defer cancel()

		m, articles, err := db.fetchPanel(ctx, ticker)
		db.finishPanel(gen, m, articles, err)
	}()
}

// LoadPanel loads the panel for ticker synchronously and makes it the current panel.
func (db *Dashboard) LoadPanel(ctx context.Context, raw string) (Panel, error) {
	ticker := NormalizeTicker(raw)
	if ticker == "" {
		return Panel{}, ErrEmptyTicker
	}
	gen := db.beginPanel(ticker)

	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()

	m, articles, err := db.fetchPanel(ctx, ticker)
	db.finishPanel(gen, m, articles, err)
	return db.Panel(), err
}

func (db *Dashboard) beginPanel(ticker string) uint64 {
	db.mu.Lock()
	defer db.mu.Unlock()

	gen := db.panel.Generation + 1
	db.panel = Panel{Ticker: ticker, Loading: true, Generation: gen}
	return gen
}

func (db *Dashboard) fetchPanel(ctx context.Context, ticker string) (*metrics.FinancialMetrics, []news.Article, error) {
	var (
		m        metrics.FinancialMetrics
		articles []news.Article
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		m, err = db.metrics.Fetch(gctx, ticker)
		return err
	})
	g.Go(func() error {
		var err error
		articles, err = db.news.Fetch(gctx, ticker)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return &m, articles, nil
}

func (db *Dashboard) finishPanel(gen uint64, m *metrics.FinancialMetrics, articles []news.Article, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.panel.Generation != gen {
		db.log.WithFields(logrus.Fields{
			"ticker":     db.panel.Ticker,
			"generation": gen,
			"current":    db.panel.Generation,
		}).Debug("Discarding stale panel result")
		return
	}
	db.panel.Loading = false
	if err != nil {
		db.panel.Error = UserMessage(err)
		db.log.WithError(err).WithField("ticker", db.panel.Ticker).Warn("Panel refresh failed")
		return
	}
	db.panel.Metrics = m
	db.panel.News = articles
}
