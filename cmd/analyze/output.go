package main

import (
	"fmt"
	"io"

	"growth_analyzer/pkg/core/news"
	"growth_analyzer/pkg/core/scoring"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var bandColors = map[string]*color.Color{
	scoring.BandExcellent: color.New(color.FgGreen, color.Bold),
	scoring.BandGood:      color.New(color.FgHiGreen),
	scoring.BandFair:      color.New(color.FgYellow),
	scoring.BandPoor:      color.New(color.FgRed),
}

func colorScore(score float64) string {
	text := fmt.Sprintf("%.1f", score)
	if c, ok := bandColors[scoring.Band(score)]; ok {
		return c.Sprint(text)
	}
	return text
}

func renderAnalysis(w io.Writer, a *scoring.StockAnalysis) error {
	_, _ = fmt.Fprintf(w, "\n%s  overall %s (%s)\n", color.New(color.Bold).Sprint(a.Ticker), colorScore(a.WeightedScore), scoring.Band(a.WeightedScore))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Criterion", "Weight", "Score", "Justification"})

	var data [][]string
	for _, c := range scoring.Criteria {
		s, ok := a.Scores[c.Key]
		score := "-"
		if ok {
			score = colorScore(s.Score)
		}
		data = append(data, []string{c.Name, fmt.Sprintf("%.0f%%", c.Weight), score, s.Justification})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// renderSummary prints one row per ticker, newest first.
func renderSummary(w io.Writer, stocks []*scoring.StockAnalysis) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Ticker", "Score", "Band"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range stocks {
		data = append(data, []string{s.Ticker, colorScore(s.WeightedScore), scoring.Band(s.WeightedScore)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func renderCriteria(w io.Writer, table []scoring.CriterionSpec) error {
	tbl := tablewriter.NewWriter(w)
	tbl.Header([]string{"Criterion", "Weight", "Description"})

	var data [][]string
	for _, c := range table {
		data = append(data, []string{c.Name, fmt.Sprintf("%.0f%%", c.Weight), c.Description})
	}
	if err := tbl.Bulk(data); err != nil {
		return err
	}
	return tbl.Render()
}

func renderNews(w io.Writer, ticker string, articles []news.Article) error {
	if len(articles) == 0 {
		_, err := fmt.Fprintf(w, "No news articles found for %s.\n", ticker)
		return err
	}
	for i, a := range articles {
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, a.Title, a.URI); err != nil {
			return err
		}
	}
	return nil
}
