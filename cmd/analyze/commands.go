package main

import (
	"context"
	"fmt"
	"os"

	"growth_analyzer/pkg/core/dashboard"
	"growth_analyzer/pkg/core/scoring"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score TICKER...",
	Short: "Fetch metrics and score one or more tickers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices()
		if err != nil {
			return err
		}
		db := svc.Dashboard(dashboard.WithoutAutoPanel())

		var failed int
		for _, arg := range args {
			res, err := db.AddTicker(cmd.Context(), arg)
			if err != nil {
				failed++
				_, _ = fmt.Fprintf(os.Stderr, "%s: %s\n", dashboard.NormalizeTicker(arg), dashboard.UserMessage(err))
				continue
			}
			if res.Reselected {
				continue
			}
			if err := renderAnalysis(cmd.OutOrStdout(), res.Analysis); err != nil {
				return err
			}
		}

		if st := db.State(); len(st.Stocks) > 1 {
			if err := renderSummary(cmd.OutOrStdout(), st.Stocks); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d tickers failed", failed, len(args))
		}
		return nil
	},
}

var newsCmd = &cobra.Command{
	Use:   "news TICKER",
	Short: "List recent news citations for a ticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadServices()
		if err != nil {
			return err
		}
		ticker := dashboard.NormalizeTicker(args[0])
		if ticker == "" {
			return dashboard.ErrEmptyTicker
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), svc.Config.Timeout())
		defer cancel()
		articles, err := svc.News.Fetch(ctx, ticker)
		if err != nil {
			return fmt.Errorf("%s", dashboard.UserMessage(err))
		}
		return renderNews(cmd.OutOrStdout(), ticker, articles)
	},
}

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Show the scoring criteria and their weights",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return renderCriteria(cmd.OutOrStdout(), scoring.Criteria)
	},
}
