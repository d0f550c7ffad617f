// Package api wires the HTTP handlers into one mux.
package api

import (
	"net/http"

	"growth_analyzer/pkg/api/config"
	"growth_analyzer/pkg/api/httputil"
	"growth_analyzer/pkg/api/panel"
	"growth_analyzer/pkg/api/stocks"
	"growth_analyzer/pkg/core/agent"
	"growth_analyzer/pkg/core/dashboard"
)

func NewRouter(db *dashboard.Dashboard, agentMgr *agent.Manager) http.Handler {
	mux := http.NewServeMux()

	stocksHandler := stocks.NewHandler(db)
	mux.HandleFunc("/api/stocks", stocksHandler.HandleStocks)
	mux.HandleFunc("/api/stocks/select", httputil.MethodGuard(stocksHandler.HandleSelect, http.MethodPost))
	mux.HandleFunc("/api/criteria", httputil.MethodGuard(stocksHandler.HandleCriteria, http.MethodGet))

	panelHandler := panel.NewHandler(db)
	mux.HandleFunc("/api/panel", httputil.MethodGuard(panelHandler.HandlePanel, http.MethodGet))
	mux.HandleFunc("/api/chart", httputil.MethodGuard(panelHandler.HandleChart, http.MethodGet))

	configHandler := config.NewHandler(agentMgr)
	mux.HandleFunc("/api/config", httputil.MethodGuard(configHandler.HandleConfig, http.MethodGet))
	mux.HandleFunc("/api/config/switch", httputil.MethodGuard(configHandler.HandleSwitch, http.MethodPost))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return httputil.RequestLog(httputil.CORS(mux))
}
