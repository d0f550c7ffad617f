package panel

import (
	"errors"
	"net/http"

	"growth_analyzer/pkg/api/httputil"
	"growth_analyzer/pkg/core/chart"
	"growth_analyzer/pkg/core/dashboard"
)

// Handler serves the quote/news side panel and the chart widget for the selection.
type Handler struct {
	Dashboard *dashboard.Dashboard
}

func NewHandler(db *dashboard.Dashboard) *Handler {
	return &Handler{Dashboard: db}
}

// HandlePanel returns the current panel, or loads one synchronously when ?ticker= is given.
// A failed load is still a 200: the panel carries its own error.
func (h *Handler) HandlePanel(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		httputil.WriteJSON(w, http.StatusOK, h.Dashboard.Panel())
		return
	}

	p, err := h.Dashboard.LoadPanel(r.Context(), ticker)
	if errors.Is(err, dashboard.ErrEmptyTicker) {
		httputil.WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		ticker = h.Dashboard.State().Selected
	}

	widget, err := chart.NewWidget(ticker)
	if errors.Is(err, chart.ErrNoSymbol) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, widget)
}
