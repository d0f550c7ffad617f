package stocks

import (
	"errors"
	"net/http"

	"growth_analyzer/pkg/api/httputil"
	"growth_analyzer/pkg/core/dashboard"
	"growth_analyzer/pkg/core/scoring"
)

type TickerRequest struct {
	Ticker string `json:"ticker"`
}

type CriterionResponse struct {
	Key         scoring.Criterion `json:"key"`
	Name        string            `json:"name"`
	Weight      float64           `json:"weight"`
	Description string            `json:"description"`
}

// Handler serves the working set endpoints.
type Handler struct {
	Dashboard *dashboard.Dashboard
}

func NewHandler(db *dashboard.Dashboard) *Handler {
	return &Handler{Dashboard: db}
}

// HandleStocks returns the dashboard snapshot on GET and adds a ticker on POST.
func (h *Handler) HandleStocks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httputil.WriteJSON(w, http.StatusOK, h.Dashboard.State())
	case http.MethodPost:
		h.handleAdd(w, r)
	default:
		httputil.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req TickerRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Dashboard.AddTicker(r.Context(), req.Ticker)
	switch {
	case errors.Is(err, dashboard.ErrEmptyTicker):
		httputil.WriteError(w, http.StatusBadRequest, "Ticker is required")
	case err != nil:
		httputil.WriteError(w, http.StatusBadGateway, dashboard.UserMessage(err))
	default:
		httputil.WriteJSON(w, http.StatusOK, res)
	}
}

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req TickerRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Dashboard.Select(req.Ticker); err != nil {
		httputil.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.Dashboard.State())
}

func (h *Handler) HandleCriteria(w http.ResponseWriter, r *http.Request) {
	out := make([]CriterionResponse, 0, len(scoring.Criteria))
	for _, c := range scoring.Criteria {
		out = append(out, CriterionResponse{Key: c.Key, Name: c.Name, Weight: c.Weight, Description: c.Description})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
