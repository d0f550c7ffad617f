package config

import (
	"net/http"

	"growth_analyzer/pkg/api/httputil"
	"growth_analyzer/pkg/core/agent"
)

type Response struct {
	ActiveProvider string   `json:"active_provider"`
	Available      []string `json:"available"`
}

type SwitchRequest struct {
	Provider string `json:"provider"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	AgentMgr *agent.Manager
}

// NewHandler creates a new config handler
func NewHandler(agentMgr *agent.Manager) *Handler {
	return &Handler{
		AgentMgr: agentMgr,
	}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, Response{
		ActiveProvider: h.AgentMgr.GetActiveProvider(),
		Available:      h.AgentMgr.Available(),
	})
}

func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	var req SwitchRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.AgentMgr.SetGlobalProvider(req.Provider); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.HandleConfig(w, r)
}
