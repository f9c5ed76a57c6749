package handlers

import (
	"net/http"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	svc AnalysisService
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(svc AnalysisService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

// Liveness handles GET /healthz.  The process is alive if it can answer.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /readyz.  Not ready until the corpus is loaded and
// the vector index answers queries.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := h.svc.Health(r.Context())
	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
