package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/errors"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// Boundary validation limits.  The ranking core applies its own, looser
// minimum; the API contract is stricter so that clients get an early,
// explicit rejection.
const (
	MinAnalyzeTextChars = 20
	MaxAnalyzeTopK      = 15
)

// AnalysisService is the application surface the handlers depend on.
// Satisfied by analysis.Service.
type AnalysisService interface {
	Analyze(ctx context.Context, req caselawtypes.AnalyzeRequest) (*caselawtypes.AnalyzeResponse, error)
	Stats(ctx context.Context) (*caselawtypes.StatsResponse, error)
	Health(ctx context.Context) caselawtypes.HealthResponse
}

// AnalyzeHandler serves the analysis endpoints.
type AnalyzeHandler struct {
	svc    AnalysisService
	logger logging.Logger
}

// NewAnalyzeHandler constructs an AnalyzeHandler.
func NewAnalyzeHandler(svc AnalysisService, logger logging.Logger) *AnalyzeHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AnalyzeHandler{svc: svc, logger: logger.Named("http.analyze")}
}

// Analyze handles POST /api/v1/analyze.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req caselawtypes.AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAppError(w, err)
		return
	}
	if err := validateAnalyzeRequest(&req); err != nil {
		writeAppError(w, err)
		return
	}

	resp, err := h.svc.Analyze(r.Context(), req)
	if err != nil {
		h.logger.Error("analyze failed", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Stats handles GET /api/v1/stats.
func (h *AnalyzeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Stats(r.Context())
	if err != nil {
		h.logger.Error("stats failed", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// validateAnalyzeRequest enforces the API contract: at least 20 characters
// of text, topK in [1,15] with 0 meaning "use the default".
func validateAnalyzeRequest(req *caselawtypes.AnalyzeRequest) error {
	if len(strings.TrimSpace(req.CaseText)) < MinAnalyzeTextChars {
		return errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("case_text must be at least %d characters", MinAnalyzeTextChars))
	}
	if req.TopK < 0 || req.TopK > MaxAnalyzeTopK {
		return errors.New(errors.ErrCodeValidation,
			fmt.Sprintf("top_k must be between 1 and %d", MaxAnalyzeTopK))
	}
	return nil
}
