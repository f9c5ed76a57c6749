package client

import (
	"context"
	"net/http"

	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// Analyze submits case facts for precedent analysis.
func (c *Client) Analyze(ctx context.Context, req caselawtypes.AnalyzeRequest) (*caselawtypes.AnalyzeResponse, error) {
	var resp caselawtypes.AnalyzeResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/analyze", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stats fetches corpus composition statistics.
func (c *Client) Stats(ctx context.Context) (*caselawtypes.StatsResponse, error) {
	var resp caselawtypes.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health probes the server readiness endpoint.  A 503 readiness response is
// not an error; the decoded payload reports the initializing state.
func (c *Client) Health(ctx context.Context) (*caselawtypes.HealthResponse, error) {
	var resp caselawtypes.HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", nil, &resp)
	if err != nil {
		apiErr, ok := err.(*APIError)
		if !ok || apiErr.StatusCode != http.StatusServiceUnavailable {
			return nil, err
		}
		return &caselawtypes.HealthResponse{Status: "initializing"}, nil
	}
	return &resp, nil
}
