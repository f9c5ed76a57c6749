// Package common holds shared scalar types used across NyayVandan's API
// surface and internal layers.
package common

import (
	"time"

	"github.com/google/uuid"
)

// QueryID identifies a single analyze request end to end: logs, metrics,
// cache keys, and audit events all carry it.
type QueryID string

// GenerateQueryID returns a fresh UUIDv4-based QueryID.
func GenerateQueryID() QueryID {
	return QueryID("q-" + uuid.NewString())
}

// Severity grades a bias warning.  The set is closed; rule evaluators choose
// their severity at definition time, never at runtime.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// ErrorDetail is the structured error body returned by the API layer.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// BuildInfo holds version information injected at build time via ldflags.
type BuildInfo struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildDate string    `json:"build_date"`
	StartedAt time.Time `json:"started_at"`
}
