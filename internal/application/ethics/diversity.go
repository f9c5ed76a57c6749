// Package ethics audits a ranked precedent set for diversity and bias before
// it reaches a reviewer.  Everything here is advisory: findings are surfaced
// as flags and notes, and nothing in this package ever feeds back into
// ranking.
package ethics

import (
	"fmt"
	"math"
	"sort"

	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// unknownValue stands in for a missing court or outcome so that absent
// metadata still counts as exactly one distinct value.
const unknownValue = "Unknown"

// Auditor evaluates retrieved precedent sets.  All methods are pure over the
// input slice; an Auditor is safe for concurrent use.
type Auditor struct {
	cfg    config.EthicsConfig
	logger logging.Logger
}

// NewAuditor builds an Auditor from the audit constants.
func NewAuditor(cfg config.EthicsConfig, logger logging.Logger) *Auditor {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Auditor{cfg: cfg, logger: logger.Named("ethics")}
}

// ComputeDiversityScore measures how varied a precedent set is along three
// axes: distinct courts, judgment-year spread, and distinct outcomes.  An
// empty set scores zero on every axis.
func (a *Auditor) ComputeDiversityScore(results []caselaw.CaseRecord) caselawtypes.DiversityReportDTO {
	if len(results) == 0 {
		return caselawtypes.DiversityReportDTO{Details: caselawtypes.DiversityDetails{
			CourtsRepresented: []string{},
			YearRange:         "N/A",
			OutcomesFound:     []string{},
		}}
	}

	n := len(results)

	courts := distinctValues(results, courtOf)
	courtDiversity := float64(len(courts)) / float64(n)

	years := datedYears(results)
	temporalDiversity := 0.0
	yearRange := "N/A"
	if len(years) >= 2 {
		span := maxInt(years) - minInt(years)
		// A ten-year spread or wider counts as fully diverse.
		temporalDiversity = math.Min(float64(span)/10.0, 1.0)
	}
	if len(years) > 0 {
		yearRange = fmt.Sprintf("%d-%d", minInt(years), maxInt(years))
	}

	outcomes := distinctValues(results, outcomeOf)
	outcomeDiversity := float64(len(outcomes)) / float64(n)

	overall := a.cfg.CourtWeight*courtDiversity +
		a.cfg.TemporalWeight*temporalDiversity +
		a.cfg.OutcomeWeight*outcomeDiversity

	return caselawtypes.DiversityReportDTO{
		OverallScore:      round4(overall),
		CourtDiversity:    round4(courtDiversity),
		TemporalDiversity: round4(temporalDiversity),
		OutcomeDiversity:  round4(outcomeDiversity),
		Details: caselawtypes.DiversityDetails{
			CourtsRepresented: courts,
			YearRange:         yearRange,
			OutcomesFound:     outcomes,
			TotalCases:        n,
		},
	}
}

func courtOf(r caselaw.CaseRecord) string {
	if r.Court == "" {
		return unknownValue
	}
	return r.Court
}

func outcomeOf(r caselaw.CaseRecord) string {
	if r.Outcome == "" {
		return unknownValue
	}
	return r.Outcome
}

// distinctValues returns the sorted distinct values of one record attribute.
func distinctValues(results []caselaw.CaseRecord, attr func(caselaw.CaseRecord) string) []string {
	seen := map[string]struct{}{}
	for _, r := range results {
		seen[attr(r)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// datedYears returns the judgment years of records with a known year.
func datedYears(results []caselaw.CaseRecord) []int {
	years := make([]int, 0, len(results))
	for _, r := range results {
		if r.Year > 0 {
			years = append(years, r.Year)
		}
	}
	return years
}

func minInt(vals []int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxInt(vals []int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
