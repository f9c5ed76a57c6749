package ethics

import (
	"fmt"
	"sort"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/pkg/types/common"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// Bias warning kinds.  CheckBiasIndicators emits warnings in this order.
const (
	WarningCourtDominance       = "COURT_DOMINANCE"
	WarningOutcomeHomogeneity   = "OUTCOME_HOMOGENEITY"
	WarningTemporalNarrowness   = "TEMPORAL_NARROWNESS"
	WarningSectionConcentration = "SECTION_CONCENTRATION"
)

// minResultsForBiasCheck is the smallest set the dominance, homogeneity and
// concentration rules fire on; smaller sets carry too little signal.
const minResultsForBiasCheck = 3

// biasRule inspects the result set and returns a warning, or nil when the
// rule does not apply.
type biasRule func(a *Auditor, results []caselaw.CaseRecord) *caselawtypes.BiasWarningDTO

// biasRules is the fixed evaluation order.
var biasRules = []biasRule{
	checkCourtDominance,
	checkOutcomeHomogeneity,
	checkTemporalNarrowness,
	checkSectionConcentration,
}

// CheckBiasIndicators runs every bias rule over the result set and collects
// the warnings that fired, in rule order.  The returned slice is never nil.
func (a *Auditor) CheckBiasIndicators(results []caselaw.CaseRecord) []caselawtypes.BiasWarningDTO {
	warnings := []caselawtypes.BiasWarningDTO{}
	if len(results) == 0 {
		return warnings
	}
	for _, rule := range biasRules {
		if w := rule(a, results); w != nil {
			warnings = append(warnings, *w)
		}
	}
	return warnings
}

func checkCourtDominance(a *Auditor, results []caselaw.CaseRecord) *caselawtypes.BiasWarningDTO {
	n := len(results)
	if n < minResultsForBiasCheck {
		return nil
	}
	counts := map[string]int{}
	for _, r := range results {
		counts[courtOf(r)]++
	}
	if len(counts) >= a.cfg.MinCourtDiversity {
		return nil
	}
	dominant := dominantKey(counts)
	return &caselawtypes.BiasWarningDTO{
		Kind:     WarningCourtDominance,
		Severity: common.SeverityMedium,
		Message: fmt.Sprintf("All/most precedents are from %s. "+
			"Consider reviewing judgments from other High Courts or the Supreme Court "+
			"for a more balanced perspective.", dominant),
		Recommendation: "Cross-reference with other jurisdictions",
	}
}

func checkOutcomeHomogeneity(a *Auditor, results []caselaw.CaseRecord) *caselawtypes.BiasWarningDTO {
	n := len(results)
	if n < minResultsForBiasCheck {
		return nil
	}
	first := outcomeOf(results[0])
	for _, r := range results[1:] {
		if outcomeOf(r) != first {
			return nil
		}
	}
	return &caselawtypes.BiasWarningDTO{
		Kind:     WarningOutcomeHomogeneity,
		Severity: common.SeverityHigh,
		Message: fmt.Sprintf("All %d retrieved precedents resulted in '%s'. "+
			"This may indicate confirmation bias in retrieval. "+
			"Judicial discretion should account for contrary precedents.", n, first),
		Recommendation: "Actively seek contrary / distinguishing precedents",
	}
}

func checkTemporalNarrowness(a *Auditor, results []caselaw.CaseRecord) *caselawtypes.BiasWarningDTO {
	years := datedYears(results)
	if len(years) < 2 {
		return nil
	}
	lo, hi := minInt(years), maxInt(years)
	span := hi - lo
	if span >= a.cfg.MinYearRange {
		return nil
	}
	return &caselawtypes.BiasWarningDTO{
		Kind:     WarningTemporalNarrowness,
		Severity: common.SeverityLow,
		Message: fmt.Sprintf("Retrieved cases span only %d year(s) (%d-%d). "+
			"Older landmark precedents may provide additional legal grounding.", span, lo, hi),
		Recommendation: "Consider expanding search to include landmark older cases",
	}
}

func checkSectionConcentration(a *Auditor, results []caselaw.CaseRecord) *caselawtypes.BiasWarningDTO {
	n := len(results)
	if n < minResultsForBiasCheck {
		return nil
	}
	// Count the records each penal section appears in, not raw mentions, so a
	// section repeated inside one record cannot fake full concentration.
	perSection := map[string]int{}
	for _, r := range results {
		seen := map[string]struct{}{}
		for _, s := range caselaw.SplitSections(r.PenalSections, "") {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			perSection[s]++
		}
	}
	universal := []string{}
	for s, c := range perSection {
		if c == n {
			universal = append(universal, s)
		}
	}
	if len(universal) == 0 {
		return nil
	}
	sort.Strings(universal)
	return &caselawtypes.BiasWarningDTO{
		Kind:     WarningSectionConcentration,
		Severity: common.SeverityLow,
		Message: fmt.Sprintf("IPC Section %s appears in all retrieved cases. "+
			"Consider whether related provisions or alternative charges are relevant.", universal[0]),
		Recommendation: "Review if allied provisions apply",
	}
}

// dominantKey returns the highest-count key, breaking count ties
// alphabetically so repeated audits of the same set report the same court.
func dominantKey(counts map[string]int) string {
	best, bestCount := "", -1
	for k, c := range counts {
		if c > bestCount || (c == bestCount && k < best) {
			best, bestCount = k, c
		}
	}
	return best
}
