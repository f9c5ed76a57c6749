package ethics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/pkg/types/common"
)

func TestCheckBiasIndicatorsEmptySet(t *testing.T) {
	warnings := testAuditor().CheckBiasIndicators(nil)
	assert.NotNil(t, warnings)
	assert.Empty(t, warnings)
}

func TestCheckBiasIndicatorsBalancedSetIsClean(t *testing.T) {
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Supreme Court of India", Year: 1990, Outcome: "Acquitted", PenalSections: "302"},
		{ID: "C2", Court: "Delhi High Court", Year: 2005, Outcome: "Convicted", PenalSections: "420"},
		{ID: "C3", Court: "Bombay High Court", Year: 2018, Outcome: "Bail granted", PenalSections: "498A"},
	}

	assert.Empty(t, testAuditor().CheckBiasIndicators(results))
}

func TestCheckBiasIndicatorsCourtDominance(t *testing.T) {
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Delhi High Court", Year: 1990, Outcome: "Acquitted", PenalSections: "302"},
		{ID: "C2", Court: "Delhi High Court", Year: 2005, Outcome: "Convicted", PenalSections: "420"},
		{ID: "C3", Court: "Delhi High Court", Year: 2018, Outcome: "Bail granted", PenalSections: "34"},
	}

	warnings := testAuditor().CheckBiasIndicators(results)

	require.Len(t, warnings, 1)
	assert.Equal(t, WarningCourtDominance, warnings[0].Kind)
	assert.Equal(t, common.SeverityMedium, warnings[0].Severity)
	assert.Contains(t, warnings[0].Message, "Delhi High Court")
	assert.Equal(t, "Cross-reference with other jurisdictions", warnings[0].Recommendation)
}

func TestCheckBiasIndicatorsSkipsSmallSets(t *testing.T) {
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Delhi High Court", Outcome: "Acquitted"},
		{ID: "C2", Court: "Delhi High Court", Outcome: "Acquitted"},
	}

	assert.Empty(t, testAuditor().CheckBiasIndicators(results))
}

func TestCheckBiasIndicatorsOutcomeHomogeneityAndNarrowSpan(t *testing.T) {
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Delhi High Court", Year: 2019, Outcome: "Acquitted", PenalSections: "302"},
		{ID: "C2", Court: "Bombay High Court", Year: 2020, Outcome: "Acquitted", PenalSections: "420"},
		{ID: "C3", Court: "Madras High Court", Year: 2020, Outcome: "Acquitted", PenalSections: "34"},
	}

	warnings := testAuditor().CheckBiasIndicators(results)

	require.Len(t, warnings, 2)
	assert.Equal(t, WarningOutcomeHomogeneity, warnings[0].Kind)
	assert.Equal(t, common.SeverityHigh, warnings[0].Severity)
	assert.Contains(t, warnings[0].Message, "All 3 retrieved precedents resulted in 'Acquitted'")
	assert.Equal(t, WarningTemporalNarrowness, warnings[1].Kind)
	assert.Equal(t, common.SeverityLow, warnings[1].Severity)
	assert.Contains(t, warnings[1].Message, "only 1 year(s) (2019-2020)")
}

func TestCheckBiasIndicatorsMissingOutcomesCountAsUnknown(t *testing.T) {
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Delhi High Court", Year: 1995, Outcome: "", PenalSections: "302"},
		{ID: "C2", Court: "Bombay High Court", Year: 2005, Outcome: "", PenalSections: "420"},
		{ID: "C3", Court: "Madras High Court", Year: 2020, Outcome: "Unknown", PenalSections: "34"},
	}

	warnings := testAuditor().CheckBiasIndicators(results)

	require.Len(t, warnings, 1)
	assert.Equal(t, WarningOutcomeHomogeneity, warnings[0].Kind)
	assert.Contains(t, warnings[0].Message, "resulted in 'Unknown'")
}

func TestCheckBiasIndicatorsSectionConcentration(t *testing.T) {
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Supreme Court of India", Year: 1990, Outcome: "Acquitted", PenalSections: "302,201"},
		{ID: "C2", Court: "Delhi High Court", Year: 2005, Outcome: "Convicted", PenalSections: "302,34"},
		{ID: "C3", Court: "Bombay High Court", Year: 2018, Outcome: "Bail granted", PenalSections: "302"},
	}

	warnings := testAuditor().CheckBiasIndicators(results)

	require.Len(t, warnings, 1)
	assert.Equal(t, WarningSectionConcentration, warnings[0].Kind)
	assert.Contains(t, warnings[0].Message, "IPC Section 302 appears in all retrieved cases")
}

func TestCheckBiasIndicatorsDuplicateSectionInOneCaseDoesNotConcentrate(t *testing.T) {
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Supreme Court of India", Year: 1990, Outcome: "Acquitted", PenalSections: "302,302,302"},
		{ID: "C2", Court: "Delhi High Court", Year: 2005, Outcome: "Convicted", PenalSections: "420"},
		{ID: "C3", Court: "Bombay High Court", Year: 2018, Outcome: "Bail granted", PenalSections: "34"},
	}

	assert.Empty(t, testAuditor().CheckBiasIndicators(results))
}

func TestCheckBiasIndicatorsOrderIsStable(t *testing.T) {
	// One set that trips every rule: single court, single outcome, one-year
	// span, one section everywhere.
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Delhi High Court", Year: 2020, Outcome: "Acquitted", PenalSections: "302"},
		{ID: "C2", Court: "Delhi High Court", Year: 2020, Outcome: "Acquitted", PenalSections: "302"},
		{ID: "C3", Court: "Delhi High Court", Year: 2021, Outcome: "Acquitted", PenalSections: "302"},
	}

	warnings := testAuditor().CheckBiasIndicators(results)

	require.Len(t, warnings, 4)
	assert.Equal(t, WarningCourtDominance, warnings[0].Kind)
	assert.Equal(t, WarningOutcomeHomogeneity, warnings[1].Kind)
	assert.Equal(t, WarningTemporalNarrowness, warnings[2].Kind)
	assert.Equal(t, WarningSectionConcentration, warnings[3].Kind)
}
