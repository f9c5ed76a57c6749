package ethics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
)

func TestAnnotateConstitutionSortsAndSkipsUnmapped(t *testing.T) {
	entities := caselaw.EmptyQueryEntities()
	entities.Articles.Add("Article 21")
	entities.Articles.Add("Article 999")

	results := []caselaw.CaseRecord{
		{ID: "C1", ConstitutionalArticles: "14,32"},
		{ID: "C2", ConstitutionalArticles: "21"},
	}

	notes := testAuditor().AnnotateConstitution(results, entities)

	require.Len(t, notes, 3)
	assert.Equal(t, "Article 14", notes[0].Article)
	assert.Equal(t, "Article 21", notes[1].Article)
	assert.Equal(t, "Article 32", notes[2].Article)
	assert.Equal(t, "Equality before law / Equal protection of laws", notes[0].Principle)
	assert.Contains(t, notes[1].Note, "Right to life and personal liberty")
}

func TestAnnotateConstitutionNoReferences(t *testing.T) {
	notes := testAuditor().AnnotateConstitution(nil, caselaw.EmptyQueryEntities())
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestReviewCleanSet(t *testing.T) {
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Supreme Court of India", Year: 1990, Outcome: "Acquitted", PenalSections: "302"},
		{ID: "C2", Court: "Delhi High Court", Year: 2005, Outcome: "Convicted", PenalSections: "420"},
		{ID: "C3", Court: "Bombay High Court", Year: 2018, Outcome: "Bail granted", PenalSections: "34"},
	}

	review, err := testAuditor().Review(context.Background(), results, caselaw.EmptyQueryEntities())

	require.NoError(t, err)
	assert.False(t, review.HasEthicalConcerns)
	assert.Equal(t, summaryClean, review.ReviewSummary)
	assert.Equal(t, reviewDisclaimer, review.Disclaimer)
	assert.Empty(t, review.BiasWarnings)
	assert.Equal(t, 1.0, review.DiversityScore.OverallScore)
}

func TestReviewFlagsHighSeverityWarning(t *testing.T) {
	// Court and temporal diversity keep the overall score above threshold;
	// the uniform outcome alone must trip the concern flag.
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Supreme Court of India", Year: 1990, Outcome: "Acquitted"},
		{ID: "C2", Court: "Delhi High Court", Year: 2005, Outcome: "Acquitted"},
		{ID: "C3", Court: "Bombay High Court", Year: 2018, Outcome: "Acquitted"},
	}

	review, err := testAuditor().Review(context.Background(), results, caselaw.EmptyQueryEntities())

	require.NoError(t, err)
	assert.Greater(t, review.DiversityScore.OverallScore, 0.3)
	assert.True(t, review.HasEthicalConcerns)
	assert.Equal(t, summaryConcerns, review.ReviewSummary)
	require.NotEmpty(t, review.BiasWarnings)
	assert.Equal(t, WarningOutcomeHomogeneity, review.BiasWarnings[0].Kind)
}

func TestReviewFlagsLowDiversityWithoutHighSeverity(t *testing.T) {
	// One court over four undated cases drags the score under the threshold
	// while only a MEDIUM dominance warning fires.
	results := []caselaw.CaseRecord{
		{ID: "C1", Court: "Delhi High Court", Outcome: "Acquitted"},
		{ID: "C2", Court: "Delhi High Court", Outcome: "Acquitted"},
		{ID: "C3", Court: "Delhi High Court", Outcome: "Convicted"},
		{ID: "C4", Court: "Delhi High Court", Outcome: "Convicted"},
	}

	review, err := testAuditor().Review(context.Background(), results, caselaw.EmptyQueryEntities())

	require.NoError(t, err)
	require.Len(t, review.BiasWarnings, 1)
	assert.Equal(t, WarningCourtDominance, review.BiasWarnings[0].Kind)
	assert.Less(t, review.DiversityScore.OverallScore, 0.3)
	assert.True(t, review.HasEthicalConcerns)
}

func TestReviewEmptyResultsHasConcerns(t *testing.T) {
	review, err := testAuditor().Review(context.Background(), nil, caselaw.EmptyQueryEntities())

	require.NoError(t, err)
	assert.True(t, review.HasEthicalConcerns)
	assert.Empty(t, review.BiasWarnings)
	assert.Empty(t, review.ConstitutionalAlignment)
}

func TestReviewCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testAuditor().Review(ctx, nil, caselaw.EmptyQueryEntities())
	assert.ErrorIs(t, err, context.Canceled)
}
