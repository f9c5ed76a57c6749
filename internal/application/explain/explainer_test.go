package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NyayVandan/internal/application/retrieval"
	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
)

func queryEntitiesWith(penal, procedure, articles []string) caselaw.QueryEntities {
	e := caselaw.EmptyQueryEntities()
	for _, id := range penal {
		e.PenalSections.Add(id)
	}
	for _, id := range procedure {
		e.ProcedureSections.Add(id)
	}
	for _, id := range articles {
		e.Articles.Add(id)
	}
	return e
}

func TestExplainEntityOverlapBreakdown(t *testing.T) {
	entities := queryEntitiesWith(
		[]string{"IPC 302", "IPC 34"},
		[]string{"CrPC 437"},
		[]string{"Article 21"},
	)
	ranked := retrieval.RankedCase{
		Record: caselaw.CaseRecord{
			ID:                     "CASE_1",
			Text:                   "bail application under section 437",
			PenalSections:          "302,120B",
			ProcedureSections:      "437",
			ConstitutionalArticles: "21",
		},
		Label: "Highly Similar",
	}

	dto := NewExplainer(logging.NewNopLogger()).Explain("murder case facts", entities, ranked)

	assert.Equal(t, "CASE_1", dto.CaseID)
	assert.Equal(t, "Highly Similar", dto.SimilarityLabel)
	assert.Equal(t, []string{"IPC 302"}, dto.EntityOverlap.CommonPenal)
	assert.Equal(t, []string{"CrPC 437"}, dto.EntityOverlap.CommonProcedure)
	assert.Equal(t, []string{"Article 21"}, dto.EntityOverlap.CommonArticles)
	assert.Equal(t, []string{"IPC 34"}, dto.EntityOverlap.QueryOnlyPenal)
	assert.Equal(t, []string{"IPC 120B"}, dto.EntityOverlap.CaseOnlyPenal)
}

func TestExplainTextMentionsCommonProvisions(t *testing.T) {
	entities := queryEntitiesWith([]string{"IPC 302"}, nil, nil)
	ranked := retrieval.RankedCase{
		Record: caselaw.CaseRecord{
			ID:            "CASE_2",
			Text:          "the deceased was attacked with a knife near the market",
			PenalSections: "302",
		},
		Semantic: 0.8,
		Lexical:  0.5,
		Label:    "Moderately Similar",
	}

	dto := NewExplainer(logging.NewNopLogger()).Explain(
		"the deceased was attacked with a knife", entities, ranked)

	assert.Contains(t, dto.ExplanationText, "Both cases involve the same IPC provisions: IPC 302")
	assert.Contains(t, dto.ExplanationText, "Semantic: 80.00%")
	assert.Contains(t, dto.ExplanationText, "Lexical: 50.00%")
	assert.Equal(t, explainDisclaimer, dto.Disclaimer)
}

func TestExplainInfluentialTermsSharedOnly(t *testing.T) {
	entities := caselaw.EmptyQueryEntities()
	ranked := retrieval.RankedCase{
		Record: caselaw.CaseRecord{
			ID:   "CASE_3",
			Text: "murder weapon recovered from the river bank after investigation",
		},
	}

	dto := NewExplainer(logging.NewNopLogger()).Explain(
		"murder weapon recovered during investigation", entities, ranked)

	require.NotEmpty(t, dto.InfluentialTerms)
	for _, term := range dto.InfluentialTerms {
		assert.Positive(t, term.Weight)
		assert.Positive(t, term.QueryRelevance)
		assert.Positive(t, term.CaseRelevance)
		assert.NotContains(t, []string{"case", "court", "evidence"}, term.Term)
	}
	assert.Contains(t, dto.ExplanationText, "Key overlapping legal concepts")
}

func TestExplainNoOverlapFallsBackToScoreSentence(t *testing.T) {
	entities := caselaw.EmptyQueryEntities()
	ranked := retrieval.RankedCase{
		Record: caselaw.CaseRecord{ID: "CASE_4", Text: "completely unrelated property dispute"},
		Label:  "Low Similarity",
	}

	dto := NewExplainer(logging.NewNopLogger()).Explain("electricity theft complaint", entities, ranked)

	assert.Empty(t, dto.InfluentialTerms)
	assert.Empty(t, dto.EntityOverlap.CommonPenal)
	assert.Contains(t, dto.ExplanationText, "overall semantic similarity")
	assert.Contains(t, dto.ExplanationText, "Similarity breakdown")
}

func TestExplainAllPreservesOrder(t *testing.T) {
	entities := caselaw.EmptyQueryEntities()
	ranked := []retrieval.RankedCase{
		{Record: caselaw.CaseRecord{ID: "CASE_A", Text: "first"}},
		{Record: caselaw.CaseRecord{ID: "CASE_B", Text: "second"}},
	}

	out := NewExplainer(logging.NewNopLogger()).ExplainAll("query text", entities, ranked)

	require.Len(t, out, 2)
	assert.Equal(t, "CASE_A", out[0].CaseID)
	assert.Equal(t, "CASE_B", out[1].CaseID)
}
