// Package explain produces the per-result similarity explanations: which
// legal references overlap, which shared terms carried the lexical score, and
// a readable paragraph stitching the facets together.  Explanations describe
// similarity only; they never predict or recommend an outcome.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/NyayVandan/internal/application/retrieval"
	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

const (
	fallbackExplanation = "This case was retrieved based on overall semantic " +
		"similarity in legal context and facts."
	explainDisclaimer = "This explanation is advisory. Judicial discretion " +
		"must be exercised independently."
)

// Explainer builds explanations for ranked cases.  Stateless and safe for
// concurrent use.
type Explainer struct {
	logger logging.Logger
}

// NewExplainer constructs an Explainer.
func NewExplainer(logger logging.Logger) *Explainer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Explainer{logger: logger.Named("explain")}
}

// Explain describes why one ranked case matched the query.
func (e *Explainer) Explain(queryText string, entities caselaw.QueryEntities, ranked retrieval.RankedCase) caselawtypes.ExplanationDTO {
	rec := ranked.Record
	overlap := entityOverlap(entities, &rec)
	terms := influentialTerms(queryText, rec.Text)

	parts := []string{}
	if len(overlap.CommonPenal) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Both cases involve the same IPC provisions: %s. "+
				"This indicates similar criminal law subject matter.",
			strings.Join(overlap.CommonPenal, ", ")))
	}
	if len(overlap.CommonProcedure) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Shared procedural references under CrPC: %s. "+
				"This suggests similar procedural contexts.",
			strings.Join(overlap.CommonProcedure, ", ")))
	}
	if len(overlap.CommonArticles) > 0 {
		parts = append(parts, fmt.Sprintf(
			"Common constitutional provisions invoked: %s. "+
				"Both cases address similar fundamental rights questions.",
			strings.Join(overlap.CommonArticles, ", ")))
	}
	if len(terms) > 0 {
		top := make([]string, 0, 5)
		for _, t := range terms {
			top = append(top, t.Term)
			if len(top) == 5 {
				break
			}
		}
		parts = append(parts, fmt.Sprintf(
			"Key overlapping legal concepts: %s. "+
				"These terms appear with high relevance in both the query and this precedent.",
			strings.Join(top, ", ")))
	}
	if len(parts) == 0 {
		// Neither references nor shared terms explain the match; only the
		// embedding similarity does.
		parts = append(parts, fallbackExplanation)
	}
	parts = append(parts, fmt.Sprintf(
		"Similarity breakdown — Semantic: %.2f%%, Lexical: %.2f%%, Entity overlap: %.2f%%.",
		ranked.Semantic*100, ranked.Lexical*100, ranked.EntityOverlap*100))

	return caselawtypes.ExplanationDTO{
		CaseID:           rec.ID,
		SimilarityLabel:  ranked.Label,
		EntityOverlap:    overlap,
		InfluentialTerms: terms,
		ExplanationText:  strings.Join(parts, " "),
		Disclaimer:       explainDisclaimer,
	}
}

// ExplainAll explains every ranked case, preserving order.
func (e *Explainer) ExplainAll(queryText string, entities caselaw.QueryEntities, ranked []retrieval.RankedCase) []caselawtypes.ExplanationDTO {
	out := make([]caselawtypes.ExplanationDTO, 0, len(ranked))
	for _, rc := range ranked {
		out = append(out, e.Explain(queryText, entities, rc))
	}
	return out
}

// entityOverlap breaks the query/case reference overlap down by category.
func entityOverlap(entities caselaw.QueryEntities, rec *caselaw.CaseRecord) caselawtypes.EntityOverlapDetail {
	casePenal := caselaw.NewRefSet(rec.PenalRefs()...)
	caseProcedure := caselaw.NewRefSet(rec.ProcedureRefs()...)
	caseArticles := caselaw.NewRefSet(rec.ArticleRefs()...)

	return caselawtypes.EntityOverlapDetail{
		CommonPenal:     caselaw.Intersect(entities.PenalSections, casePenal).Sorted(),
		CommonProcedure: caselaw.Intersect(entities.ProcedureSections, caseProcedure).Sorted(),
		CommonArticles:  caselaw.Intersect(entities.Articles, caseArticles).Sorted(),
		QueryOnlyPenal:  difference(entities.PenalSections, casePenal),
		CaseOnlyPenal:   difference(casePenal, entities.PenalSections),
	}
}

// difference returns the sorted members of a not present in b.
func difference(a, b caselaw.RefSet) []string {
	out := []string{}
	for id := range a {
		if !b.Contains(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
