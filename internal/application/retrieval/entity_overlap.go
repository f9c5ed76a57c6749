package retrieval

import (
	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
)

// Entity-overlap scoring modes.
const (
	// OverlapModeFlat scores one Jaccard over the merged reference set
	// of all section categories.
	OverlapModeFlat = "flat"

	// OverlapModePerCategory averages the per-category Jaccard scores
	// so a strong match in one category cannot mask total disagreement
	// in another.
	OverlapModePerCategory = "per_category"
)

// EntityOverlapScorer computes the entity-overlap signal between the
// query's extracted references and a case record's stored sections.
// Acts are excluded on both sides: case records carry no act field to
// match against.
type EntityOverlapScorer struct {
	mode string
}

// NewEntityOverlapScorer builds a scorer; an unrecognized mode falls
// back to flat.
func NewEntityOverlapScorer(mode string) *EntityOverlapScorer {
	if mode != OverlapModePerCategory {
		mode = OverlapModeFlat
	}
	return &EntityOverlapScorer{mode: mode}
}

// Score returns the overlap in [0,1]. Two empty sides score 0.0, not
// 1.0: absence of references is no evidence of similarity.
func (s *EntityOverlapScorer) Score(q caselaw.QueryEntities, rec *caselaw.CaseRecord) float64 {
	if s.mode == OverlapModePerCategory {
		penal := jaccard(q.PenalSections, caselaw.NewRefSet(rec.PenalRefs()...))
		procedure := jaccard(q.ProcedureSections, caselaw.NewRefSet(rec.ProcedureRefs()...))
		articles := jaccard(q.Articles, caselaw.NewRefSet(rec.ArticleRefs()...))
		return (penal + procedure + articles) / 3
	}

	caseRefs := caselaw.NewRefSet(rec.PenalRefs()...)
	for _, ref := range rec.ProcedureRefs() {
		caseRefs.Add(ref)
	}
	for _, ref := range rec.ArticleRefs() {
		caseRefs.Add(ref)
	}
	return jaccard(q.SectionRefs(), caseRefs)
}

// jaccard computes |a∩b| / |a∪b|, with 0.0 when both sets are empty.
func jaccard(a, b caselaw.RefSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}
	inter := len(caselaw.Intersect(a, b))
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}
