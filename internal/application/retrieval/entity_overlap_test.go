package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
)

func TestEntityOverlap_Flat(t *testing.T) {
	scorer := NewEntityOverlapScorer(OverlapModeFlat)

	query := caselaw.QueryEntities{
		PenalSections:     caselaw.NewRefSet("IPC 302", "IPC 34"),
		ProcedureSections: caselaw.NewRefSet("CrPC 437"),
		Articles:          caselaw.RefSet{},
		Acts:              caselaw.RefSet{},
	}
	rec := &caselaw.CaseRecord{PenalSections: "302,201"}

	// query {IPC 302, IPC 34, CrPC 437}, case {IPC 302, IPC 201}:
	// intersection 1, union 4.
	assert.InDelta(t, 0.25, scorer.Score(query, rec), 1e-9)
}

func TestEntityOverlap_IdenticalSetsScoreOne(t *testing.T) {
	scorer := NewEntityOverlapScorer(OverlapModeFlat)

	query := caselaw.QueryEntities{
		PenalSections:     caselaw.NewRefSet("IPC 302"),
		ProcedureSections: caselaw.RefSet{},
		Articles:          caselaw.NewRefSet("Article 21"),
		Acts:              caselaw.RefSet{},
	}
	rec := &caselaw.CaseRecord{PenalSections: "302", ConstitutionalArticles: "21"}

	assert.InDelta(t, 1.0, scorer.Score(query, rec), 1e-9)
}

func TestEntityOverlap_BothEmptyScoresZero(t *testing.T) {
	scorer := NewEntityOverlapScorer(OverlapModeFlat)
	assert.Zero(t, scorer.Score(caselaw.EmptyQueryEntities(), &caselaw.CaseRecord{}))
}

func TestEntityOverlap_ActsExcluded(t *testing.T) {
	scorer := NewEntityOverlapScorer(OverlapModeFlat)

	query := caselaw.EmptyQueryEntities()
	query.Acts.Add("POCSO Act")
	rec := &caselaw.CaseRecord{PenalSections: "302"}

	assert.Zero(t, scorer.Score(query, rec))
}

func TestEntityOverlap_PerCategory(t *testing.T) {
	scorer := NewEntityOverlapScorer(OverlapModePerCategory)

	query := caselaw.QueryEntities{
		PenalSections:     caselaw.NewRefSet("IPC 302"),
		ProcedureSections: caselaw.RefSet{},
		Articles:          caselaw.RefSet{},
		Acts:              caselaw.RefSet{},
	}
	rec := &caselaw.CaseRecord{PenalSections: "302"}

	// Penal matches exactly, the other two categories are empty on
	// both sides: (1 + 0 + 0) / 3.
	assert.InDelta(t, 1.0/3.0, scorer.Score(query, rec), 1e-9)
}

func TestNewEntityOverlapScorer_UnknownModeFallsBackToFlat(t *testing.T) {
	scorer := NewEntityOverlapScorer("bogus")

	query := caselaw.EmptyQueryEntities()
	query.PenalSections.Add("IPC 302")
	rec := &caselaw.CaseRecord{PenalSections: "302"}

	assert.InDelta(t, 1.0, scorer.Score(query, rec), 1e-9)
}
