package explain

import (
	"math"
	"sort"

	"github.com/turtacn/NyayVandan/internal/intelligence/lexical"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// maxPairTerms bounds the vocabulary of the per-explanation vectorizer; two
// documents never need the full corpus vocabulary.
const maxPairTerms = 500

// topInfluentialTerms caps how many shared terms an explanation surfaces.
const topInfluentialTerms = 8

// legalNoiseWords extends the lexical stop list with words that appear in
// virtually every judgment and therefore explain nothing.
var legalNoiseWords = map[string]struct{}{
	"case": {}, "court": {}, "accused": {}, "prosecution": {},
	"defense": {}, "defence": {}, "argued": {}, "presented": {},
	"evidence": {}, "submitted": {}, "examined": {}, "order": {},
	"judgment": {}, "stated": {}, "held": {}, "observed": {},
}

// influentialTerms ranks the terms shared by query and case by the product
// of their TF-IDF weights in a two-document index: a term must carry weight
// in both texts to surface at all.
func influentialTerms(queryText, caseText string) []caselawtypes.InfluentialTerm {
	ix := lexical.NewIndex(maxPairTerms)
	ix.Build([]string{queryText, caseText})

	queryWeights := ix.DocTermWeights(0)
	caseWeights := ix.DocTermWeights(1)

	terms := []caselawtypes.InfluentialTerm{}
	for term, qw := range queryWeights {
		if _, noise := legalNoiseWords[term]; noise {
			continue
		}
		cw, shared := caseWeights[term]
		if !shared {
			continue
		}
		terms = append(terms, caselawtypes.InfluentialTerm{
			Term:           term,
			Weight:         round4(qw * cw),
			QueryRelevance: round4(qw),
			CaseRelevance:  round4(cw),
		})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Weight != terms[j].Weight {
			return terms[i].Weight > terms[j].Weight
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > topInfluentialTerms {
		terms = terms[:topInfluentialTerms]
	}
	return terms
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
