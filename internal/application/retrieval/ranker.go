package retrieval

import (
	"context"
	"sort"
	"strings"

	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/errors"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
)

// Similarity labels assigned from the hybrid score.
const (
	LabelHigh     = "Highly Similar"
	LabelModerate = "Moderately Similar"
	LabelSomewhat = "Somewhat Similar"
	LabelLow      = "Low Similarity"
)

// RankedCase is one scored corpus entry. All score fields lie in [0,1].
type RankedCase struct {
	Record        caselaw.CaseRecord
	Semantic      float64
	Lexical       float64
	EntityOverlap float64
	Hybrid        float64
	Label         string
}

// ToDTO converts to the wire form.
func (rc RankedCase) ToDTO() caselawtypes.RankedCaseDTO {
	return caselawtypes.RankedCaseDTO{
		CaseDTO: rc.Record.ToDTO(),
		Scores: caselawtypes.ScoreBreakdown{
			Semantic:      rc.Semantic,
			Lexical:       rc.Lexical,
			EntityOverlap: rc.EntityOverlap,
			Hybrid:        rc.Hybrid,
		},
		SimilarityLabel: rc.Label,
	}
}

// Ranker fuses the three similarity signals over vector-index
// candidates. It holds no per-request state and is safe for concurrent
// use once constructed.
type Ranker struct {
	store     caselaw.Repository
	index     VectorIndex
	lexical   LexicalScorer
	extractor EntityExtractor
	embedder  Embedder
	overlap   *EntityOverlapScorer
	cfg       config.RetrievalConfig
	logger    logging.Logger
}

// NewRanker wires the ranking pipeline.
func NewRanker(
	store caselaw.Repository,
	index VectorIndex,
	lexical LexicalScorer,
	extractor EntityExtractor,
	embedder Embedder,
	cfg config.RetrievalConfig,
	logger logging.Logger,
) *Ranker {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Ranker{
		store:     store,
		index:     index,
		lexical:   lexical,
		extractor: extractor,
		embedder:  embedder,
		overlap:   NewEntityOverlapScorer(cfg.EntityOverlapMode),
		cfg:       cfg,
		logger:    logger.Named("ranker"),
	}
}

// EffectiveTopK resolves a requested top_k to the value Rank uses: zero
// falls back to the configured default, values above the maximum clamp.
func (r *Ranker) EffectiveTopK(topK int) int {
	if topK <= 0 {
		return r.cfg.DefaultTopK
	}
	if topK > r.cfg.MaxTopK {
		return r.cfg.MaxTopK
	}
	return topK
}

// Rank scores the query against the corpus and returns at most topK
// cases in descending hybrid order. Equal hybrid scores order by
// ascending case ID so a query always produces the same list. The
// extracted query entities are returned alongside for the audit and
// explanation stages. A blank query yields an empty list, never an
// error; length limits belong to the API boundary.
func (r *Ranker) Rank(ctx context.Context, caseText string, topK int) ([]RankedCase, caselaw.QueryEntities, error) {
	if topK < 0 {
		return nil, caselaw.QueryEntities{}, errors.New(errors.ErrCodeTopKInvalid, "top_k must not be negative")
	}
	topK = r.EffectiveTopK(topK)

	entities := r.extractor.Extract(caseText)
	if strings.TrimSpace(caseText) == "" {
		return []RankedCase{}, entities, nil
	}

	corpus, err := r.store.List(ctx)
	if err != nil {
		return nil, caselaw.QueryEntities{}, err
	}
	if len(corpus) == 0 {
		return []RankedCase{}, entities, nil
	}

	byID := make(map[string]*caselaw.CaseRecord, len(corpus))
	ordinal := make(map[string]int, len(corpus))
	for i := range corpus {
		byID[corpus[i].ID] = &corpus[i]
		ordinal[corpus[i].ID] = i
	}

	queryVec, err := r.embedder.EmbedQuery(ctx, caseText)
	if err != nil {
		return nil, caselaw.QueryEntities{}, err
	}

	// Overfetch so hybrid rescoring can promote cases that sit just
	// below the semantic cut.
	overfetch := 2 * topK
	if overfetch > len(corpus) {
		overfetch = len(corpus)
	}
	hits, err := r.index.Search(ctx, queryVec, overfetch)
	if err != nil {
		return nil, caselaw.QueryEntities{}, err
	}

	lexScores := r.lexical.Similarities(caseText)

	ranked := make([]RankedCase, 0, len(hits))
	for _, hit := range hits {
		rec, ok := byID[hit.CaseID]
		if !ok {
			// The index can briefly hold entries for cases the store no
			// longer has; they are dropped, not errored.
			r.logger.Warn("dropping unresolvable candidate", logging.String("case_id", hit.CaseID))
			continue
		}

		semantic := clamp01(hit.Score)
		lexical := 0.0
		if i := ordinal[hit.CaseID]; i < len(lexScores) {
			lexical = clamp01(lexScores[i])
		}
		entity := r.overlap.Score(entities, rec)
		hybrid := r.cfg.SemanticWeight*semantic +
			r.cfg.LexicalWeight*lexical +
			r.cfg.EntityWeight*entity

		ranked = append(ranked, RankedCase{
			Record:        *rec,
			Semantic:      semantic,
			Lexical:       lexical,
			EntityOverlap: entity,
			Hybrid:        hybrid,
			Label:         r.labelFor(hybrid),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Hybrid != ranked[j].Hybrid {
			return ranked[i].Hybrid > ranked[j].Hybrid
		}
		return ranked[i].Record.ID < ranked[j].Record.ID
	})
	if topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked, entities, nil
}

func (r *Ranker) labelFor(hybrid float64) string {
	switch {
	case hybrid >= r.cfg.HighThreshold:
		return LabelHigh
	case hybrid >= r.cfg.ModerateThreshold:
		return LabelModerate
	case hybrid >= r.cfg.SomewhatThreshold:
		return LabelSomewhat
	default:
		return LabelLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
