// Package analysis orchestrates the full analyze pipeline: preprocessing,
// entity extraction, hybrid ranking, per-result explanation, and the ethical
// review, assembled into the flat wire response.  Caching and audit events
// sit at this boundary so the ranking core below stays pure.
package analysis

import (
	"context"
	"time"

	"github.com/turtacn/NyayVandan/internal/application/ethics"
	"github.com/turtacn/NyayVandan/internal/application/explain"
	"github.com/turtacn/NyayVandan/internal/application/retrieval"
	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/internal/intelligence/textproc"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
	"github.com/turtacn/NyayVandan/pkg/types/common"
)

// systemDisclaimer accompanies every analyze response.
const systemDisclaimer = "NyayVandan is an advisory system. All outputs are " +
	"for judicial reference only. This system does not predict outcomes, " +
	"assign probabilities, or automate any judicial decision. Judicial " +
	"discretion remains paramount."

// Service runs the analysis pipeline.  Construct once and share; all methods
// are safe for concurrent use.
type Service struct {
	store     caselaw.Repository
	ranker    *retrieval.Ranker
	explainer *explain.Explainer
	auditor   *ethics.Auditor

	cache      ResponseCache
	audit      AuditSink
	metrics    MetricsRecorder
	indexReady func() bool
	logger     logging.Logger
}

// Options carries the optional collaborators of a Service.
type Options struct {
	// Cache short-circuits repeated identical queries.  Optional.
	Cache ResponseCache

	// Audit receives one compliance event per analyze request.  Optional.
	Audit AuditSink

	// Metrics receives pipeline observations.  Optional.
	Metrics MetricsRecorder

	// IndexReady reports whether the vector index is queryable.  When nil,
	// readiness follows the corpus count alone.
	IndexReady func() bool
}

// NewService wires the pipeline stages together.
func NewService(store caselaw.Repository, ranker *retrieval.Ranker,
	explainer *explain.Explainer, auditor *ethics.Auditor,
	opts Options, logger logging.Logger) *Service {

	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		store:      store,
		ranker:     ranker,
		explainer:  explainer,
		auditor:    auditor,
		cache:      opts.Cache,
		audit:      opts.Audit,
		metrics:    opts.Metrics,
		indexReady: opts.IndexReady,
		logger:     logger.Named("analysis"),
	}
}

// Analyze runs the full pipeline for one query.  Identical queries within
// the cache TTL are served from cache; the audit event is emitted either way.
func (s *Service) Analyze(ctx context.Context, req caselawtypes.AnalyzeRequest) (*caselawtypes.AnalyzeResponse, error) {
	var resp caselawtypes.AnalyzeResponse
	if s.cache != nil {
		key := s.cache.Key(req.CaseText, req.TopK)
		loaded := false
		err := s.cache.GetOrLoad(ctx, key, &resp, func(ctx context.Context) (interface{}, error) {
			loaded = true
			return s.analyze(ctx, req)
		})
		if err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.MarkCacheLookup(!loaded)
		}
	} else {
		built, err := s.analyze(ctx, req)
		if err != nil {
			return nil, err
		}
		resp = *built
	}

	s.publishAudit(ctx, &resp)
	return &resp, nil
}

// analyze is the uncached pipeline.
func (s *Service) analyze(ctx context.Context, req caselawtypes.AnalyzeRequest) (*caselawtypes.AnalyzeResponse, error) {
	start := time.Now()
	ranked, entities, err := s.ranker.Rank(ctx, req.CaseText, req.TopK)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ObserveRetrieval(time.Since(start), len(ranked))
	}

	records := make([]caselaw.CaseRecord, len(ranked))
	for i := range ranked {
		records[i] = ranked[i].Record
	}
	review, err := s.auditor.Review(ctx, records, entities)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil && review.HasEthicalConcerns {
		s.metrics.MarkEthicalConcern()
	}

	summary := textproc.Preprocess(req.CaseText)

	cases := make([]caselawtypes.RankedCaseDTO, 0, len(ranked))
	for _, rc := range ranked {
		cases = append(cases, rc.ToDTO())
	}

	return &caselawtypes.AnalyzeResponse{
		Status: "success",
		QueryInfo: caselawtypes.QueryInfo{
			QueryID:        common.GenerateQueryID(),
			OriginalLength: len([]rune(req.CaseText)),
			CleanedLength:  len([]rune(summary.Cleaned)),
			TokenCount:     summary.TokenCount,
			TopKRequested:  s.ranker.EffectiveTopK(req.TopK),
		},
		ExtractedEntities: entities.ToDTO(),
		SimilarCases:      cases,
		Explanations:      s.explainer.ExplainAll(req.CaseText, entities, ranked),
		EthicalFlags:      review,
		Disclaimer:        systemDisclaimer,
	}, nil
}

// publishAudit emits the compliance event for one served response.  The
// stream is fire and forget.
func (s *Service) publishAudit(ctx context.Context, resp *caselawtypes.AnalyzeResponse) {
	if s.audit == nil {
		return
	}
	ids := make([]string, 0, len(resp.SimilarCases))
	for _, c := range resp.SimilarCases {
		ids = append(ids, c.ID)
	}
	if err := s.audit.PublishReview(ctx, resp.QueryInfo.QueryID, ids, resp.EthicalFlags); err != nil {
		s.logger.Warn("audit event publish failed",
			logging.String("query_id", string(resp.QueryInfo.QueryID)),
			logging.Err(err),
		)
	}
}

// Stats aggregates corpus composition for the stats endpoint.
func (s *Service) Stats(ctx context.Context) (*caselawtypes.StatsResponse, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &caselawtypes.StatsResponse{
		TotalCases: len(records),
		Courts:     map[string]int{},
		Outcomes:   map[string]int{},
		Sources:    map[string]int{},
	}
	for _, r := range records {
		resp.Courts[r.Court]++
		resp.Outcomes[r.Outcome]++
		resp.Sources[r.Source]++
		if r.Year > 0 {
			if resp.YearMin == 0 || r.Year < resp.YearMin {
				resp.YearMin = r.Year
			}
			if r.Year > resp.YearMax {
				resp.YearMax = r.Year
			}
		}
	}
	return resp, nil
}

// Health reports readiness for the probe endpoint.
func (s *Service) Health(ctx context.Context) caselawtypes.HealthResponse {
	count, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn("corpus count failed during health check", logging.Err(err))
		return caselawtypes.HealthResponse{Status: "initializing"}
	}

	loaded := count > 0
	ready := loaded
	if s.indexReady != nil {
		ready = s.indexReady()
	}

	status := "healthy"
	if !loaded || !ready {
		status = "initializing"
	}
	return caselawtypes.HealthResponse{
		Status:        status,
		DatasetLoaded: loaded,
		IndexReady:    ready,
		TotalCases:    count,
	}
}
