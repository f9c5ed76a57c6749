package analysis

import (
	"context"
	"time"

	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
	"github.com/turtacn/NyayVandan/pkg/types/common"
)

// ResponseCache caches complete analyze responses keyed by query text and
// topK.  Satisfied by the Redis response cache; nil disables caching.
type ResponseCache interface {
	Key(caseText string, topK int) string
	GetOrLoad(ctx context.Context, key string, dest interface{},
		loader func(ctx context.Context) (interface{}, error)) error
}

// AuditSink receives one review-audit record per analyze request.  Satisfied
// by the Kafka audit publisher through a thin adapter; nil disables the
// stream.  Delivery is advisory: failures are logged, never surfaced.
type AuditSink interface {
	PublishReview(ctx context.Context, queryID common.QueryID, resultIDs []string,
		review caselawtypes.EthicalReviewDTO) error
}

// MetricsRecorder receives pipeline observations.  Satisfied by the
// Prometheus metrics set; nil disables recording.
type MetricsRecorder interface {
	ObserveRetrieval(d time.Duration, resultCount int)
	MarkEthicalConcern()
	MarkCacheLookup(hit bool)
}
