// Package retrieval implements the hybrid precedent ranker: semantic,
// lexical and entity-overlap signals fused into one score per corpus
// case. The package defines the collaborator ports it needs; concrete
// adapters live in internal/infrastructure and internal/intelligence.
package retrieval

import (
	"context"

	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
)

// VectorHit is one scored candidate from the vector index.
type VectorHit struct {
	CaseID string
	Score  float64
}

// VectorIndex serves nearest-neighbour search over case embeddings.
// Implementations return hits in descending score order with ties
// broken by ascending case ID.
type VectorIndex interface {
	Search(ctx context.Context, query []float32, topK int) ([]VectorHit, error)
}

// LexicalScorer scores a query against every corpus document. The
// returned slice is aligned with the repository's List order.
type LexicalScorer interface {
	Similarities(query string) []float64
}

// EntityExtractor pulls normalized legal references out of free text.
type EntityExtractor interface {
	Extract(text string) caselaw.QueryEntities
}

// Embedder produces the query vector for semantic search.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
