// Package flat provides an in-process vector index that scores a query
// against every stored vector with an inner product. The corpus is
// small enough (thousands of judgments) that brute-force scoring beats
// the operational cost of an external ANN service; deployments that
// outgrow it switch to the milvus adapter via configuration.
package flat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/turtacn/NyayVandan/pkg/errors"
)

// Match is one scored hit from a vector search.
type Match struct {
	ID    string
	Score float64
}

// Index is safe for concurrent Search after Load completes. Load
// replaces the whole corpus atomically.
type Index struct {
	mu   sync.RWMutex
	dim  int
	ids  []string
	vecs [][]float32
}

// NewIndex creates an empty index for vectors of the given width.
func NewIndex(dim int) *Index {
	return &Index{dim: dim}
}

// Load replaces the indexed corpus. ids and vecs are parallel slices;
// every vector must match the index dimension.
func (ix *Index) Load(ids []string, vecs [][]float32) error {
	if len(ids) != len(vecs) {
		return errors.New(errors.ErrCodeIndexNotReady, "index load size mismatch").
			WithDetail(fmt.Sprintf("%d ids, %d vectors", len(ids), len(vecs)))
	}
	for i, v := range vecs {
		if len(v) != ix.dim {
			return errors.New(errors.ErrCodeIndexNotReady, "vector dimension mismatch").
				WithDetail(fmt.Sprintf("id %s has dim %d, want %d", ids[i], len(v), ix.dim))
		}
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.ids = append([]string(nil), ids...)
	ix.vecs = make([][]float32, len(vecs))
	for i, v := range vecs {
		ix.vecs[i] = append([]float32(nil), v...)
	}
	return nil
}

// Size reports the number of indexed vectors.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.ids)
}

// Search returns up to topK matches ordered by descending score.
// Equal scores order by ascending ID so results are stable across
// runs. An empty index returns no matches and no error.
func (ix *Index) Search(ctx context.Context, query []float32, topK int) ([]Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(query) != ix.dim {
		return nil, errors.New(errors.ErrCodeVectorSearchFailed, "query dimension mismatch").
			WithDetail(fmt.Sprintf("got %d, want %d", len(query), ix.dim))
	}
	if topK <= 0 {
		return []Match{}, nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	matches := make([]Match, len(ix.ids))
	for i, vec := range ix.vecs {
		var sum float64
		for j, q := range query {
			sum += float64(q) * float64(vec[j])
		}
		matches[i] = Match{ID: ix.ids[i], Score: sum}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}
