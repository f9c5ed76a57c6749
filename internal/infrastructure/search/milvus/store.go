package milvus

import (
	"context"
	"fmt"
	"sort"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

const (
	fieldCaseID    = "case_id"
	fieldEmbedding = "embedding"

	caseIDMaxLength = 64
	shardsNum       = 2
)

// Match is one scored hit from a vector search.
type Match struct {
	ID    string
	Score float64
}

// Store holds case embeddings in a Milvus collection keyed by case ID.
type Store struct {
	client     *Client
	collection string
	dim        int
	hnswM      int
	hnswEf     int
	logger     logging.Logger
}

// NewStore builds a Store over an established client connection.
func NewStore(c *Client, cfg config.MilvusConfig, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	m := cfg.HNSWM
	if m <= 0 {
		m = 16
	}
	ef := cfg.HNSWEf
	if ef <= 0 {
		ef = 64
	}
	return &Store{
		client:     c,
		collection: cfg.CollectionName,
		dim:        cfg.EmbeddingDim,
		hnswM:      m,
		hnswEf:     ef,
		logger:     logger.Named("milvus.store"),
	}
}

// EnsureCollection creates the collection, its HNSW index and loads it
// into memory. Existing collections are loaded as-is.
func (s *Store) EnsureCollection(ctx context.Context) error {
	mc := s.client.mc

	has, err := mc.HasCollection(ctx, s.collection)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeIndexNotReady, "failed to check collection")
	}
	if !has {
		schema := &entity.Schema{
			CollectionName: s.collection,
			Description:    "case judgment embeddings",
			Fields: []*entity.Field{
				entity.NewField().
					WithName(fieldCaseID).
					WithDataType(entity.FieldTypeVarChar).
					WithMaxLength(caseIDMaxLength).
					WithIsPrimaryKey(true),
				entity.NewField().
					WithName(fieldEmbedding).
					WithDataType(entity.FieldTypeFloatVector).
					WithDim(int64(s.dim)),
			},
		}
		if err := mc.CreateCollection(ctx, schema, shardsNum); err != nil {
			return errors.Wrap(err, errors.ErrCodeIndexNotReady, "failed to create collection")
		}
		idx, err := entity.NewIndexHNSW(entity.IP, s.hnswM, s.hnswEf)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeIndexNotReady, "failed to build index spec")
		}
		if err := mc.CreateIndex(ctx, s.collection, fieldEmbedding, idx, false); err != nil {
			return errors.Wrap(err, errors.ErrCodeIndexNotReady, "failed to create index")
		}
		s.logger.Info("collection created", logging.String("collection", s.collection))
	}

	if err := mc.LoadCollection(ctx, s.collection, false); err != nil {
		return errors.Wrap(err, errors.ErrCodeIndexNotReady, "failed to load collection")
	}
	return nil
}

// Upsert writes case vectors, replacing any existing entries with the
// same IDs. ids and vecs are parallel slices.
func (s *Store) Upsert(ctx context.Context, ids []string, vecs [][]float32) error {
	if len(ids) != len(vecs) {
		return errors.Validation("upsert size mismatch").
			WithDetail(fmt.Sprintf("%d ids, %d vectors", len(ids), len(vecs)))
	}
	if len(ids) == 0 {
		return nil
	}
	for i, v := range vecs {
		if len(v) != s.dim {
			return errors.Validation("vector dimension mismatch").
				WithDetail(fmt.Sprintf("id %s has dim %d, want %d", ids[i], len(v), s.dim))
		}
	}

	idCol := entity.NewColumnVarChar(fieldCaseID, ids)
	vecCol := entity.NewColumnFloatVector(fieldEmbedding, s.dim, vecs)
	if _, err := s.client.mc.Upsert(ctx, s.collection, "", idCol, vecCol); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to upsert vectors")
	}
	s.logger.Info("vectors upserted",
		logging.String("collection", s.collection),
		logging.Int("count", len(ids)))
	return nil
}

// Search returns up to topK matches by inner product, descending.
// Equal scores order by ascending case ID, matching the in-process
// index so backends are interchangeable.
func (s *Store) Search(ctx context.Context, query []float32, topK int) ([]Match, error) {
	if len(query) != s.dim {
		return nil, errors.New(errors.ErrCodeVectorSearchFailed, "query dimension mismatch").
			WithDetail(fmt.Sprintf("got %d, want %d", len(query), s.dim))
	}
	if topK <= 0 {
		return []Match{}, nil
	}

	sp, err := entity.NewIndexHNSWSearchParam(s.hnswEf)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "failed to build search param")
	}
	results, err := s.client.mc.Search(
		ctx,
		s.collection,
		nil,
		"",
		[]string{fieldCaseID},
		[]entity.Vector{entity.FloatVector(query)},
		fieldEmbedding,
		entity.IP,
		topK,
		sp,
		client.WithSearchQueryConsistencyLevel(entity.ClBounded),
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorSearchFailed, "vector search failed")
	}

	matches := make([]Match, 0, topK)
	for _, res := range results {
		ids, ok := res.IDs.(*entity.ColumnVarChar)
		if !ok {
			return nil, errors.New(errors.ErrCodeVectorSearchFailed, "unexpected id column type")
		}
		for i, id := range ids.Data() {
			matches = append(matches, Match{ID: id, Score: float64(res.Scores[i])})
		}
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
