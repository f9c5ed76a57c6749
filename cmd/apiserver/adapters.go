package main

import (
	"context"
	"time"

	"github.com/turtacn/NyayVandan/internal/application/retrieval"
	"github.com/turtacn/NyayVandan/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/NyayVandan/internal/infrastructure/search/flat"
	"github.com/turtacn/NyayVandan/internal/infrastructure/search/milvus"
	caselawtypes "github.com/turtacn/NyayVandan/pkg/types/caselaw"
	"github.com/turtacn/NyayVandan/pkg/types/common"
)

// flatVectorIndex adapts the in-process index to the retrieval port.
type flatVectorIndex struct {
	index *flat.Index
}

func (a flatVectorIndex) Search(ctx context.Context, query []float32, topK int) ([]retrieval.VectorHit, error) {
	matches, err := a.index.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	hits := make([]retrieval.VectorHit, len(matches))
	for i, m := range matches {
		hits[i] = retrieval.VectorHit{CaseID: m.ID, Score: m.Score}
	}
	return hits, nil
}

// milvusVectorIndex adapts the external store to the retrieval port.
type milvusVectorIndex struct {
	store *milvus.Store
}

func (a milvusVectorIndex) Search(ctx context.Context, query []float32, topK int) ([]retrieval.VectorHit, error) {
	matches, err := a.store.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	hits := make([]retrieval.VectorHit, len(matches))
	for i, m := range matches {
		hits[i] = retrieval.VectorHit{CaseID: m.ID, Score: m.Score}
	}
	return hits, nil
}

// kafkaAuditSink adapts the Kafka publisher to the analysis audit port.
type kafkaAuditSink struct {
	publisher *kafka.AuditPublisher
}

func (s kafkaAuditSink) PublishReview(ctx context.Context, queryID common.QueryID,
	resultIDs []string, review caselawtypes.EthicalReviewDTO) error {

	return s.publisher.Publish(ctx, kafka.ReviewAuditEvent{
		QueryID:            string(queryID),
		EmittedAt:          time.Now().UTC(),
		ResultCaseIDs:      resultIDs,
		OverallDiversity:   review.DiversityScore.OverallScore,
		HasEthicalConcerns: review.HasEthicalConcerns,
		Warnings:           review.BiasWarnings,
	})
}
