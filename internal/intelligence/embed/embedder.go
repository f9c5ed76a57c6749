// Package embed produces dense sentence vectors for case texts and
// queries via an OpenAI-compatible embedding endpoint. All vectors are
// L2-normalized on the way out so downstream indexes can score with a
// plain inner product.
package embed

import (
	"context"
	"fmt"
	"math"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

// Embedder converts texts into dense vectors.
type Embedder interface {
	// EmbedQuery embeds a single text.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch embeds texts in request-sized batches, preserving
	// input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension reports the vector width this embedder produces.
	Dimension() int
}

type openAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
	batchSize int
	logger    logging.Logger
}

// NewOpenAIEmbedder builds an Embedder against the configured endpoint.
// Local inference servers that ignore authentication still require a
// non-empty token in the client config. dim is the vector width the
// configured model produces.
func NewOpenAIEmbedder(cfg config.EmbeddingConfig, dim int, logger logging.Logger) Embedder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	token := cfg.APIKey
	if token == "" {
		token = "none"
	}
	clientCfg := openai.DefaultConfig(token)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = config.DefaultEmbeddingBatchSize
	}
	if dim <= 0 {
		dim = config.DefaultEmbeddingDim
	}
	return &openAIEmbedder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		dimension: dim,
		batchSize: batch,
		logger:    logger.Named("embedder"),
	}
}

func (e *openAIEmbedder) Dimension() int { return e.dimension }

func (e *openAIEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *openAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		vecs, err := e.embed(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vecs...)
	}
	return out, nil
}

func (e *openAIEmbedder) embed(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		e.logger.Error("embedding request failed",
			logging.Int("texts", len(texts)),
			logging.Err(err))
		return nil, errors.Wrap(err, errors.ErrCodeEmbeddingFailed, "embedding request failed")
	}
	if len(resp.Data) != len(texts) {
		return nil, errors.New(errors.ErrCodeEmbeddingFailed, "embedding response size mismatch").
			WithDetail(fmt.Sprintf("expected %d vectors, got %d", len(texts), len(resp.Data)))
	}
	vecs := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, errors.New(errors.ErrCodeEmbeddingFailed, "embedding response index out of range")
		}
		vecs[item.Index] = Normalize(item.Embedding)
	}
	return vecs, nil
}

// Normalize scales a vector to unit length in place and returns it.
// Zero vectors pass through unchanged.
func Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec
	}
	inv := 1 / math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) * inv)
	}
	return vec
}
