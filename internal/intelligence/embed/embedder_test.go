package embed

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

// fakeEmbedder counts calls and returns a fixed vector per text length.
type fakeEmbedder struct {
	queryCalls int
	batchCalls int
	err        error
}

func (f *fakeEmbedder) Dimension() int { return 3 }

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.queryCalls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 0, 0}, nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 0, 0}
	}
	return out, nil
}

func TestCachingEmbedder_MemoizesQueries(t *testing.T) {
	inner := &fakeEmbedder{}
	c := NewCachingEmbedder(inner, time.Minute)

	first, err := c.EmbedQuery(context.Background(), "murder case")
	require.NoError(t, err)
	second, err := c.EmbedQuery(context.Background(), "murder case")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.queryCalls)

	_, err = c.EmbedQuery(context.Background(), "different query")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.queryCalls)
}

func TestCachingEmbedder_DoesNotCacheErrors(t *testing.T) {
	inner := &fakeEmbedder{err: errors.New(errors.ErrCodeEmbeddingFailed, "down")}
	c := NewCachingEmbedder(inner, time.Minute)

	_, err := c.EmbedQuery(context.Background(), "q")
	require.Error(t, err)
	_, err = c.EmbedQuery(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, 2, inner.queryCalls)
}

func TestCachingEmbedder_BatchBypassesCache(t *testing.T) {
	inner := &fakeEmbedder{}
	c := NewCachingEmbedder(inner, time.Minute)

	_, err := c.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	_, err = c.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.batchCalls)
}

func TestNormalize(t *testing.T) {
	vec := Normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, float64(vec[0]), 1e-6)
	assert.InDelta(t, 0.8, float64(vec[1]), 1e-6)

	zero := Normalize([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}

// embeddingsStub emulates the OpenAI embeddings endpoint.
type embeddingsStub struct {
	requests int
}

func (s *embeddingsStub) handler(w http.ResponseWriter, r *http.Request) {
	s.requests++
	var req struct {
		Input []string `json:"input"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	type datum struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	}
	resp := struct {
		Data []datum `json:"data"`
	}{}
	for i := range req.Input {
		resp.Data = append(resp.Data, datum{Embedding: []float32{3, 4}, Index: i})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func TestOpenAIEmbedder_BatchingAndNormalization(t *testing.T) {
	stub := &embeddingsStub{}
	srv := httptest.NewServer(http.HandlerFunc(stub.handler))
	defer srv.Close()

	e := NewOpenAIEmbedder(config.EmbeddingConfig{
		BaseURL:   srv.URL,
		Model:     "all-MiniLM-L6-v2",
		BatchSize: 2,
	}, 2, nil)

	vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	// 3 texts at batch size 2 means two upstream requests.
	assert.Equal(t, 2, stub.requests)
	for _, v := range vecs {
		var norm float64
		for _, x := range v {
			norm += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
	}
}

func TestOpenAIEmbedder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder(config.EmbeddingConfig{BaseURL: srv.URL, Model: "m"}, 2, nil)
	_, err := e.EmbedQuery(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeEmbeddingFailed))
}
