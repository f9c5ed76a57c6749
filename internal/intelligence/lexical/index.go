// Package lexical implements a TF-IDF index over a fixed corpus of case
// texts. The index is built once from the full corpus and then scored
// against incoming queries; it is immutable after Build and safe for
// concurrent readers.
package lexical

import (
	"math"
	"sort"

	"github.com/turtacn/NyayVandan/internal/intelligence/textproc"
)

// DefaultMaxTerms caps the vocabulary at the most frequent corpus terms.
const DefaultMaxTerms = 3000

// maxDocChars truncates each cleaned corpus text before tokenization so
// one very long judgment cannot dominate the vocabulary.
const maxDocChars = 2000

// ---------------------------------------------------------------------------
// Sparse vectors
// ---------------------------------------------------------------------------

// entry is one non-zero component of an L2-normalized document vector.
// Entries within a vector are sorted by column.
type entry struct {
	col    int
	weight float64
}

// dot computes the inner product of two column-sorted sparse vectors.
func dot(a, b []entry) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].col < b[j].col:
			i++
		case a[i].col > b[j].col:
			j++
		default:
			sum += a[i].weight * b[j].weight
			i++
			j++
		}
	}
	return sum
}

// ---------------------------------------------------------------------------
// Index
// ---------------------------------------------------------------------------

// Index holds the vocabulary, per-term IDF weights and the normalized
// document vectors for a built corpus.
type Index struct {
	maxTerms int
	vocab    map[string]int
	terms    []string // column -> term, reverse of vocab
	idf      []float64
	docs     [][]entry
}

// NewIndex returns an empty index. maxTerms <= 0 selects DefaultMaxTerms.
func NewIndex(maxTerms int) *Index {
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	return &Index{maxTerms: maxTerms, vocab: map[string]int{}}
}

// Build replaces the index contents with vectors for the given corpus.
// An empty corpus yields an index whose similarities are all zero.
func (ix *Index) Build(texts []string) {
	ix.vocab = make(map[string]int)
	ix.terms = nil
	ix.idf = nil
	ix.docs = make([][]entry, len(texts))
	if len(texts) == 0 {
		return
	}

	docTokens := make([][]string, len(texts))
	termTotal := make(map[string]int)
	termDocs := make(map[string]int)
	for i, text := range texts {
		toks := prepare(text)
		docTokens[i] = toks
		seen := make(map[string]struct{}, len(toks))
		for _, tok := range toks {
			termTotal[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				termDocs[tok]++
			}
		}
	}

	// Keep the maxTerms most frequent terms; ties break alphabetically
	// so the vocabulary is deterministic across builds.
	terms := make([]string, 0, len(termTotal))
	for t := range termTotal {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termTotal[terms[i]] != termTotal[terms[j]] {
			return termTotal[terms[i]] > termTotal[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > ix.maxTerms {
		terms = terms[:ix.maxTerms]
	}
	sort.Strings(terms)
	ix.terms = terms
	for col, t := range terms {
		ix.vocab[t] = col
	}

	n := float64(len(texts))
	ix.idf = make([]float64, len(terms))
	for t, col := range ix.vocab {
		df := float64(termDocs[t])
		ix.idf[col] = math.Log((1+n)/(1+df)) + 1
	}

	for i, toks := range docTokens {
		ix.docs[i] = ix.vectorize(toks)
	}
}

// DocCount reports the number of indexed documents.
func (ix *Index) DocCount() int { return len(ix.docs) }

// VocabSize reports the number of vocabulary terms.
func (ix *Index) VocabSize() int { return len(ix.vocab) }

// Similarities scores the query against every indexed document and
// returns one cosine similarity per document, in corpus order. With an
// empty corpus or an out-of-vocabulary query every score is 0.0.
func (ix *Index) Similarities(query string) []float64 {
	scores := make([]float64, len(ix.docs))
	if len(ix.docs) == 0 {
		return scores
	}
	qv := ix.vectorize(prepare(query))
	if len(qv) == 0 {
		return scores
	}
	for i, dv := range ix.docs {
		scores[i] = dot(qv, dv)
	}
	return scores
}

// QueryTermWeights exposes the non-zero TF-IDF weights of a query,
// keyed by term. Used by the explanation service to surface the most
// influential lexical terms.
func (ix *Index) QueryTermWeights(query string) map[string]float64 {
	return ix.termWeights(ix.vectorize(prepare(query)))
}

// DocTermWeights exposes the non-zero TF-IDF weights of one indexed
// document, keyed by term. Out-of-range indexes yield an empty map.
func (ix *Index) DocTermWeights(i int) map[string]float64 {
	if i < 0 || i >= len(ix.docs) {
		return map[string]float64{}
	}
	return ix.termWeights(ix.docs[i])
}

func (ix *Index) termWeights(vec []entry) map[string]float64 {
	out := make(map[string]float64, len(vec))
	for _, e := range vec {
		out[ix.terms[e.col]] = e.weight
	}
	return out
}

// vectorize builds an L2-normalized sparse vector from tokens using
// sublinear term frequency (1 + ln tf) and smooth IDF weights.
func (ix *Index) vectorize(tokens []string) []entry {
	tf := make(map[int]int)
	for _, tok := range tokens {
		if col, ok := ix.vocab[tok]; ok {
			tf[col]++
		}
	}
	if len(tf) == 0 {
		return nil
	}
	vec := make([]entry, 0, len(tf))
	var norm float64
	for col, count := range tf {
		w := (1 + math.Log(float64(count))) * ix.idf[col]
		vec = append(vec, entry{col: col, weight: w})
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].weight /= norm
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].col < vec[j].col })
	return vec
}

// prepare cleans and truncates raw text, then tokenizes it with stop
// words removed. Queries and corpus documents go through the same path.
func prepare(text string) []string {
	cleaned := textproc.CleanText(text)
	if runes := []rune(cleaned); len(runes) > maxDocChars {
		cleaned = string(runes[:maxDocChars])
	}
	toks := textproc.Tokenize(cleaned)
	out := toks[:0]
	for _, tok := range toks {
		if _, stop := stopWords[tok]; !stop {
			out = append(out, tok)
		}
	}
	return out
}
