package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	// DefaultEmbeddingDim is the vector size of the local embedder.
	DefaultEmbeddingDim = 512

	// DefaultMaxInputChars is the longest input the embedders accept.
	// Callers truncate before this limit instead of relying on the error.
	DefaultMaxInputChars = 40000
)

// Embedder maps arbitrary text (resume or job description) to a
// fixed-dimension dense vector. Resume and job vectors live in the same
// representation space and are comparable by cosine similarity.
type Embedder interface {
	// Embed is deterministic: equal text always yields equal vectors.
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// hashingEmbedder is a local, dependency-free embedder: term-frequency
// feature hashing into a fixed-dimension vector, L2-normalized. Each
// token hashes to one bucket with a hash-derived sign, so unrelated
// token sets stay near-orthogonal.
type hashingEmbedder struct {
	dim           int
	maxInputChars int
}

func NewHashingEmbedder(dim, maxInputChars int) Embedder {
	if dim <= 0 {
		dim = DefaultEmbeddingDim
	}
	if maxInputChars <= 0 {
		maxInputChars = DefaultMaxInputChars
	}
	return &hashingEmbedder{dim: dim, maxInputChars: maxInputChars}
}

func (h *hashingEmbedder) Dimension() int {
	return h.dim
}

func (h *hashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if len(text) > h.maxInputChars {
		return nil, fmt.Errorf("%w: input length %d exceeds limit %d",
			ErrEmbeddingUnavailable, len(text), h.maxInputChars)
	}

	counts := tokenizeText(text)

	// Accumulate in sorted token order so colliding buckets sum in a
	// fixed sequence and equal text always yields bit-equal vectors.
	tokens := make([]string, 0, len(counts))
	for token := range counts {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	vec := make([]float32, h.dim)
	for _, token := range tokens {
		hasher := fnv.New64a()
		hasher.Write([]byte(token))
		sum := hasher.Sum64()

		bucket := int(sum % uint64(h.dim))
		sign := float32(1)
		if (sum>>32)&1 == 1 {
			sign = -1
		}

		// Sub-linear term frequency weighting
		weight := 1 + float32(math.Log(float64(counts[token])))
		vec[bucket] += sign * weight
	}

	normalizeVector(vec)
	return vec, nil
}

func normalizeVector(vec []float32) {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return
	}
	norm := float32(math.Sqrt(sumSquares))
	for i := range vec {
		vec[i] /= norm
	}
}

// embeddingStopWords filters common English words that add noise to
// semantic matching.
var embeddingStopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"such": true, "per": true, "any": true, "may": true, "out": true,
}

// tokenizeText lowercases and splits text into term counts, keeping tech
// suffixes like "c++", "c#" and "node.js" intact. Tokens shorter than
// two runes and stop words are dropped.
func tokenizeText(text string) map[string]int {
	counts := make(map[string]int)
	var word strings.Builder

	flush := func() {
		w := word.String()
		word.Reset()
		w = strings.TrimRight(w, ".")
		if len([]rune(w)) >= 2 && !embeddingStopWords[w] {
			counts[w]++
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return counts
}
