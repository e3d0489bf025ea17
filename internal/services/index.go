package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Match is one ranked entry returned by an index query. Score is the
// cosine similarity mapped into [0,1].
type Match struct {
	ID       string
	Score    float64
	Metadata map[string]string
}

// MatchIndex is a named, append-only collection of (id, vector, metadata)
// tuples supporting nearest-neighbor ranking queries. Implementations
// must make Insert atomic with respect to concurrent Query calls: a query
// never observes an entry with a vector but missing metadata.
type MatchIndex interface {
	Name() string

	// Insert appends one entry. The id must be unique within the
	// collection; reuse fails with ErrDuplicateID and leaves the index
	// unchanged.
	Insert(ctx context.Context, id string, vector []float32, metadata map[string]string) error

	// Query returns at most topK entries ranked by similarity descending.
	// Ties rank by insertion order, earliest first, so identical inputs
	// always produce identical orderings. topK of zero or less fails with
	// ErrInvalidTopK; topK beyond the collection size returns everything.
	Query(ctx context.Context, vector []float32, topK int) ([]Match, error)

	// Size reports the number of stored entries.
	Size(ctx context.Context) (int, error)
}

type indexEntry struct {
	id       string
	vector   []float32
	metadata map[string]string
}

// memoryIndex is the default MatchIndex backend: an RWMutex-guarded
// append-only slice, so queries run fully in parallel against a stable
// snapshot and each insert becomes visible as a whole.
type memoryIndex struct {
	name string

	mu      sync.RWMutex
	entries []indexEntry
	byID    map[string]struct{}
}

func NewMemoryIndex(name string) MatchIndex {
	return &memoryIndex{
		name: name,
		byID: make(map[string]struct{}),
	}
}

func (m *memoryIndex) Name() string {
	return m.name
}

func (m *memoryIndex) Insert(_ context.Context, id string, vector []float32, metadata map[string]string) error {
	if id == "" {
		return fmt.Errorf("index %s: id is required", m.name)
	}
	if len(vector) == 0 {
		return fmt.Errorf("index %s: vector is required", m.name)
	}

	entry := indexEntry{
		id:       id,
		vector:   append([]float32(nil), vector...),
		metadata: copyMetadata(metadata),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[id]; exists {
		return fmt.Errorf("index %s: %w: %s", m.name, ErrDuplicateID, id)
	}

	m.byID[id] = struct{}{}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryIndex) Query(_ context.Context, vector []float32, topK int) ([]Match, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("index %s: %w: %d", m.name, ErrInvalidTopK, topK)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]Match, 0, len(m.entries))
	for _, entry := range m.entries {
		matches = append(matches, Match{
			ID:       entry.id,
			Score:    mapCosineToScore(cosineSimilarity(vector, entry.vector)),
			Metadata: copyMetadata(entry.metadata),
		})
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

func (m *memoryIndex) Size(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// cosineSimilarity computes dot(a,b) / (‖a‖·‖b‖). Vectors of different
// lengths are compared over the shorter prefix; a zero-norm operand
// yields 0.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	for i := n; i < len(a); i++ {
		normA += float64(a[i]) * float64(a[i])
	}
	for i := n; i < len(b); i++ {
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// mapCosineToScore maps raw cosine similarity from [-1,1] into the [0,1]
// display range as (cosine + 1) / 2, clamped as a final guard. Clients
// render score*100 as a percentage, so this mapping is part of the wire
// contract and must stay stable.
func mapCosineToScore(cosine float64) float64 {
	score := (cosine + 1) / 2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func copyMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
