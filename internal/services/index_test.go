package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIndexInsertAndQuery(t *testing.T) {
	idx := NewMemoryIndex("resumes")
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "a", []float32{1, 0, 0}, map[string]string{"filename": "a.txt"}))
	require.NoError(t, idx.Insert(ctx, "b", []float32{0, 1, 0}, nil))

	size, err := idx.Size(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, size)

	matches, err := idx.Query(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "a", matches[0].ID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	assert.Equal(t, "a.txt", matches[0].Metadata["filename"])

	assert.Equal(t, "b", matches[1].ID)
	// Orthogonal vectors land in the middle of the score range
	assert.InDelta(t, 0.5, matches[1].Score, 1e-9)
}

func TestMemoryIndexDuplicateID(t *testing.T) {
	idx := NewMemoryIndex("resumes")
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "a", []float32{1, 0}, map[string]string{"v": "first"}))

	err := idx.Insert(ctx, "a", []float32{0, 1}, map[string]string{"v": "second"})
	require.ErrorIs(t, err, ErrDuplicateID)

	// Index is unchanged: still one entry, original vector and metadata
	size, err := idx.Size(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, size)

	matches, err := idx.Query(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	assert.Equal(t, "first", matches[0].Metadata["v"])
}

func TestMemoryIndexInvalidTopK(t *testing.T) {
	idx := NewMemoryIndex("resumes")
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "a", []float32{1}, nil))

	for _, topK := range []int{0, -1, -100} {
		_, err := idx.Query(ctx, []float32{1}, topK)
		require.ErrorIs(t, err, ErrInvalidTopK, "topK %d", topK)
	}
}

func TestMemoryIndexTopKBeyondSize(t *testing.T) {
	idx := NewMemoryIndex("resumes")
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "a", []float32{1, 0}, nil))
	require.NoError(t, idx.Insert(ctx, "b", []float32{0, 1}, nil))

	matches, err := idx.Query(ctx, []float32{1, 1}, 50)
	require.NoError(t, err)
	require.Len(t, matches, 2)
}

func TestMemoryIndexQueryEmpty(t *testing.T) {
	idx := NewMemoryIndex("resumes")

	matches, err := idx.Query(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestMemoryIndexOrderingDescending(t *testing.T) {
	idx := NewMemoryIndex("resumes")
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "far", []float32{0, 1}, nil))
	require.NoError(t, idx.Insert(ctx, "near", []float32{1, 0.1}, nil))
	require.NoError(t, idx.Insert(ctx, "exact", []float32{1, 0}, nil))

	matches, err := idx.Query(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "exact", matches[0].ID)
	assert.Equal(t, "near", matches[1].ID)
	assert.Equal(t, "far", matches[2].ID)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
	assert.GreaterOrEqual(t, matches[1].Score, matches[2].Score)
}

func TestMemoryIndexTieBreakInsertionOrder(t *testing.T) {
	idx := NewMemoryIndex("resumes")
	ctx := context.Background()

	// Identical vectors score identically against any query
	v := []float32{0.6, 0.8}
	require.NoError(t, idx.Insert(ctx, "second-class", []float32{0, 1}, nil))
	require.NoError(t, idx.Insert(ctx, "first", v, nil))
	require.NoError(t, idx.Insert(ctx, "second", v, nil))
	require.NoError(t, idx.Insert(ctx, "third", v, nil))

	for run := 0; run < 5; run++ {
		matches, err := idx.Query(ctx, []float32{0.6, 0.8}, 4)
		require.NoError(t, err)
		require.Len(t, matches, 4)
		assert.Equal(t, "first", matches[0].ID)
		assert.Equal(t, "second", matches[1].ID)
		assert.Equal(t, "third", matches[2].ID)
	}
}

func TestMemoryIndexScoresWithinRange(t *testing.T) {
	idx := NewMemoryIndex("resumes")
	ctx := context.Background()

	require.NoError(t, idx.Insert(ctx, "same", []float32{1, 0}, nil))
	require.NoError(t, idx.Insert(ctx, "opposite", []float32{-1, 0}, nil))
	require.NoError(t, idx.Insert(ctx, "orthogonal", []float32{0, 1}, nil))

	matches, err := idx.Query(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)

	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Score, 0.0)
		assert.LessOrEqual(t, m.Score, 1.0)
	}
	assert.InDelta(t, 1.0, matches[0].Score, 1e-9)
	assert.InDelta(t, 0.0, matches[2].Score, 1e-9)
}

func TestMemoryIndexConcurrentAccess(t *testing.T) {
	idx := NewMemoryIndex("resumes")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			err := idx.Insert(ctx, fmt.Sprintf("id-%d", i), []float32{float32(i), 1}, map[string]string{"n": fmt.Sprint(i)})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			matches, err := idx.Query(ctx, []float32{1, 1}, 100)
			assert.NoError(t, err)
			// Visibility is all-or-nothing per entry
			for _, m := range matches {
				assert.NotEmpty(t, m.Metadata["n"])
			}
		}()
	}
	wg.Wait()

	size, err := idx.Size(ctx)
	require.NoError(t, err)
	require.Equal(t, 20, size)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"zero operand", []float32{0, 0}, []float32{1, 0}, 0},
		{"scale invariant", []float32{2, 0}, []float32{5, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestMapCosineToScore(t *testing.T) {
	assert.InDelta(t, 1.0, mapCosineToScore(1), 1e-9)
	assert.InDelta(t, 0.5, mapCosineToScore(0), 1e-9)
	assert.InDelta(t, 0.0, mapCosineToScore(-1), 1e-9)
	assert.Equal(t, 1.0, mapCosineToScore(1.0000001))
	assert.Equal(t, 0.0, mapCosineToScore(-1.0000001))
}
