package memstore

import (
	"context"
	"sync"
	"testing"

	"github.com/Abraxas-365/peoplehub/internal/vectorstore"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineDistance(t *testing.T) {
	assert.InDelta(t, 0, CosineDistance([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 1, CosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 2, CosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 1.0, CosineDistance([]float32{0, 0}, []float32{1, 0}))
}

func TestQueryOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := New()

	for id, v := range map[string][]float32{
		"a": {1, 0},
		"b": {0.7, 0.7},
		"c": {0, 1},
	} {
		require.NoError(t, s.Upsert(ctx, vectorstore.Record{Collection: "resume", ID: id, Text: id, Vector: v}))
	}

	matches, err := s.Query(ctx, "resume", []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].ID)
	assert.Equal(t, "b", matches[1].ID)
}

func TestQueryDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Upsert(ctx, vectorstore.Record{Collection: "resume", ID: "a", Vector: []float32{1, 0}}))

	_, err := s.Query(ctx, "resume", []float32{1, 0, 0}, 1)
	assert.True(t, errx.IsCode(err, vectorstore.CodeQueryFailed))
}

func TestUpsertValidates(t *testing.T) {
	s := New()

	err := s.Upsert(context.Background(), vectorstore.Record{Collection: "resume", ID: "a"})
	assert.True(t, errx.IsCode(err, vectorstore.CodeInvalidRecord))
}

func TestConcurrentUpsertsSameKey(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Upsert(ctx, vectorstore.Record{Collection: "resume", ID: "same", Vector: []float32{float32(i), 1}})
		}(i)
	}
	wg.Wait()

	n, err := s.Count(ctx, "resume")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.Upsert(ctx, vectorstore.Record{Collection: "resume", ID: "a", Vector: []float32{1, 2}}))

	rec, err := s.Get(ctx, "resume", "a")
	require.NoError(t, err)
	rec.Vector[0] = 42

	again, err := s.Get(ctx, "resume", "a")
	require.NoError(t, err)
	assert.Equal(t, float32(1), again.Vector[0])
}
