package vectorstore_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/peoplehub/internal/resilience"
	"github.com/Abraxas-365/peoplehub/internal/vectorstore"
	"github.com/Abraxas-365/peoplehub/internal/vectorstore/memstore"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keywordEmbedder maps text onto fixed axes by keyword
type keywordEmbedder struct {
	calls int
}

func (k *keywordEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	k.calls++
	t := strings.ToLower(text)
	v := []float32{0.01, 0.01, 0.01}
	if strings.Contains(t, "go") {
		v[0] = 1
	}
	if strings.Contains(t, "python") {
		v[1] = 1
	}
	if strings.Contains(t, "design") {
		v[2] = 1
	}
	return v, nil
}

func newIndex() (*vectorstore.Index, *memstore.Store, *keywordEmbedder) {
	store := memstore.New()
	emb := &keywordEmbedder{}
	exec := resilience.NewExecutor("vector_store", resilience.Policy{
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
		MaxInterval:     time.Millisecond,
		Multiplier:      1,
	})
	return vectorstore.NewIndex(emb, store, exec), store, emb
}

func TestIndexSearchOrdersByDistance(t *testing.T) {
	ctx := context.Background()
	idx, _, _ := newIndex()

	require.NoError(t, idx.Add(ctx, vectorstore.CollectionJobPost, "j1", "Python data engineer", vectorstore.Metadata{"job_id": "j1"}))
	require.NoError(t, idx.Add(ctx, vectorstore.CollectionJobPost, "j2", "Go backend engineer", vectorstore.Metadata{"job_id": "j2"}))
	require.NoError(t, idx.Add(ctx, vectorstore.CollectionJobPost, "j3", "Product design lead", vectorstore.Metadata{"job_id": "j3"}))

	matches, err := idx.Search(ctx, vectorstore.CollectionJobPost, "Senior Go developer", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "j2", matches[0].ID)
	assert.Equal(t, "j2", matches[0].Metadata.String("job_id"))
	assert.LessOrEqual(t, matches[0].Distance, matches[1].Distance)
}

func TestIndexSearchEmptyCollection(t *testing.T) {
	idx, _, _ := newIndex()

	matches, err := idx.Search(context.Background(), vectorstore.CollectionResume, "anything go", 5)
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestIndexAddRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	idx, _, _ := newIndex()

	require.NoError(t, idx.Add(ctx, vectorstore.CollectionResume, "r1", "Go", nil))
	err := idx.Add(ctx, vectorstore.CollectionResume, "r1", "Python", nil)
	assert.True(t, errx.IsCode(err, vectorstore.CodeRecordExists))
}

func TestIndexReplaceKeepsOneRecord(t *testing.T) {
	ctx := context.Background()
	idx, store, _ := newIndex()

	require.NoError(t, idx.Replace(ctx, vectorstore.CollectionResume, "r1", "Python analyst", vectorstore.Metadata{"user_id": "u1"}))
	require.NoError(t, idx.Replace(ctx, vectorstore.CollectionResume, "r1", "Go engineer", vectorstore.Metadata{"user_id": "u1"}))

	n, err := store.Count(ctx, vectorstore.CollectionResume)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := idx.Get(ctx, vectorstore.CollectionResume, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Go engineer", rec.Text)
}

func TestIndexRejectsNonScalarMetadata(t *testing.T) {
	ctx := context.Background()
	idx, store, emb := newIndex()

	err := idx.Replace(ctx, vectorstore.CollectionResume, "r1", "Go", vectorstore.Metadata{"skills": []string{"go"}})
	assert.True(t, errx.IsCode(err, vectorstore.CodeInvalidMetadata))
	assert.True(t, vectorstore.IsFailure(err))
	assert.Zero(t, emb.calls)

	n, _ := store.Count(ctx, vectorstore.CollectionResume)
	assert.Zero(t, n)
}

func TestIndexCollectionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	idx, _, _ := newIndex()

	require.NoError(t, idx.Replace(ctx, vectorstore.CollectionResume, "r1", "Go engineer", nil))

	matches, err := idx.Search(ctx, vectorstore.CollectionJobPost, "Go engineer", 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestIndexRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	idx, _, _ := newIndex()

	require.NoError(t, idx.Replace(ctx, vectorstore.CollectionJobPost, "j1", "Go", nil))
	require.NoError(t, idx.Replace(ctx, vectorstore.CollectionJobPost, "j2", "Python", nil))

	require.NoError(t, idx.Remove(ctx, vectorstore.CollectionJobPost, "j1"))
	_, err := idx.Get(ctx, vectorstore.CollectionJobPost, "j1")
	assert.True(t, errx.IsCode(err, vectorstore.CodeRecordNotFound))

	require.NoError(t, idx.Clear(ctx, vectorstore.CollectionJobPost))
	require.NoError(t, idx.Clear(ctx, vectorstore.CollectionJobPost))
	n, err := idx.Count(ctx, vectorstore.CollectionJobPost)
	require.NoError(t, err)
	assert.Zero(t, n)
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("embedding service down")
}

func TestIndexReplaceEmbedFailureLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.Upsert(ctx, vectorstore.Record{
		Collection: vectorstore.CollectionResume,
		ID:         "r1",
		Text:       "old",
		Vector:     []float32{1, 0},
	}))

	exec := resilience.NewExecutor("vector_store", resilience.Policy{InitialInterval: time.Millisecond})
	idx := vectorstore.NewIndex(failingEmbedder{}, store, exec)

	err := idx.Replace(ctx, vectorstore.CollectionResume, "r1", "new", nil)
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, vectorstore.CodeEmbedFailed))
	assert.True(t, vectorstore.IsFailure(err))

	_, err = idx.Search(ctx, vectorstore.CollectionResume, "new", 3)
	assert.True(t, errx.IsCode(err, vectorstore.CodeEmbedFailed))

	rec, err := store.Get(ctx, vectorstore.CollectionResume, "r1")
	require.NoError(t, err)
	assert.Equal(t, "old", rec.Text)
}

func TestValidateMetadata(t *testing.T) {
	assert.NoError(t, vectorstore.ValidateMetadata(vectorstore.Metadata{
		"s": "x", "b": true, "i": 3, "f": 1.5, "n": nil,
	}))
	assert.Error(t, vectorstore.ValidateMetadata(vectorstore.Metadata{"m": map[string]any{}}))
}

func TestMatchSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, vectorstore.Match{Distance: -0.1}.Similarity())
	assert.Equal(t, 0.0, vectorstore.Match{Distance: 1.5}.Similarity())
	assert.InDelta(t, 0.75, vectorstore.Match{Distance: 0.25}.Similarity(), 1e-9)
}
