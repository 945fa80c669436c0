package rag

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedding maps text to a deterministic unit vector so tests run without
// any embedding provider.
func stubEmbedding(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, 8)
	for i, r := range text {
		v[i%8] += float32(r)
	}
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		norm = 1
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v, nil
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(func(o *Options) {
		o.Collection = "test"
		o.EmbeddingFunc = stubEmbedding
	})
	require.NoError(t, err)
	return store
}

func TestStoreAddAndQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Add(ctx,
		Document{ID: "go", Content: "Go is a statically typed language", Metadata: map[string]string{"topic": "go"}},
		Document{ID: "py", Content: "Python is dynamically typed"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Count())

	results, err := store.Query(ctx, "Go is a statically typed language", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "go", results[0].ID)
	assert.Equal(t, "go", results[0].Metadata["topic"])
	assert.InDelta(t, 1.0, float64(results[0].Score), 1e-4)
}

func TestStoreQueryEmpty(t *testing.T) {
	store := newTestStore(t)

	results, err := store.Query(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStoreQueryClampsTopK(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, Document{Content: "only document"}))

	results, err := store.Query(ctx, "only document", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestStoreGeneratesIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, Document{Content: "anonymous"}))

	results, err := store.Query(ctx, "anonymous", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].ID)
}

func TestRetrievalTool(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, Document{Content: "The warranty lasts two years"}))

	retrieve := NewRetrievalTool(store)
	result, err := retrieve.Call(ctx, map[string]any{"question": "The warranty lasts two years"})
	require.NoError(t, err)
	assert.Contains(t, result.(string), "The warranty lasts two years")
}

func TestRetrievalToolEmptyStore(t *testing.T) {
	store := newTestStore(t)

	retrieve := NewRetrievalTool(store)
	result, err := retrieve.Call(context.Background(), map[string]any{"question": "anything"})
	require.NoError(t, err)
	assert.Equal(t, "No relevant documents found.", result)
}
