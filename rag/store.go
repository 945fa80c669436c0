// Package rag provides an embedded document store for retrieval augmented
// generation. Documents are embedded and indexed in-process via chromem-go;
// no external vector database is required.
package rag

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
)

// Document is a unit of indexable content.
type Document struct {
	ID       string            // Stable identifier (generated if empty)
	Content  string            // Plain text content to embed
	Metadata map[string]string // Optional metadata stored alongside
}

// Result is a scored retrieval hit.
type Result struct {
	ID       string
	Content  string
	Score    float32 // Cosine similarity in [-1, 1]
	Metadata map[string]string
}

// Options configures the store.
type Options struct {
	// Collection names the chromem collection. Defaults to "knowledge".
	Collection string
	// EmbeddingFunc computes document and query embeddings. Defaults to the
	// OpenAI text-embedding-3-small model using OPENAI_API_KEY.
	EmbeddingFunc chromem.EmbeddingFunc
}

// Store is an in-memory vector document store.
type Store struct {
	collection *chromem.Collection
}

// NewStore creates an empty store with optional overrides.
func NewStore(optFns ...func(o *Options)) (*Store, error) {
	opts := Options{
		Collection: "knowledge",
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.EmbeddingFunc == nil {
		opts.EmbeddingFunc = chromem.NewEmbeddingFuncOpenAI(
			os.Getenv("OPENAI_API_KEY"),
			chromem.EmbeddingModelOpenAI3Small,
		)
	}

	db := chromem.NewDB()
	collection, err := db.GetOrCreateCollection(opts.Collection, nil, opts.EmbeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %q: %w", opts.Collection, err)
	}

	return &Store{collection: collection}, nil
}

// Add embeds and indexes the given documents. Documents without an ID get a
// generated one.
func (s *Store) Add(ctx context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}

	records := make([]chromem.Document, len(docs))
	for i, d := range docs {
		id := d.ID
		if id == "" {
			id = uuid.NewString()
		}
		records[i] = chromem.Document{
			ID:       id,
			Content:  d.Content,
			Metadata: d.Metadata,
		}
	}

	if err := s.collection.AddDocuments(ctx, records, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Query embeds the query text and returns up to topK results ordered by
// similarity. topK is clamped to the collection size.
func (s *Store) Query(ctx context.Context, query string, topK int) ([]Result, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}
	if topK <= 0 {
		topK = 1
	}

	hits, err := s.collection.Query(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{
			ID:       h.ID,
			Content:  h.Content,
			Score:    h.Similarity,
			Metadata: h.Metadata,
		}
	}
	return results, nil
}

// Count returns the number of indexed documents.
func (s *Store) Count() int { return s.collection.Count() }
