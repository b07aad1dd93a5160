// Package vectorstore persists chunk embeddings in an on-disk
// chromem-go collection with exact-match metadata filtering.
package vectorstore

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"

	"github.com/adityakp-dev/Acadex/internal/core"
)

const collectionName = "academic_docs"

// Store wraps one persistent cosine-distance collection.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedder   core.EmbeddingProvider
}

// NewStore opens (or creates) the collection at path. The embedding
// provider is used both for stored chunks and for query embedding.
func NewStore(path string, embedder core.EmbeddingProvider) (*Store, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector db: %w", err)
	}

	embedOne := func(ctx context.Context, text string) ([]float32, error) {
		vecs, err := embedder.EmbedTexts(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vecs) == 0 {
			return nil, fmt.Errorf("embedding provider returned no vector")
		}
		return vecs[0], nil
	}

	collection, err := db.GetOrCreateCollection(
		collectionName,
		map[string]string{"hnsw:space": "cosine"},
		embedOne,
	)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}

	return &Store{db: db, collection: collection, embedder: embedder}, nil
}

var _ core.VectorIndex = (*Store)(nil)

// Upsert embeds all texts in one provider call and stores them keyed by
// id. A record with an existing id is overwritten in place.
func (s *Store) Upsert(ctx context.Context, ids []string, texts []string, metadatas []map[string]string) error {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) != len(texts) || len(ids) != len(metadatas) {
		return fmt.Errorf("upsert: ids/texts/metadatas length mismatch (%d/%d/%d)", len(ids), len(texts), len(metadatas))
	}

	vecs, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(vecs) != len(texts) {
		return fmt.Errorf("embed chunks: got %d vectors for %d texts", len(vecs), len(texts))
	}

	docs := make([]chromem.Document, len(ids))
	for i := range ids {
		docs[i] = chromem.Document{
			ID:        ids[i],
			Content:   texts[i],
			Embedding: vecs[i],
			Metadata:  metadatas[i],
		}
	}

	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("store chunks: %w", err)
	}
	return nil
}

// Query embeds the question and returns up to topK records matching the
// where filter, ranked by ascending cosine distance.
func (s *Store) Query(ctx context.Context, question string, where map[string]string, topK int) ([]core.Record, error) {
	n := topK
	if total := s.collection.Count(); n > total {
		n = total
	}
	if n <= 0 {
		return nil, nil
	}

	results, err := s.collection.Query(ctx, question, n, where, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	records := make([]core.Record, 0, len(results))
	for _, r := range results {
		records = append(records, core.Record{
			ID:       r.ID,
			Content:  r.Content,
			Metadata: r.Metadata,
			Distance: 1 - r.Similarity,
		})
	}
	return records, nil
}

// Count reports the number of stored records.
func (s *Store) Count() int {
	return s.collection.Count()
}
