package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/philippgille/chromem-go"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/mobeloper/ai-rag-chatbot/internal/models"
)

const (
	metaFile   = "meta.json"
	chromemDir = "chromem"
	compress   = false
)

// Meta records the identity of the index so the serving process can refuse
// to query with a mismatched embedding model instead of returning
// meaningless similarity scores.
type Meta struct {
	EmbeddingModel string    `json:"embedding_model"`
	Dimension      int       `json:"dimension"`
	SourceLabel    string    `json:"source_label"`
	Chunks         int       `json:"chunks"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store wraps a persistent chromem-go collection plus its sidecar metadata.
// Write-once at ingestion, read-only while serving.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	meta       Meta
}

// Build rebuilds the index directory from scratch: any prior index at dir is
// removed, every chunk is embedded, and the vectors are persisted together
// with the index metadata.
func Build(ctx context.Context, dir, collectionName string, chunks []models.Chunk, embedder embeddings.Embedder, embeddingModel string) (*Store, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks to index")
	}
	if err := os.RemoveAll(dir); err != nil {
		return nil, fmt.Errorf("failed to clear index directory: %v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %v", err)
	}

	db, err := chromem.NewPersistentDB(filepath.Join(dir, chromemDir), compress)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %v", err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %v", err)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %v", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedded %d of %d chunks", len(vectors), len(chunks))
	}

	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = chromem.Document{
			ID:      c.ID,
			Content: c.Content,
			Metadata: map[string]string{
				"page":   strconv.Itoa(c.Page),
				"source": c.Source,
			},
			Embedding: vectors[i],
		}
	}
	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("failed to add documents: %v", err)
	}

	meta := Meta{
		EmbeddingModel: embeddingModel,
		Dimension:      len(vectors[0]),
		SourceLabel:    chunks[0].Source,
		Chunks:         len(chunks),
		CreatedAt:      time.Now().UTC(),
	}
	if err := writeMeta(dir, meta); err != nil {
		return nil, err
	}

	return &Store{db: db, collection: collection, meta: meta}, nil
}

// Open loads a previously built index and validates that it was built with
// the embedding model the caller is about to query with. A mismatch is fatal
// here rather than undefined behavior at query time.
func Open(dir, collectionName, embeddingModel string) (*Store, error) {
	meta, err := readMeta(dir)
	if err != nil {
		return nil, err
	}
	if meta.EmbeddingModel != embeddingModel {
		return nil, fmt.Errorf("index was built with embedding model %q, server is configured with %q", meta.EmbeddingModel, embeddingModel)
	}

	db, err := chromem.NewPersistentDB(filepath.Join(dir, chromemDir), compress)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	collection := db.GetCollection(collectionName, nil)
	if collection == nil {
		return nil, fmt.Errorf("collection %q not found in %s", collectionName, dir)
	}
	if collection.Count() != meta.Chunks {
		return nil, fmt.Errorf("index holds %d chunks, metadata records %d", collection.Count(), meta.Chunks)
	}
	return &Store{db: db, collection: collection, meta: meta}, nil
}

// Search returns the k nearest chunks for the query embedding, most relevant
// first. k is clamped to the collection size.
func (s *Store) Search(ctx context.Context, queryEmbedding []float32, k int) ([]models.Retrieved, error) {
	if len(queryEmbedding) != s.meta.Dimension {
		return nil, fmt.Errorf("query embedding has dimension %d, index expects %d", len(queryEmbedding), s.meta.Dimension)
	}
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}
	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	retrieved := make([]models.Retrieved, 0, len(results))
	for _, r := range results {
		page, _ := strconv.Atoi(r.Metadata["page"])
		retrieved = append(retrieved, models.Retrieved{
			Chunk: models.Chunk{
				ID:      r.ID,
				Content: r.Content,
				Page:    page,
				Source:  r.Metadata["source"],
			},
			Similarity: r.Similarity,
		})
	}
	return retrieved, nil
}

// Count reports the number of indexed chunks.
func (s *Store) Count() int { return s.collection.Count() }

// Meta returns the index metadata recorded at build time.
func (s *Store) Meta() Meta { return s.meta }

func writeMeta(dir string, meta Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index metadata: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metaFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write index metadata: %v", err)
	}
	return nil
}

func readMeta(dir string) (Meta, error) {
	var meta Meta
	data, err := os.ReadFile(filepath.Join(dir, metaFile))
	if err != nil {
		return meta, fmt.Errorf("failed to read index metadata (did ingestion run?): %v", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("failed to parse index metadata: %v", err)
	}
	return meta, nil
}
