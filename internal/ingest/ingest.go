package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/mobeloper/ai-rag-chatbot/internal/config"
	"github.com/mobeloper/ai-rag-chatbot/internal/parser"
	"github.com/mobeloper/ai-rag-chatbot/internal/splitter"
	"github.com/mobeloper/ai-rag-chatbot/internal/store"
)

// Pipeline is the offline ingestion run: PDF -> pages -> overlapping chunks
// -> embeddings -> persisted vector index. Re-running always rebuilds the
// full index from the whole document.
type Pipeline struct {
	cfg      *config.Config
	embedder embeddings.Embedder
}

func NewPipeline(cfg *config.Config, embedder embeddings.Embedder) *Pipeline {
	return &Pipeline{cfg: cfg, embedder: embedder}
}

// Run ingests the PDF at pdfPath and returns the metadata of the index it
// built. A missing source file is a precondition failure, not a partial
// result.
func (p *Pipeline) Run(ctx context.Context, pdfPath string) (store.Meta, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return store.Meta{}, fmt.Errorf("source PDF not found at %s: %v", pdfPath, err)
	}

	pages, err := parser.ParsePDF(pdfPath)
	if err != nil {
		return store.Meta{}, fmt.Errorf("failed to parse PDF: %v", err)
	}
	if len(pages) == 0 {
		return store.Meta{}, fmt.Errorf("no text extracted from %s", pdfPath)
	}
	log.Info().Int("pages", len(pages)).Msg("Extracted PDF text")

	sp := splitter.New(p.cfg.RAG.ChunkSize, p.cfg.RAG.ChunkOverlap, p.cfg.RAG.SourceLabel)
	chunks, err := sp.Split(pages)
	if err != nil {
		return store.Meta{}, fmt.Errorf("failed to split document: %v", err)
	}
	log.Info().Int("chunks", len(chunks)).Msg("Split document into chunks")

	s, err := store.Build(ctx, p.cfg.RAG.IndexDir, p.cfg.RAG.Collection, chunks, p.embedder, p.cfg.OpenAI.EmbeddingModel)
	if err != nil {
		return store.Meta{}, err
	}
	return s.Meta(), nil
}
