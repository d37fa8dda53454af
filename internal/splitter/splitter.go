package splitter

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/mobeloper/ai-rag-chatbot/internal/models"
	"github.com/mobeloper/ai-rag-chatbot/internal/parser"
)

// Splitter turns per-page PDF text into overlapping retrieval chunks using a
// recursive separator strategy: paragraph, then line, then space, then
// character. Overlap preserves context across chunk boundaries.
type Splitter struct {
	inner       textsplitter.RecursiveCharacter
	sourceLabel string
}

func New(chunkSize, chunkOverlap int, sourceLabel string) *Splitter {
	return &Splitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", " ", ""}),
		),
		sourceLabel: sourceLabel,
	}
}

// Split chunks every page independently so each chunk keeps its page number.
// Chunk IDs encode page and position, e.g. "p3-c2".
func (s *Splitter) Split(pages []parser.Page) ([]models.Chunk, error) {
	var chunks []models.Chunk
	for _, page := range pages {
		parts, err := s.inner.SplitText(page.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to split page %d: %v", page.Number, err)
		}
		for i, part := range parts {
			if part == "" {
				continue
			}
			chunks = append(chunks, models.Chunk{
				ID:      fmt.Sprintf("p%d-c%d", page.Number, i+1),
				Content: part,
				Page:    page.Number,
				Source:  s.sourceLabel,
			})
		}
	}
	return chunks, nil
}
