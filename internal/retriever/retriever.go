package retriever

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"

	"github.com/mobeloper/ai-rag-chatbot/internal/llm"
	"github.com/mobeloper/ai-rag-chatbot/internal/models"
)

// Searcher is the similarity-search surface of the persisted index.
type Searcher interface {
	Search(ctx context.Context, queryEmbedding []float32, k int) ([]models.Retrieved, error)
}

// Retriever rewrites the latest question into a standalone search query using
// the prior turns, then runs top-k similarity search with that query.
type Retriever struct {
	model    llm.Model
	embedder embeddings.Embedder
	index    Searcher
	topK     int
}

func New(model llm.Model, embedder embeddings.Embedder, index Searcher, topK int) *Retriever {
	return &Retriever{model: model, embedder: embedder, index: index, topK: topK}
}

// Rewrite asks the model for a concise search query. Self-contained
// questions come back unchanged; there is no local heuristic fallback, so a
// model failure here fails the whole request.
func (r *Retriever) Rewrite(ctx context.Context, question string, history []models.ChatTurn) (string, error) {
	if len(history) == 0 {
		return question, nil
	}

	msgs := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeSystem, models.SearchPrompt)}
	msgs = append(msgs, llm.HistoryMessages(history)...)
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, question))

	resp, err := r.model.GenerateContent(ctx, msgs, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("failed to rewrite query: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("query rewrite returned no choices")
	}
	query := strings.TrimSpace(resp.Choices[0].Content)
	if query == "" {
		return question, nil
	}
	return query, nil
}

// Retrieve runs the full history-aware retrieval: rewrite, embed, search.
func (r *Retriever) Retrieve(ctx context.Context, question string, history []models.ChatTurn) ([]models.Retrieved, error) {
	query, err := r.Rewrite(ctx, question, history)
	if err != nil {
		return nil, err
	}
	if query != question {
		log.Debug().Str("question", question).Str("query", query).Msg("Rewrote search query")
	}

	queryEmbedding, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %v", err)
	}
	return r.index.Search(ctx, queryEmbedding, r.topK)
}
