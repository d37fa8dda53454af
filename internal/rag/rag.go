package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/mobeloper/ai-rag-chatbot/internal/llm"
	"github.com/mobeloper/ai-rag-chatbot/internal/models"
)

// previewLen bounds the source preview shown to the caller.
const previewLen = 220

// DocumentRetriever supplies the context chunks for a question.
type DocumentRetriever interface {
	Retrieve(ctx context.Context, question string, history []models.ChatTurn) ([]models.Retrieved, error)
}

// RAG chains history-aware retrieval with grounded answer generation.
// Each stage runs under its own timeout derived from the request context, so
// a client disconnect cancels in-flight model calls.
type RAG struct {
	retriever    DocumentRetriever
	model        llm.Model
	stageTimeout time.Duration
}

func New(retriever DocumentRetriever, model llm.Model, stageTimeout time.Duration) *RAG {
	if stageTimeout <= 0 {
		stageTimeout = 60 * time.Second
	}
	return &RAG{retriever: retriever, model: model, stageTimeout: stageTimeout}
}

// Query answers the question strictly from retrieved policy chunks.
// An answer stating the policy does not address the question is a successful
// response, not an error.
func (r *RAG) Query(ctx context.Context, question string, history []models.ChatTurn) (*models.ChatResponse, error) {
	retrieveCtx, cancel := context.WithTimeout(ctx, r.stageTimeout)
	defer cancel()
	retrieved, err := r.retriever.Retrieve(retrieveCtx, question, history)
	if err != nil {
		return nil, err
	}

	answerCtx, cancel := context.WithTimeout(ctx, r.stageTimeout)
	defer cancel()
	answer, err := r.generate(answerCtx, question, history, retrieved)
	if err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Answer:  answer,
		Sources: sourcesFrom(retrieved),
	}, nil
}

func (r *RAG) generate(ctx context.Context, question string, history []models.ChatTurn, retrieved []models.Retrieved) (string, error) {
	var contextText strings.Builder
	for _, doc := range retrieved {
		contextText.WriteString(fmt.Sprintf("[page %d]\n%s\n\n", doc.Chunk.Page, doc.Chunk.Content))
	}

	msgs := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeSystem, models.AnswerPrompt)}
	msgs = append(msgs, llm.HistoryMessages(history)...)
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman,
		fmt.Sprintf(models.AnswerQuestionTemplate, question, contextText.String())))

	// Temperature pinned to the minimum: repeated identical policy questions
	// should get the same answer.
	resp, err := r.model.GenerateContent(ctx, msgs, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("answer generation returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

func sourcesFrom(retrieved []models.Retrieved) []models.SourceRef {
	sources := make([]models.SourceRef, 0, len(retrieved))
	for _, doc := range retrieved {
		preview := []rune(strings.TrimSpace(doc.Chunk.Content))
		if len(preview) > previewLen {
			preview = preview[:previewLen]
		}
		sources = append(sources, models.SourceRef{
			Page:    doc.Chunk.Page,
			Source:  doc.Chunk.Source,
			Preview: strings.TrimSpace(string(preview)),
		})
	}
	return sources
}
