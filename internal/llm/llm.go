package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/mobeloper/ai-rag-chatbot/internal/config"
)

// Model is the narrow chat-completion surface the pipeline depends on.
// *openai.LLM satisfies it.
type Model interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// NewChatModel builds the chat-completion client used for both query
// rewriting and grounded answering.
func NewChatModel(cfg *config.OpenAIConfig, apiKey string) (*openai.LLM, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(cfg.ChatModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	return openai.New(opts...)
}
