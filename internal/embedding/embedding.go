package embedding

import (
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/mobeloper/ai-rag-chatbot/internal/config"
)

// NewEmbedder builds an embedder backed by the hosted embedding API. The
// model identifier must match the one recorded in the persisted index,
// otherwise similarity scores are meaningless.
func NewEmbedder(cfg *config.OpenAIConfig, apiKey string) (*embeddings.EmbedderImpl, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}
