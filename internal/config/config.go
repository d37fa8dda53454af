package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
}

// OpenAIConfig configures the hosted chat-completion and embedding API.
// The credential itself is never stored in the file; it is read from the
// environment variable named by APIKeyEnv after loading a local .env.
type OpenAIConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKeyEnv      string `yaml:"api_key_env"`
	ChatModel      string `yaml:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model"`
}

// RAGConfig configures chunking, the persisted index, and retrieval.
type RAGConfig struct {
	IndexDir         string `yaml:"index_dir"`
	Collection       string `yaml:"collection"`
	ChunkSize        int    `yaml:"chunk_size"`
	ChunkOverlap     int    `yaml:"chunk_overlap"`
	TopK             int    `yaml:"top_k"`
	SourceLabel      string `yaml:"source_label"`
	StageTimeoutSecs int    `yaml:"stage_timeout_secs"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	OpenAI OpenAIConfig `yaml:"openai"`
	RAG    RAGConfig    `yaml:"rag"`
}

// LoadConfig reads the YAML config at path. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// APIKey loads a local .env (if present) and returns the API credential.
func (c *Config) APIKey() (string, error) {
	_ = godotenv.Load()
	key := os.Getenv(c.OpenAI.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("environment variable %s is not set", c.OpenAI.APIKeyEnv)
	}
	return key, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.OpenAI.APIKeyEnv == "" {
		cfg.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if cfg.OpenAI.EmbeddingModel == "" {
		cfg.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.RAG.IndexDir == "" {
		cfg.RAG.IndexDir = "hr_policy_index"
	}
	if cfg.RAG.Collection == "" {
		cfg.RAG.Collection = "hr_policy"
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = 800
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = 150
	}
	if cfg.RAG.TopK == 0 {
		cfg.RAG.TopK = 5
	}
	if cfg.RAG.SourceLabel == "" {
		cfg.RAG.SourceLabel = "Nestlé HR Policy (2012)"
	}
	if cfg.RAG.StageTimeoutSecs == 0 {
		cfg.RAG.StageTimeoutSecs = 60
	}
}
