package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mobeloper/ai-rag-chatbot/internal/config"
	"github.com/mobeloper/ai-rag-chatbot/internal/embedding"
	"github.com/mobeloper/ai-rag-chatbot/internal/llm"
	"github.com/mobeloper/ai-rag-chatbot/internal/rag"
	"github.com/mobeloper/ai-rag-chatbot/internal/retriever"
	"github.com/mobeloper/ai-rag-chatbot/internal/server"
	"github.com/mobeloper/ai-rag-chatbot/internal/store"
)

// The standalone variant serves an inline chat page and keeps conversation
// history in-process, one sequence per session id.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", "./configs/config.yaml", "Path to the config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	apiKey, err := cfg.APIKey()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading API credential")
	}

	embedder, err := embedding.NewEmbedder(&cfg.OpenAI, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	chatModel, err := llm.NewChatModel(&cfg.OpenAI, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing chat model")
	}

	index, err := store.Open(cfg.RAG.IndexDir, cfg.RAG.Collection, cfg.OpenAI.EmbeddingModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening vector index")
	}

	ret := retriever.New(chatModel, embedder, index, cfg.RAG.TopK)
	pipeline := rag.New(ret, chatModel, time.Duration(cfg.RAG.StageTimeoutSecs)*time.Second)

	gin.SetMode(cfg.Server.Mode)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: server.NewStandaloneRouter(pipeline, server.NewSessionStore()),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Standalone chat service listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown failed")
	}
}
