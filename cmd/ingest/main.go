package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mobeloper/ai-rag-chatbot/internal/config"
	"github.com/mobeloper/ai-rag-chatbot/internal/embedding"
	"github.com/mobeloper/ai-rag-chatbot/internal/helper"
	"github.com/mobeloper/ai-rag-chatbot/internal/ingest"
)

const defaultPDFPath = "./the_nestle_hr_policy_pdf_2012.pdf"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", "./configs/config.yaml", "Path to the config file")
	pdfPath := flag.String("file", defaultPDFPath, "Path to the source PDF")
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

	pipeline := ingest.NewPipeline(cfg, embedder)
	meta, err := pipeline.Run(context.Background(), *pdfPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	helper.PrettyPrint(meta)
	log.Info().
		Int("chunks", meta.Chunks).
		Str("index_dir", cfg.RAG.IndexDir).
		Msg("Ingestion complete")
}
