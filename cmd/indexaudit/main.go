package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/indexaudit/internal/app"
	"github.com/hyperifyio/indexaudit/internal/serp"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Best-effort .env load so keys need not live in the shell profile.
	_ = godotenv.Load()

	var (
		inputPath      string
		outputCSV      string
		outputJSON     string
		outputPDF      string
		configPath     string
		serperKey      string
		serperEndpoint string
		batchSize      int
		batchPause     time.Duration
		searchTimeout  time.Duration
		fetchTimeout   time.Duration
		fetchUA        string
		maxTextChars   int
		llmProvider    string
		llmBaseURL     string
		llmModel       string
		llmKey         string
		diagnosePause  time.Duration
		dryRun         bool
		verbose        bool
	)

	flag.StringVar(&inputPath, "input", "urls.txt", "Path to newline-separated URL list ('-' for stdin)")
	flag.StringVar(&outputCSV, "out.csv", "seo_audit.csv", "Path to write CSV results (empty disables)")
	flag.StringVar(&outputJSON, "out.json", "", "Path to write JSON results (empty disables)")
	flag.StringVar(&outputPDF, "out.pdf", "", "Path to write a PDF report (empty disables)")
	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file")
	flag.StringVar(&serperKey, "serper.key", os.Getenv("SERPER_API_KEY"), "Serper API key")
	flag.StringVar(&serperEndpoint, "serper.endpoint", "", "Serper endpoint override")
	flag.IntVar(&batchSize, "serper.batch", 0, "URLs per batched search call (default 20)")
	flag.DurationVar(&batchPause, "serper.pause", serp.DefaultPause, "Pause after each search batch (0 disables)")
	flag.DurationVar(&searchTimeout, "serper.timeout", 30*time.Second, "Timeout per batched search call")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 15*time.Second, "Timeout per page fetch")
	flag.StringVar(&fetchUA, "fetch.ua", "", "User-Agent override for page fetches")
	flag.IntVar(&maxTextChars, "fetch.maxTextChars", 0, "Max page text characters sent to the model (default 1500)")
	flag.StringVar(&llmProvider, "llm.provider", "", "LLM provider: gemini (default) or openai")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "Base URL for OpenAI-compatible servers")
	flag.StringVar(&llmModel, "llm.model", envOr("LLM_MODEL", "gemini-2.5-flash"), "Model name")
	flag.StringVar(&llmKey, "llm.key", envOr("GEMINI_API_KEY", os.Getenv("LLM_API_KEY")), "LLM API key")
	flag.DurationVar(&diagnosePause, "llm.pause", 2*time.Second, "Pause after each diagnosis call")
	flag.BoolVar(&dryRun, "dry-run", false, "Index check only, skip AI diagnosis")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		InputPath:      inputPath,
		OutputCSV:      outputCSV,
		OutputJSON:     outputJSON,
		OutputPDF:      outputPDF,
		SerperKey:      serperKey,
		SerperEndpoint: serperEndpoint,
		BatchSize:      batchSize,
		BatchPause:     batchPause,
		SearchTimeout:  searchTimeout,
		FetchTimeout:   fetchTimeout,
		UserAgent:      fetchUA,
		MaxTextChars:   maxTextChars,
		LLMProvider:    llmProvider,
		LLMBaseURL:     llmBaseURL,
		LLMModel:       llmModel,
		LLMAPIKey:      llmKey,
		DiagnosePause:  diagnosePause,
		DryRun:         dryRun,
		Verbose:        verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
