package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/indexaudit/internal/audit"
	"github.com/hyperifyio/indexaudit/internal/diagnose"
	"github.com/hyperifyio/indexaudit/internal/fetch"
	"github.com/hyperifyio/indexaudit/internal/llm"
	"github.com/hyperifyio/indexaudit/internal/serp"
)

// App wires the bulk index checker and the page diagnoser together for one
// operator session. Nothing crosses the component boundary except the verdict
// map, which is fully produced before the diagnosis loop reads it.
type App struct {
	cfg       Config
	checker   *serp.Checker
	diagnoser *diagnose.Diagnoser
	closeLLM  func() error
}

func New(ctx context.Context, cfg Config) (*App, error) {
	httpClient := newHTTPClient()

	provider := &serp.Serper{
		Endpoint:   cfg.SerperEndpoint,
		APIKey:     cfg.SerperKey,
		HTTPClient: httpClient,
		Timeout:    cfg.SearchTimeout,
	}
	// Pause is taken as-is: the flag default supplies the 1s pacing and an
	// explicit zero disables it.
	a := &App{
		cfg: cfg,
		checker: &serp.Checker{
			Provider:  provider,
			BatchSize: cfg.BatchSize,
			Pause:     cfg.BatchPause,
		},
	}

	if !cfg.DryRun {
		var client llm.Client
		switch cfg.LLMProvider {
		case "openai":
			client = llm.NewOpenAI(cfg.LLMAPIKey, cfg.LLMBaseURL)
		case "", "gemini":
			gemini, err := llm.NewGemini(ctx, cfg.LLMAPIKey)
			if err != nil {
				return nil, fmt.Errorf("init llm: %w", err)
			}
			client = gemini
			a.closeLLM = gemini.Close
		default:
			return nil, fmt.Errorf("unknown llm provider: %q", cfg.LLMProvider)
		}
		a.diagnoser = &diagnose.Diagnoser{
			Fetcher: &fetch.Client{
				HTTPClient: httpClient,
				UserAgent:  cfg.UserAgent,
				Timeout:    cfg.FetchTimeout,
			},
			Client:       client,
			Model:        cfg.LLMModel,
			MaxTextChars: cfg.MaxTextChars,
		}
	}
	return a, nil
}

func (a *App) Close() {
	if a.closeLLM != nil {
		_ = a.closeLLM()
	}
}

// Run executes the audit: bulk index check, sequential diagnosis of
// non-indexed URLs, table render and exports.
func (a *App) Run(ctx context.Context) error {
	urls, err := readURLList(a.cfg.InputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs in input")
	}

	log.Info().Int("urls", len(urls)).Msg("checking index status")
	verdicts := a.checker.CheckIndexBulk(ctx, urls)

	records := a.collectRecords(ctx, urls, verdicts)
	summary := audit.Summarize(records)
	log.Info().Int("indexed", summary.Indexed).Int("notIndexed", summary.NotIndexed).Msg("audit complete")

	if err := audit.WriteTable(os.Stdout, records); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return a.export(records)
}

// collectRecords walks urls in input order and diagnoses every non-indexed
// one, pacing between model calls. Dry-run skips diagnosis entirely.
func (a *App) collectRecords(ctx context.Context, urls []string, verdicts map[string]bool) []audit.Record {
	records := make([]audit.Record, 0, len(urls))
	for _, u := range urls {
		indexed := verdicts[u]
		diagnosis := audit.PlaceholderDiagnosis
		if !indexed {
			if a.diagnoser != nil {
				log.Info().Str("url", u).Msg("diagnosing")
				diagnosis = a.diagnoser.Diagnose(ctx, u)
				if a.cfg.DiagnosePause > 0 {
					time.Sleep(a.cfg.DiagnosePause)
				}
			} else {
				diagnosis = ""
			}
		}
		records = append(records, audit.Record{URL: u, Indexed: indexed, Diagnosis: diagnosis})
	}
	return records
}

func (a *App) export(records []audit.Record) error {
	if a.cfg.OutputCSV != "" {
		if err := writeFileWith(a.cfg.OutputCSV, records, audit.WriteCSV); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputCSV).Msg("wrote CSV")
	}
	if a.cfg.OutputJSON != "" {
		if err := writeFileWith(a.cfg.OutputJSON, records, audit.WriteJSON); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputJSON).Msg("wrote JSON")
	}
	if a.cfg.OutputPDF != "" {
		if err := audit.WritePDF(records, a.cfg.OutputPDF); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("out", a.cfg.OutputPDF).Msg("wrote PDF")
	}
	return nil
}

func writeFileWith(path string, records []audit.Record, write func(io.Writer, []audit.Record) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParseURLList splits a newline-separated list, trims entries and drops
// blank lines.
func ParseURLList(input string) []string {
	lines := strings.Split(input, "\n")
	urls := make([]string, 0, len(lines))
	for _, line := range lines {
		if u := strings.TrimSpace(line); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func readURLList(path string) ([]string, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return ParseURLList(string(raw)), nil
}
