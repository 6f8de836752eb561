package app

import "time"

// Config holds runtime configuration for an audit run. Credentials live here
// explicitly; there is no process-wide credential state.
type Config struct {
	// InputPath points at a newline-separated URL list. "-" reads stdin.
	InputPath string

	// Outputs. Empty paths disable the corresponding export.
	OutputCSV  string
	OutputJSON string
	OutputPDF  string

	// Search backend
	SerperKey      string
	SerperEndpoint string
	BatchSize      int
	BatchPause     time.Duration
	SearchTimeout  time.Duration

	// Page fetch
	FetchTimeout time.Duration
	UserAgent    string
	MaxTextChars int

	// LLM
	LLMProvider string // "gemini" (default) or "openai"
	LLMBaseURL  string
	LLMModel    string
	LLMAPIKey   string
	// DiagnosePause is slept after every diagnosis that actually ran.
	DiagnosePause time.Duration

	// Behavior
	DryRun  bool // index check only, no model calls
	Verbose bool
}
