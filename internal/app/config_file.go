package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to the flag namespaces.
type FileConfig struct {
	Input string `yaml:"input" json:"input"`

	Output struct {
		CSV  string `yaml:"csv" json:"csv"`
		JSON string `yaml:"json" json:"json"`
		PDF  string `yaml:"pdf" json:"pdf"`
	} `yaml:"output" json:"output"`

	Serper struct {
		Key      string        `yaml:"key" json:"key"`
		Endpoint string        `yaml:"endpoint" json:"endpoint"`
		Batch    int           `yaml:"batch" json:"batch"`
		Pause    time.Duration `yaml:"pause" json:"pause"`
		Timeout  time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"serper" json:"serper"`

	Fetch struct {
		Timeout      time.Duration `yaml:"timeout" json:"timeout"`
		UserAgent    string        `yaml:"ua" json:"ua"`
		MaxTextChars int           `yaml:"maxTextChars" json:"maxTextChars"`
	} `yaml:"fetch" json:"fetch"`

	LLM struct {
		Provider string        `yaml:"provider" json:"provider"`
		BaseURL  string        `yaml:"base" json:"base"`
		Model    string        `yaml:"model" json:"model"`
		APIKey   string        `yaml:"key" json:"key"`
		Pause    time.Duration `yaml:"pause" json:"pause"`
	} `yaml:"llm" json:"llm"`

	DryRun  bool `yaml:"dryRun" json:"dryRun"`
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields that
// are unset or still carry their flag default. Flags should already have been
// parsed; the file supplies defaults while explicitly set flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	// Defaults from flag parsing that file config may override when flags not set
	const (
		inputDefault         = "urls.txt"
		outputCSVDefault     = "seo_audit.csv"
		batchPauseDefault    = time.Second
		searchTimeoutDefault = 30 * time.Second
		fetchTimeoutDefault  = 15 * time.Second
		llmModelDefault      = "gemini-2.5-flash"
		diagnosePauseDefault = 2 * time.Second
	)

	if (cfg.InputPath == "" || cfg.InputPath == inputDefault) && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if (cfg.OutputCSV == "" || cfg.OutputCSV == outputCSVDefault) && fc.Output.CSV != "" {
		cfg.OutputCSV = fc.Output.CSV
	}
	if cfg.OutputJSON == "" && fc.Output.JSON != "" {
		cfg.OutputJSON = fc.Output.JSON
	}
	if cfg.OutputPDF == "" && fc.Output.PDF != "" {
		cfg.OutputPDF = fc.Output.PDF
	}

	if cfg.SerperKey == "" && fc.Serper.Key != "" {
		cfg.SerperKey = fc.Serper.Key
	}
	if cfg.SerperEndpoint == "" && fc.Serper.Endpoint != "" {
		cfg.SerperEndpoint = fc.Serper.Endpoint
	}
	if cfg.BatchSize == 0 && fc.Serper.Batch > 0 {
		cfg.BatchSize = fc.Serper.Batch
	}
	if (cfg.BatchPause == 0 || cfg.BatchPause == batchPauseDefault) && fc.Serper.Pause > 0 {
		cfg.BatchPause = fc.Serper.Pause
	}
	if (cfg.SearchTimeout == 0 || cfg.SearchTimeout == searchTimeoutDefault) && fc.Serper.Timeout > 0 {
		cfg.SearchTimeout = fc.Serper.Timeout
	}

	if (cfg.FetchTimeout == 0 || cfg.FetchTimeout == fetchTimeoutDefault) && fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = fc.Fetch.Timeout
	}
	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.MaxTextChars == 0 && fc.Fetch.MaxTextChars > 0 {
		cfg.MaxTextChars = fc.Fetch.MaxTextChars
	}

	if cfg.LLMProvider == "" && fc.LLM.Provider != "" {
		cfg.LLMProvider = fc.LLM.Provider
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if (cfg.LLMModel == "" || cfg.LLMModel == llmModelDefault) && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if (cfg.DiagnosePause == 0 || cfg.DiagnosePause == diagnosePauseDefault) && fc.LLM.Pause > 0 {
		cfg.DiagnosePause = fc.LLM.Pause
	}

	if !cfg.DryRun && fc.DryRun {
		cfg.DryRun = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
// For dry-run, LLM settings may be omitted.
func ValidateConfig(cfg Config) error {
	if cfg.InputPath == "" {
		return errors.New("config: input path is required")
	}
	if cfg.SerperKey == "" {
		return errors.New("config: serper.key is required (or set SERPER_API_KEY)")
	}
	if !cfg.DryRun {
		if cfg.LLMAPIKey == "" {
			return errors.New("config: llm.key is required (or set GEMINI_API_KEY / LLM_API_KEY)")
		}
		if cfg.LLMModel == "" {
			return errors.New("config: llm.model is required (or set LLM_MODEL)")
		}
	}
	if cfg.BatchSize < 0 || cfg.MaxTextChars < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.BatchPause < 0 || cfg.DiagnosePause < 0 {
		return errors.New("config: negative pauses are not allowed")
	}
	return nil
}
