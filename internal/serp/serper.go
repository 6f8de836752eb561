package serp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultEndpoint is the Serper batched search endpoint.
const DefaultEndpoint = "https://google.serper.dev/search"

// DefaultTimeout bounds one batched search call.
const DefaultTimeout = 30 * time.Second

// Organic is a single organic hit inside a result set.
type Organic struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}

// Result is one result set, corresponding positionally to one submitted query.
type Result struct {
	Organic []Organic `json:"organic"`
}

// Provider is a minimal interface for a batched search backend. Implementations
// must return one result set per submitted query, in submission order; a short
// response is the caller's problem to handle.
type Provider interface {
	BatchSearch(ctx context.Context, queries []string) ([]Result, error)
	Name() string
}

// Serper implements Provider against the Serper.dev batched search API.
type Serper struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
	// Timeout bounds each batched call. Zero means DefaultTimeout.
	Timeout time.Duration
}

func (s *Serper) Name() string { return "serper" }

type serperQuery struct {
	Q string `json:"q"`
}

// BatchSearch submits all queries as a single POST and decodes the array
// response. A non-2xx status or a malformed body is returned as an error.
func (s *Serper) BatchSearch(ctx context.Context, queries []string) ([]Result, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("missing serper api key")
	}
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	payload := make([]serperQuery, len(queries))
	for i, q := range queries {
		payload[i] = serperQuery{Q: q}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode queries: %w", err)
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	hc := s.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("serper status: %d", resp.StatusCode)
	}
	var sets []Result
	if err := json.NewDecoder(resp.Body).Decode(&sets); err != nil {
		return nil, fmt.Errorf("decode serper response: %w", err)
	}
	return sets, nil
}
