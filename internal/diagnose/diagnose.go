// Package diagnose explains why a non-indexed page might be excluded from
// search results: it fetches the live page, cleans the HTML down to a bounded
// snippet and asks a generative model for a one-line likely reason.
package diagnose

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/indexaudit/internal/extract"
	"github.com/hyperifyio/indexaudit/internal/fetch"
	"github.com/hyperifyio/indexaudit/internal/llm"
)

// Diagnoser runs the crawl-then-diagnose pipeline for a single URL.
type Diagnoser struct {
	Fetcher *fetch.Client
	Client  llm.Client
	Model   string
	// MaxTextChars caps the page text passed to the model.
	// Zero means extract.DefaultMaxTextChars.
	MaxTextChars int
}

// Diagnose returns a short free-text explanation for url. Every failure mode
// degrades to a distinguishable result string; the method never propagates an
// error past its boundary.
func (d *Diagnoser) Diagnose(ctx context.Context, url string) string {
	page, err := d.Fetcher.Get(ctx, url)
	if err != nil {
		switch fetch.Classify(err) {
		case fetch.FailureTimeout:
			return "Error: Connection timed out (Site is slow)."
		case fetch.FailureRefused:
			return "Error: Connection refused (Bot protection)."
		default:
			return fmt.Sprintf("Error: %v", err)
		}
	}
	if !page.OK() {
		return fmt.Sprintf("Site blocked the crawler (Status Code: %d).", page.StatusCode)
	}

	doc := extract.FromHTML(page.Body, url, d.MaxTextChars)
	answer, err := d.Client.Generate(ctx, d.Model, buildPrompt(url, doc))
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("diagnosis model call failed")
		return fmt.Sprintf("Error: %v", err)
	}
	return strings.TrimSpace(answer)
}

func buildPrompt(url string, doc extract.Document) string {
	var sb strings.Builder
	sb.WriteString("Analyze this web page for SEO indexing issues.\n")
	sb.WriteString("URL: ")
	sb.WriteString(url)
	sb.WriteString("\nContent Extracted:\nTitle: ")
	sb.WriteString(doc.Title)
	sb.WriteString("\nPage Text Snippet: ")
	sb.WriteString(doc.Text)
	sb.WriteString("\n\nTask: The page is NOT indexed by Google. Based on the content above, ")
	sb.WriteString("give 1 likely technical or content reason (e.g., 'Thin content', 'Under construction', 'Login wall', 'Technical error'). ")
	sb.WriteString("Keep it under 15 words.")
	return sb.String()
}
