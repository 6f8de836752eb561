package extract

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxTextChars caps the text snippet handed to the model.
const DefaultMaxTextChars = 1500

// Document is the cleaned content of a fetched page.
type Document struct {
	Title string
	Text  string
}

// FromHTML strips script/style/noscript elements, extracts the page title and
// the whitespace-normalized visible text truncated to maxChars runes.
// fallbackTitle (normally the URL) is used when the page has no usable title.
// Unparseable input degrades to an empty-text document rather than an error.
func FromHTML(body []byte, fallbackTitle string, maxChars int) Document {
	if maxChars <= 0 {
		maxChars = DefaultMaxTextChars
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Document{Title: fallbackTitle}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = fallbackTitle
	}

	doc.Find("script, style, noscript").Remove()
	text := collapseWhitespace(doc.Find("body").Text())
	if text == "" {
		// Fragments without a body element still carry text nodes.
		text = collapseWhitespace(doc.Text())
	}
	return Document{Title: title, Text: truncate(text, maxChars)}
}

// collapseWhitespace joins all runs of whitespace into single spaces and trims
// the ends, so markup structure never leaks into the prompt as blank space.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return strings.TrimRight(b.String(), " ")
}

func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
