package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"golang.org/x/net/html/charset"
)

// DefaultTimeout bounds one page fetch.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent impersonates a current desktop browser. Pages behind
// trivial bot filters often serve real content only to browser-like clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultReferer makes the request look like a click-through from search.
const DefaultReferer = "https://www.google.com/"

// Page is the outcome of a fetch that produced an HTTP response. A non-2xx
// status is reported here rather than as an error so callers can surface the
// code to the operator.
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the response status was 2xx.
func (p *Page) OK() bool {
	return p.StatusCode >= 200 && p.StatusCode <= 299
}

// Client issues single browser-impersonating GET requests. No retries and no
// caching; each call is one request bounded by Timeout.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	Referer    string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Get fetches rawURL and decodes the body to UTF-8 using the response charset.
// Transport-level failures are returned as errors; classify them with Classify.
func (c *Client) Get(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || !isHTTPScheme(u) {
		return nil, fmt.Errorf("unsupported URL: %q", rawURL)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	referer := c.Referer
	if referer == "" {
		referer = DefaultReferer
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", referer)

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	page := &Page{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if !page.OK() {
		// Drain so the connection can be reused; the body is not needed.
		_, _ = io.Copy(io.Discard, resp.Body)
		return page, nil
	}

	reader, err := charset.NewReader(resp.Body, page.ContentType)
	if err != nil {
		reader = resp.Body
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	page.Body = body
	return page, nil
}

// FailureKind categorizes transport errors for operator-facing messages.
type FailureKind int

const (
	FailureOther FailureKind = iota
	FailureTimeout
	FailureRefused
)

// Classify maps a fetch error to its failure category.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureOther
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return FailureRefused
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return FailureTimeout
	}
	return FailureOther
}

func isHTTPScheme(u *url.URL) bool {
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
