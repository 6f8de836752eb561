package diagnose

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/indexaudit/internal/fetch"
)

type fakeLLM struct {
	prompt string
	reply  string
	err    error
}

func (f *fakeLLM) Generate(_ context.Context, _ string, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func newDiagnoser(hc *http.Client, timeout time.Duration, model *fakeLLM) *Diagnoser {
	return &Diagnoser{
		Fetcher: &fetch.Client{HTTPClient: hc, Timeout: timeout},
		Client:  model,
		Model:   "test-model",
	}
}

func TestDiagnose_SendsCleanedContentToModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Coming Soon</title></head>
<body><p>Launching shortly.</p><script>trackVisitors();</script></body></html>`))
	}))
	defer srv.Close()

	model := &fakeLLM{reply: "  Under construction page with no content.  "}
	d := newDiagnoser(srv.Client(), 0, model)
	got := d.Diagnose(context.Background(), srv.URL)
	if got != "Under construction page with no content." {
		t.Fatalf("diagnosis = %q", got)
	}
	for _, want := range []string{srv.URL, "Title: Coming Soon", "Launching shortly."} {
		if !strings.Contains(model.prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, model.prompt)
		}
	}
	if strings.Contains(model.prompt, "trackVisitors") {
		t.Fatalf("prompt leaked script content:\n%s", model.prompt)
	}
}

func TestDiagnose_FailureStringsAreDistinct(t *testing.T) {
	// HTTP 404
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer notFound.Close()

	// Hung server for the timeout case.
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer slow.Close()

	// Closed server for connection refused.
	refused := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	refusedURL := refused.URL
	refused.Close()

	model := &fakeLLM{reply: "unused"}
	results := map[string]string{
		"blocked": newDiagnoser(notFound.Client(), 0, model).Diagnose(context.Background(), notFound.URL),
		"timeout": newDiagnoser(slow.Client(), 50*time.Millisecond, model).Diagnose(context.Background(), slow.URL),
		"refused": newDiagnoser(nil, 0, model).Diagnose(context.Background(), refusedURL),
		"other":   newDiagnoser(nil, 0, model).Diagnose(context.Background(), "ftp://example.com"),
	}

	if results["blocked"] != "Site blocked the crawler (Status Code: 404)." {
		t.Fatalf("blocked = %q", results["blocked"])
	}
	if results["timeout"] != "Error: Connection timed out (Site is slow)." {
		t.Fatalf("timeout = %q", results["timeout"])
	}
	if results["refused"] != "Error: Connection refused (Bot protection)." {
		t.Fatalf("refused = %q", results["refused"])
	}
	if !strings.HasPrefix(results["other"], "Error: ") {
		t.Fatalf("other = %q", results["other"])
	}
	seen := map[string]bool{}
	for name, r := range results {
		if r == "" {
			t.Fatalf("%s produced empty diagnosis", name)
		}
		if seen[r] {
			t.Fatalf("duplicate diagnosis string %q", r)
		}
		seen[r] = true
	}
}

func TestDiagnose_EmptyBodyStillDiagnoses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	model := &fakeLLM{reply: "Thin content"}
	d := newDiagnoser(srv.Client(), 0, model)
	if got := d.Diagnose(context.Background(), srv.URL); got != "Thin content" {
		t.Fatalf("diagnosis = %q", got)
	}
	if !strings.Contains(model.prompt, "Title: "+srv.URL) {
		t.Fatalf("expected URL title fallback in prompt:\n%s", model.prompt)
	}
}

func TestDiagnose_ModelErrorSurfacedInBand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>fine</body></html>"))
	}))
	defer srv.Close()

	model := &fakeLLM{err: context.DeadlineExceeded}
	d := newDiagnoser(srv.Client(), 0, model)
	got := d.Diagnose(context.Background(), srv.URL)
	if !strings.HasPrefix(got, "Error: ") {
		t.Fatalf("diagnosis = %q", got)
	}
}
