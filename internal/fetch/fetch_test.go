package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGet_SendsBrowserHeaders(t *testing.T) {
	var gotUA, gotReferer, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotReferer = r.Header.Get("Referer")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client()}
	page, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !page.OK() {
		t.Fatalf("status = %d", page.StatusCode)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Fatalf("user agent = %q", gotUA)
	}
	if gotReferer != DefaultReferer {
		t.Fatalf("referer = %q", gotReferer)
	}
	if !strings.Contains(gotAccept, "text/html") {
		t.Fatalf("accept = %q", gotAccept)
	}
	if !strings.Contains(string(page.Body), "ok") {
		t.Fatalf("body = %q", page.Body)
	}
}

func TestGet_NonSuccessStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client()}
	page, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if page.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", page.StatusCode)
	}
}

func TestGet_RejectsNonHTTPSchemes(t *testing.T) {
	c := &Client{}
	if _, err := c.Get(context.Background(), "ftp://example.com/file"); err == nil {
		t.Fatal("expected error for ftp scheme")
	}
	if _, err := c.Get(context.Background(), "not a url"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestClassify_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := &Client{HTTPClient: srv.Client(), Timeout: 50 * time.Millisecond}
	_, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if kind := Classify(err); kind != FailureTimeout {
		t.Fatalf("classify = %v, want FailureTimeout (%v)", kind, err)
	}
}

func TestClassify_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close()

	c := &Client{}
	_, err := c.Get(context.Background(), target)
	if err == nil {
		t.Fatal("expected connection error")
	}
	if kind := Classify(err); kind != FailureRefused {
		t.Fatalf("classify = %v, want FailureRefused (%v)", kind, err)
	}
}

func TestClassify_Other(t *testing.T) {
	if kind := Classify(context.Canceled); kind != FailureOther {
		t.Fatalf("classify = %v, want FailureOther", kind)
	}
}
