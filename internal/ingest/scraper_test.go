package ingest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewScraperRequiresConfig(t *testing.T) {
	if _, err := NewScraper("", "key"); err == nil {
		t.Error("expected error for missing API base")
	}
	if _, err := NewScraper("https://proxy.example", ""); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("api_key"); got != "secret" {
			t.Errorf("api_key = %q", got)
		}
		if got := r.URL.Query().Get("url"); got != "https://portal.example/arrendar" {
			t.Errorf("url param = %q", got)
		}
		fmt.Fprint(w, "<html></html>")
	}))
	defer srv.Close()

	s, err := NewScraper(srv.URL, "secret")
	if err != nil {
		t.Fatalf("new scraper: %v", err)
	}
	body, err := s.FetchPage("https://portal.example/arrendar")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(body) != "<html></html>" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchPageBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	s, err := NewScraper(srv.URL, "secret")
	if err != nil {
		t.Fatalf("new scraper: %v", err)
	}
	if _, err := s.FetchPage("https://portal.example/arrendar"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestFetchResultsPaginates(t *testing.T) {
	page := func(urls ...string) string {
		html := "<html><body>"
		for _, u := range urls {
			html += fmt.Sprintf(`<article class="item"><a class="item-link" href=%q>x</a></article>`, u)
		}
		return html + "</body></html>"
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := r.URL.Query().Get("url")
		switch target {
		case "https://portal.example/comprar":
			fmt.Fprint(w, page("https://x/1", "https://x/2"))
		case "https://portal.example/comprar?pagina=2":
			fmt.Fprint(w, page("https://x/3"))
		default:
			// Page 3 is empty, ending the walk.
			fmt.Fprint(w, page())
		}
	}))
	defer srv.Close()

	s, err := NewScraper(srv.URL, "secret")
	if err != nil {
		t.Fatalf("new scraper: %v", err)
	}
	records, err := s.FetchResults("https://portal.example/comprar", 10)
	if err != nil {
		t.Fatalf("fetch results: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 across pages", len(records))
	}
}

func TestFetchResultsFirstPageFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	s, err := NewScraper(srv.URL, "secret")
	if err != nil {
		t.Fatalf("new scraper: %v", err)
	}
	if _, err := s.FetchResults("https://portal.example/comprar", 3); err == nil {
		t.Fatal("expected error when the first page fails")
	}
}
