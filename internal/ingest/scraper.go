package ingest

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultScrapeTimeout = 30 * time.Second

// Scraper fetches portal search-result pages through a scraping proxy
// API. The proxy fetches the target URL server-side and returns the
// rendered HTML, so listing portals see the proxy rather than us.
type Scraper struct {
	client  *resty.Client
	apiBase string
	apiKey  string
}

// NewScraper creates a scraper for the given proxy API endpoint and
// key.
func NewScraper(apiBase, apiKey string) (*Scraper, error) {
	if apiBase == "" {
		return nil, fmt.Errorf("scrape API base URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("scrape API key is required")
	}

	client := resty.New()
	client.SetTimeout(defaultScrapeTimeout)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(2 * time.Second)

	return &Scraper{client: client, apiBase: apiBase, apiKey: apiKey}, nil
}

// FetchPage retrieves one target URL through the proxy and returns the
// raw HTML body.
func (s *Scraper) FetchPage(targetURL string) ([]byte, error) {
	resp, err := s.client.R().
		SetQueryParam("api_key", s.apiKey).
		SetQueryParam("url", targetURL).
		Get(s.apiBase)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", targetURL, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", targetURL, resp.StatusCode())
	}
	return resp.Body(), nil
}

// FetchResults walks paginated search results starting at searchURL
// and parses every card found. It stops at maxPages or at the first
// page with no results. A failed page logs and stops the walk rather
// than discarding pages already fetched.
func (s *Scraper) FetchResults(searchURL string, maxPages int) ([]RawRecord, error) {
	if maxPages < 1 {
		maxPages = 1
	}

	var all []RawRecord
	for page := 1; page <= maxPages; page++ {
		url := searchURL
		if page > 1 {
			url = fmt.Sprintf("%s?pagina=%d", searchURL, page)
		}

		body, err := s.FetchPage(url)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			slog.Warn("page fetch failed, stopping pagination", "page", page, "error", err)
			break
		}

		records, err := ParseSearchResults(bytes.NewReader(body), searchURL)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			break
		}
		all = append(all, records...)
		slog.Debug("fetched results page", "page", page, "records", len(records))
	}

	return all, nil
}
