package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors used on portal search-result pages. The portals render
// each result as an article card with a link, a price tag and a
// detail line.
const (
	selCard     = "article.item"
	selLink     = "a.item-link"
	selPrice    = ".item-price"
	selDetail   = ".item-detail"
	selLocation = ".item-location"
)

// ParseSearchResults extracts raw records from one search-result page.
// Cards without a link are skipped; everything else is captured as-is
// for later materialization.
func ParseSearchResults(r io.Reader, baseURL string) ([]RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing search page: %w", err)
	}

	var records []RawRecord
	doc.Find(selCard).Each(func(_ int, card *goquery.Selection) {
		link := card.Find(selLink)
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		var details []string
		card.Find(selDetail).Each(func(_ int, d *goquery.Selection) {
			details = append(details, strings.TrimSpace(d.Text()))
		})

		records = append(records, RawRecord{
			URL:          absoluteURL(baseURL, strings.TrimSpace(href)),
			Title:        strings.TrimSpace(link.Text()),
			PriceText:    strings.TrimSpace(card.Find(selPrice).First().Text()),
			LocationText: strings.TrimSpace(card.Find(selLocation).First().Text()),
			DetailsText:  strings.Join(details, " "),
		})
	})

	return records, nil
}

// absoluteURL prefixes relative hrefs with the portal base URL.
func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(href, "/")
}
