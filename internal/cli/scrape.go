package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfaias/propscope/internal/ingest"
)

func newScrapeCmd() *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "scrape <sale|rental> <search-url>",
		Short: "Scrape portal search results into the database",
		Long:  "Fetch paginated search results for the given URL through the scraping proxy API and store every listing found. Requires SCRAPE_API_URL and SCRAPE_API_KEY.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(args[0], args[1], pages)
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 3, "maximum result pages to fetch")

	return cmd
}

func runScrape(kindArg, searchURL string, pages int) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}

	scraper, err := ingest.NewScraper(os.Getenv("SCRAPE_API_URL"), os.Getenv("SCRAPE_API_KEY"))
	if err != nil {
		return err
	}

	records, err := scraper.FetchResults(searchURL, pages)
	if err != nil {
		return fmt.Errorf("scraping %s: %w", searchURL, err)
	}

	return storeRecords(records, kind)
}
