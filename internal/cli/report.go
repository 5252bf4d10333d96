package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mfaias/propscope/internal/report"
)

func newReportCmd() *cobra.Command {
	var (
		out          string
		neighborhood string
		sinceDays    int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write an analysis report to a file",
		Long:  "Run the analysis and write a report. The format follows the output extension: .csv, .html or .xlsx.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(out, neighborhood, sinceDays)
		},
	}

	cmd.Flags().StringVar(&out, "out", "report.csv", "output path (.csv, .html or .xlsx)")
	cmd.Flags().StringVar(&neighborhood, "neighborhood", "", "only analyze sale listings in this neighborhood")
	cmd.Flags().IntVar(&sinceDays, "since", 0, "only use listings seen in the last N days")

	return cmd
}

func runReport(out, neighborhood string, sinceDays int) error {
	ext := strings.ToLower(filepath.Ext(out))
	if ext != ".csv" && ext != ".html" && ext != ".xlsx" {
		return fmt.Errorf("unsupported report format %q: use .csv, .html or .xlsx", ext)
	}

	results, summary, err := runAnalysis(neighborhood, sinceDays)
	if err != nil {
		return err
	}
	rep := report.New(results, summary)

	switch ext {
	case ".xlsx":
		err = report.WriteExcel(out, rep)
	default:
		var f *os.File
		f, err = os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()

		if ext == ".csv" {
			err = report.WriteCSV(f, rep)
		} else {
			err = report.WriteHTML(f, rep)
		}
	}
	if err != nil {
		return err
	}

	if !isJSON() {
		fmt.Printf("Report written to %s (%d listings, %d with metrics)\n",
			out, summary.SalesAnalyzed, summary.Usable)
	}
	return nil
}
