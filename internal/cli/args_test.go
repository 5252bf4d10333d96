package cli

import (
	"testing"
)

func TestImportRequiresKindAndFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{"import"}},
		{"kind only", []string{"import", "sale"}},
		{"extra args", []string{"import", "sale", "a.csv", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(tt.args...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestImportRejectsUnknownKind(t *testing.T) {
	_, err := executeCommand("import", "auction", "a.csv")
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestScrapeRequiresKindAndURL(t *testing.T) {
	if _, err := executeCommand("scrape"); err == nil {
		t.Fatal("expected error when args missing")
	}
	if _, err := executeCommand("scrape", "rental"); err == nil {
		t.Fatal("expected error when url missing")
	}
}

func TestScrapeRejectsUnknownKind(t *testing.T) {
	_, err := executeCommand("scrape", "auction", "https://portal.example/comprar")
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestAnalyzeRejectsArgs(t *testing.T) {
	if _, err := executeCommand("analyze", "extra"); err == nil {
		t.Fatal("expected error for extra args")
	}
}

func TestReportRejectsUnknownExtension(t *testing.T) {
	_, err := executeCommand("report", "--out", "report.pdf")
	if err == nil {
		t.Fatal("expected error for unsupported report format")
	}
}

func TestListRequiresKind(t *testing.T) {
	if _, err := executeCommand("list"); err == nil {
		t.Fatal("expected error when kind missing")
	}
	if _, err := executeCommand("list", "auction"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestStatsRejectsArgs(t *testing.T) {
	if _, err := executeCommand("stats", "extra"); err == nil {
		t.Fatal("expected error for extra args")
	}
}
