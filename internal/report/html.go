package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// WriteHTML renders the report as a standalone HTML page.
func WriteHTML(w io.Writer, rep Report) error {
	funcMap := template.FuncMap{
		"money":   tmplMoney,
		"pct":     tmplPct,
		"num":     tmplNum,
		"str":     derefStr,
		"orDash":  tmplOrDash,
		"roomFmt": tmplRoom,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("parsing report templates: %w", err)
	}
	if err := tmpl.ExecuteTemplate(w, "report.html", rep); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

func tmplMoney(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("€%.0f", *v)
}

func tmplPct(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f%%", *v)
}

func tmplNum(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.0f", *v)
}

func tmplOrDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func tmplRoom(v *int) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("T%d", *v)
}
