// Package renderer turns the books into Markdown.
//
// Screens are built with a Markdown builder, printed documents (receipts and
// purchase slips) come from the templates embedded in templates/.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/smartbiz"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

// DateLayout formats transaction dates.
const DateLayout = "02/01/2006 15:04"

// renderTemplate renders the main template file with data. Partials are
// parsed under their alias.
func renderTemplate(templateName, mainFile string, partials map[string]string, funcs template.FuncMap, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// cell escapes s for a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func formatDate(t time.Time) string { return t.Format(DateLayout) }

// counterpart is the contact name of tx, or a dash.
func counterpart(tx smartbiz.Transaction) string {
	if tx.ContactName == "" {
		return "-"
	}
	return cell(tx.ContactName)
}

// amount formats d, or a dash when zero.
func amount(d decimal.Decimal, cur string) string {
	if d.IsZero() {
		return "-"
	}
	return smartbiz.Format(d, cur)
}
