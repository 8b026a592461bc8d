package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/fifotax"
)

//go:embed templates/*.md
var templates embed.FS

// TaxYearRenderOptions holds configuration for rendering a tax year report.
type TaxYearRenderOptions struct {
	Details bool // Render the lot matches of every disposal.
}

// RenderGains renders the overview of every fiscal year of the state.
func RenderGains(s *fifotax.PortfolioState) string {
	partials := map[string]string{
		"gains_years":    "gains_years.md",
		"gains_holdings": "gains_holdings.md",
		"warnings":       "warnings.md",
	}
	return renderTemplate("gains", "gains.md", partials, newGainsView(s))
}

// RenderTaxYear renders the report of a single fiscal year.
func RenderTaxYear(s *fifotax.PortfolioState, fy *fifotax.FiscalYearSummary, opts TaxYearRenderOptions) string {
	partials := map[string]string{
		"tax_year_summary": "tax_year_summary.md",
		"tax_year_coins":   "tax_year_coins.md",
		"warnings":         "warnings.md",
	}
	if opts.Details {
		partials["tax_year_disposals"] = "tax_year_disposals_details.md"
	} else {
		partials["tax_year_disposals"] = "tax_year_disposals.md"
	}
	return renderTemplate("taxYear", "tax_year.md", partials, newTaxYearView(s, fy))
}

var funcs = template.FuncMap{
	"money":  func(m fifotax.Money) string { return m.String() },
	"signed": func(m fifotax.Money) string { return m.SignedString() },
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, "templates/"+file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
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
