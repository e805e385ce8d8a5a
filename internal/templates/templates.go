// Package templates provides embedded page templates with user override support.
// Templates are loaded with resolution order:
// 1. User override: templatesDir/{name}.html.tmpl
// 2. Embedded default: internal/templates/{name}.html.tmpl
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.html.tmpl
var fs embed.FS

const extension = ".html.tmpl"

// Report is the name of the report page template.
const Report = "report"

// ReportPage is the data rendered by the report template. Layout and scripts
// are trusted HTML produced by the report builder.
type ReportPage struct {
	CompanyName string
	CompanyCode string
	CSSPath     string
	AnalyticsID string
	Layout      template.HTML
	ChartScript template.HTML
	TOCScript   template.HTML
}

// GetTemplate loads a template by name with resolution order:
// 1. User override: templatesDir/{name}.html.tmpl
// 2. Embedded default
func GetTemplate(name string, templatesDir string) (*template.Template, error) {
	if templatesDir != "" {
		userPath := filepath.Join(templatesDir, name+extension)
		if data, err := os.ReadFile(userPath); err == nil {
			return parseTemplate(name, data)
		}
	}

	data, err := GetEmbeddedTemplate(name)
	if err != nil {
		available, _ := ListEmbeddedTemplates()
		return nil, fmt.Errorf("template '%s' not found (checked user override and embedded: %s)", name, strings.Join(available, ", "))
	}
	return parseTemplate(name, data)
}

// GetEmbeddedTemplate loads raw content from embedded templates
func GetEmbeddedTemplate(name string) ([]byte, error) {
	return fs.ReadFile(name + extension)
}

// ListEmbeddedTemplates returns names of all embedded templates
func ListEmbeddedTemplates() ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), extension) {
			names = append(names, strings.TrimSuffix(entry.Name(), extension))
		}
	}
	return names, nil
}

func parseTemplate(name string, data []byte) (*template.Template, error) {
	t, err := template.New(name).Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return t, nil
}
