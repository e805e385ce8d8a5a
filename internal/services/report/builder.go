// Package report assembles report.md and an optional chart_config.json into a
// standalone report.html with a TOC sidebar and ECharts charts.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/corporate-reports/internal/common"
	"github.com/ternarybob/corporate-reports/internal/templates"
)

// ErrReportNotFound is returned when the report directory has no report.md.
var ErrReportNotFound = errors.New("report.md not found")

const (
	ReportFile      = "report.md"
	ChartConfigFile = "chart_config.json"
	OutputFile      = "report.html"

	DefaultCSSPath       = "../../assets/report.css"
	DefaultTOCScriptPath = "../../assets/toc.js"

	fallbackCompanyName = "企業"
	fallbackCompanyCode = "0000"
)

// BuildOptions controls a single build.
type BuildOptions struct {
	NoCharts      bool
	NoTOC         bool
	CSSPath       string // default DefaultCSSPath
	TOCScriptPath string // default DefaultTOCScriptPath
	AnalyticsID   string // optional gtag measurement ID
	TemplatesDir  string // optional override directory for report.html.tmpl
}

// Builder renders report directories to HTML.
type Builder struct {
	logger arbor.ILogger
}

// NewBuilder creates a new report Builder. A nil logger uses the global default.
func NewBuilder(logger arbor.ILogger) *Builder {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &Builder{
		logger: logger,
	}
}

// Build writes reportDir/report.html and returns its path.
func (b *Builder) Build(reportDir string, opts BuildOptions) (string, error) {
	mdPath := filepath.Join(reportDir, ReportFile)
	src, err := os.ReadFile(mdPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrReportNotFound, mdPath)
		}
		return "", fmt.Errorf("failed to read %s: %w", mdPath, err)
	}

	md := string(src)
	companyName, companyCode := ExtractMeta(md)

	body, err := RenderMarkdown(md)
	if err != nil {
		return "", err
	}

	var charts []Chart
	if !opts.NoCharts {
		cfg, err := loadChartConfig(filepath.Join(reportDir, ChartConfigFile))
		if err != nil {
			return "", err
		}
		if cfg != nil {
			charts = cfg.Charts
			if cfg.CompanyName != "" {
				companyName = cfg.CompanyName
			}
			if cfg.CompanyCode != "" {
				companyCode = cfg.CompanyCode
			}
		}
	}

	if len(charts) > 0 {
		var skipped []Chart
		body, skipped, err = InjectCharts(body, charts)
		if err != nil {
			return "", err
		}
		for _, c := range skipped {
			b.logger.Warn().
				Str("section_heading", c.SectionHeading).
				Str("chart", c.id()).
				Msg("Section heading not found, skipping chart")
		}
	}

	layout := body
	tocScript := ""
	if !opts.NoTOC {
		toc, err := BuildTOC(body)
		if err != nil {
			return "", err
		}
		layout = WrapLayout(toc, body)
		tocScript = fmt.Sprintf(`<script src="%s"></script>`, template.HTMLEscapeString(orDefault(opts.TOCScriptPath, DefaultTOCScriptPath)))
	}

	chartScript, err := BuildEChartsScript(charts)
	if err != nil {
		return "", err
	}

	tmpl, err := templates.GetTemplate(templates.Report, opts.TemplatesDir)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	err = tmpl.Execute(&out, templates.ReportPage{
		CompanyName: companyName,
		CompanyCode: companyCode,
		CSSPath:     orDefault(opts.CSSPath, DefaultCSSPath),
		AnalyticsID: opts.AnalyticsID,
		Layout:      template.HTML(layout),
		ChartScript: template.HTML(chartScript),
		TOCScript:   template.HTML(tocScript),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render report page: %w", err)
	}

	outputPath := filepath.Join(reportDir, OutputFile)
	if err := os.WriteFile(outputPath, []byte(out.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	b.logger.Debug().
		Str("path", outputPath).
		Int("charts", len(charts)).
		Bool("toc", !opts.NoTOC).
		Msg("Report built")

	return outputPath, nil
}

var titlePattern = regexp.MustCompile(`(?m)^#\s+(.+?)（(\d{4})）`)

// ExtractMeta reads the company name and 4-digit code from the first
// "# Name（1234）" heading, falling back to 企業 / 0000.
func ExtractMeta(md string) (name, code string) {
	if m := titlePattern.FindStringSubmatch(md); m != nil {
		return m[1], m[2]
	}
	return fallbackCompanyName, fallbackCompanyCode
}

// loadChartConfig returns nil when the file does not exist.
func loadChartConfig(path string) (*ChartConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg ChartConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
