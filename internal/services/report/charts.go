package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Chart placement relative to its section heading.
const (
	PositionBeforeSection = "before_section"
	PositionAfterSection  = "after_section"
	PositionAfterTable    = "after_table"
)

const (
	defaultChartID     = "chart"
	defaultChartHeight = 400
	echartsCDN         = "https://cdn.jsdelivr.net/npm/echarts@5/dist/echarts.min.js"
	headingSelector    = "h1, h2, h3, h4, h5, h6"
)

// ChartConfig is the optional chart_config.json next to report.md.
type ChartConfig struct {
	CompanyName string  `json:"company_name"`
	CompanyCode string  `json:"company_code"`
	Charts      []Chart `json:"charts"`
}

// Chart describes one ECharts chart and where it goes in the report.
type Chart struct {
	ID             string          `json:"id"`
	SectionHeading string          `json:"section_heading"`
	Position       string          `json:"position"`
	Title          string          `json:"title"`
	Note           string          `json:"note"`
	Height         *float64        `json:"height"`
	EChartsOption  json.RawMessage `json:"echarts_option"`
}

func (c Chart) id() string {
	if c.ID == "" {
		return defaultChartID
	}
	return c.ID
}

func (c Chart) height() float64 {
	if c.Height == nil {
		return defaultChartHeight
	}
	return *c.Height
}

// InjectCharts inserts a container div for each chart next to its section
// heading. Charts whose heading is not found are returned as skipped.
func InjectCharts(fragment string, charts []Chart) (string, []Chart, error) {
	if len(charts) == 0 {
		return fragment, nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse report HTML: %w", err)
	}
	body := doc.Find("body")
	headings := body.Find(headingSelector)

	var skipped []Chart
	for _, chart := range charts {
		target := findHeading(headings, chart.SectionHeading)
		if target == nil {
			skipped = append(skipped, chart)
			continue
		}

		div := chartDiv(chart)
		switch chart.Position {
		case PositionBeforeSection:
			target.BeforeHtml(div)
		case PositionAfterSection:
			if next := target.NextAllFiltered(headingSelector).First(); next.Length() > 0 {
				next.BeforeHtml(div)
			} else {
				body.AppendHtml(div)
			}
		default:
			if table := nextTable(target); table != nil {
				table.AfterHtml(div)
			} else {
				target.AfterHtml(div)
			}
		}
	}

	out, err := body.Html()
	if err != nil {
		return "", nil, fmt.Errorf("failed to render report HTML: %w", err)
	}
	return out, skipped, nil
}

// findHeading matches heading text exactly first, then by substring.
func findHeading(headings *goquery.Selection, text string) *goquery.Selection {
	for i := range headings.Nodes {
		h := headings.Eq(i)
		if strings.TrimSpace(h.Text()) == text {
			return h
		}
	}
	for i := range headings.Nodes {
		h := headings.Eq(i)
		if strings.Contains(strings.TrimSpace(h.Text()), text) {
			return h
		}
	}
	return nil
}

// nextTable returns the first table sibling after heading, or nil when another
// heading comes first.
func nextTable(heading *goquery.Selection) *goquery.Selection {
	var table *goquery.Selection
	heading.NextAll().EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Is(headingSelector) {
			return false
		}
		if goquery.NodeName(s) == "table" {
			table = s
			return false
		}
		return true
	})
	return table
}

func chartDiv(c Chart) string {
	parts := []string{`<div class="chart-container">`}
	if c.Title != "" {
		parts = append(parts, `  <div class="chart-title">`+c.Title+`</div>`)
	}
	if c.Note != "" {
		parts = append(parts, `  <div class="chart-note">`+c.Note+`</div>`)
	}
	parts = append(parts, fmt.Sprintf(`  <div id="%s" class="chart-box" style="height:%spx;"></div>`,
		html.EscapeString(c.id()), strconv.FormatFloat(c.height(), 'f', -1, 64)))
	parts = append(parts, `</div>`)
	return strings.Join(parts, "\n")
}

// BuildEChartsScript returns the script tags initialising every chart that has
// a non-empty option. It returns "" when there are no charts.
func BuildEChartsScript(charts []Chart) (string, error) {
	if len(charts) == 0 {
		return "", nil
	}

	lines := []string{
		`<script src="` + echartsCDN + `"></script>`,
		"<script>",
		"document.addEventListener('DOMContentLoaded', function() {",
	}

	for _, chart := range charts {
		if emptyOption(chart.EChartsOption) {
			continue
		}
		var indented, option bytes.Buffer
		if err := json.Indent(&indented, chart.EChartsOption, "    ", "  "); err != nil {
			return "", fmt.Errorf("chart %s: invalid echarts_option: %w", chart.id(), err)
		}
		// Escapes < > & inside strings so "</script>" cannot close the tag
		json.HTMLEscape(&option, indented.Bytes())
		id, err := json.Marshal(chart.id())
		if err != nil {
			return "", fmt.Errorf("chart %s: %w", chart.id(), err)
		}
		lines = append(lines,
			"  (function() {",
			"    var el = document.getElementById("+string(id)+");",
			"    if (!el) return;",
			"    var chart = echarts.init(el);",
			"    var option = "+option.String()+";",
			"    chart.setOption(option);",
			"    window.addEventListener('resize', function() { chart.resize(); });",
			"  })();",
		)
	}

	lines = append(lines, "});", "</script>")
	return strings.Join(lines, "\n"), nil
}

// emptyOption reports whether raw is missing or a JSON zero value.
func emptyOption(raw json.RawMessage) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}
