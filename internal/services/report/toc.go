package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BuildTOC returns a sidebar nav listing h2 headings with their h3 children.
// Headings without an id are left out; "" when the fragment has none.
func BuildTOC(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse report HTML: %w", err)
	}

	headings := doc.Find("h2, h3")
	if headings.Length() == 0 {
		return "", nil
	}

	var items []string
	inGroup := false
	headings.Each(func(_ int, h *goquery.Selection) {
		id, ok := h.Attr("id")
		if !ok || id == "" {
			return
		}
		link := fmt.Sprintf(`<a href="#%s">%s</a>`, html.EscapeString(id), html.EscapeString(strings.TrimSpace(h.Text())))

		if goquery.NodeName(h) == "h2" {
			if inGroup {
				items = append(items, "</ul></li>")
			}
			items = append(items, `<li class="toc-h2">`+link, "<ul>")
			inGroup = true
			return
		}
		items = append(items, `<li class="toc-h3">`+link+`</li>`)
	})
	if inGroup {
		items = append(items, "</ul></li>")
	}

	return "<nav class=\"toc-sidebar\"><ul>\n" + strings.Join(items, "\n") + "\n</ul></nav>", nil
}

// WrapLayout places the TOC and report body in the two-column layout.
func WrapLayout(toc, body string) string {
	return strings.Join([]string{
		`<button class="toc-toggle" aria-label="目次を開く">&#9776;</button>`,
		`<div class="toc-overlay"></div>`,
		`<div class="layout-wrapper">`,
		toc,
		`<main class="report-content">`,
		body,
		`</main>`,
		`</div>`,
	}, "\n")
}
