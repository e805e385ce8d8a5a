package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTOC(t *testing.T) {
	fragment := `<h1 id="top">Title</h1>
<h2 id="a">概要</h2>
<h3 id="a1">沿革</h3>
<h3>no id</h3>
<h2 id="b">業績</h2>
<h3 id="b1">売上</h3>`

	toc, err := BuildTOC(fragment)
	require.NoError(t, err)

	want := strings.Join([]string{
		`<nav class="toc-sidebar"><ul>`,
		`<li class="toc-h2"><a href="#a">概要</a>`,
		`<ul>`,
		`<li class="toc-h3"><a href="#a1">沿革</a></li>`,
		`</ul></li>`,
		`<li class="toc-h2"><a href="#b">業績</a>`,
		`<ul>`,
		`<li class="toc-h3"><a href="#b1">売上</a></li>`,
		`</ul></li>`,
		`</ul></nav>`,
	}, "\n")
	assert.Equal(t, want, toc)
}

func TestBuildTOC_NoHeadings(t *testing.T) {
	toc, err := BuildTOC("<h1>only</h1><p>x</p>")
	require.NoError(t, err)
	assert.Empty(t, toc)
}

func TestWrapLayout(t *testing.T) {
	out := WrapLayout("<nav></nav>", "<p>body</p>")

	assert.True(t, strings.HasPrefix(out, `<button class="toc-toggle"`))
	assert.Less(t, strings.Index(out, "<nav></nav>"), strings.Index(out, `<main class="report-content">`))
	assert.True(t, strings.HasSuffix(out, "</main>\n</div>"))
}
