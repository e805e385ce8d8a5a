package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// RenderMarkdown converts report markdown to an HTML fragment. A leading
// navigation line (one starting with "[") is dropped.
func RenderMarkdown(src string) (string, error) {
	if strings.HasPrefix(src, "[") {
		if i := strings.IndexByte(src, '\n'); i >= 0 {
			src = src[i+1:]
		} else {
			src = ""
		}
	}

	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := markdown.Convert([]byte(src), &buf, parser.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// headingIDs generates heading anchors with Slugify and makes them unique
// within a document by appending _1, _2, ...
type headingIDs struct {
	used map[string]bool
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: map[string]bool{}}
}

var idCount = regexp.MustCompile(`^(.*)_([0-9]+)$`)

func (s *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	id := Slugify(string(value))
	for id == "" || s.used[id] {
		if m := idCount.FindStringSubmatch(id); m != nil {
			n, _ := strconv.Atoi(m[2])
			id = m[1] + "_" + strconv.Itoa(n+1)
		} else {
			id += "_1"
		}
	}
	s.used[id] = true
	return []byte(id)
}

func (s *headingIDs) Put(value []byte) {
	s.used[string(value)] = true
}

// Slugify turns a heading into an anchor. Letters (including kana, kanji and
// full-width forms), digits and underscores are kept, other symbols dropped,
// and runs of whitespace become "-".
func Slugify(value string) string {
	var b strings.Builder
	for _, r := range value {
		if keepInSlug(r) {
			b.WriteRune(r)
		}
	}

	fields := strings.FieldsFunc(strings.ToLower(b.String()), unicode.IsSpace)
	return strings.Join(fields, "-")
}

func keepInSlug(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsNumber(r), r == '_':
		return true
	case unicode.IsSpace(r):
		return true
	case r >= 0x3000 && r <= 0x9fff, r >= 0xff00 && r <= 0xffef:
		return true
	}
	return false
}
