// Package markdown converts post bodies to HTML with heading anchors,
// GFM extensions, and syntax-highlighted code blocks, and extracts tables
// of contents whose IDs match the rendered anchors exactly.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// highlightStyle is the fixed chroma theme applied to fenced code blocks.
const highlightStyle = "github-dark"

// Renderer converts markdown to HTML. It is stateless apart from the
// shared goldmark instance and safe to use from concurrent requests.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds the conversion pipeline: GFM extensions (tables,
// strikethrough, task lists, autolinks), raw HTML passed through unescaped
// (post bodies are trusted, author-authored input), heading IDs and
// self-link anchors assigned by the shared Slugger, and chroma syntax
// highlighting with a fixed theme. Untagged code blocks render as plain
// text.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithGuessLanguage(false),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&anchorTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts a markdown body to an HTML string. The output is a pure
// function of the input: the heading IDs assigned here stay identical with
// what ExtractTOC computes for the same source.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return buf.String(), nil
}

// anchorTransformer assigns Slugger IDs to every heading and wraps the
// heading content in an <a class="anchor-link" href="#id"> self-link.
type anchorTransformer struct{}

func (t *anchorTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	slugger := NewSlugger()

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		id := slugger.Slug(nodeText(heading, source))
		heading.SetAttributeString("id", []byte(id))

		link := ast.NewLink()
		link.Destination = []byte("#" + id)
		link.SetAttributeString("class", []byte("anchor-link"))
		for child := heading.FirstChild(); child != nil; {
			next := child.NextSibling()
			link.AppendChild(link, child)
			child = next
		}
		heading.AppendChild(heading, link)

		return ast.WalkSkipChildren, nil
	})
}

// nodeText collects the plain text of a node's inline children.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
