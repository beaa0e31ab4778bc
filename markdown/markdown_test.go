package markdown

import (
	"strings"
	"testing"
)

func TestRenderHeadingAnchor(t *testing.T) {
	r := NewRenderer()
	got, err := r.Render("## Hello World")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `id="hello-world"`) {
		t.Errorf("heading should carry id hello-world: %q", got)
	}
	if !strings.Contains(got, `href="#hello-world"`) {
		t.Errorf("heading should be wrapped in a self-link: %q", got)
	}
	if !strings.Contains(got, `class="anchor-link"`) {
		t.Errorf("self-link should carry the anchor-link class: %q", got)
	}
}

func TestRenderDuplicateHeadings(t *testing.T) {
	r := NewRenderer()
	got, err := r.Render("## Intro\n\ntext\n\n## Intro")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `id="intro"`) {
		t.Errorf("first heading should get id intro: %q", got)
	}
	if !strings.Contains(got, `id="intro-1"`) {
		t.Errorf("second heading should get id intro-1: %q", got)
	}
}

func TestRenderMatchesTOC(t *testing.T) {
	source := "## Getting Started\n\nbody\n\n### Install & Run\n\nbody\n\n### Install & Run"
	r := NewRenderer()
	html, err := r.Render(source)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, item := range ExtractTOC(source) {
		if !strings.Contains(html, `id="`+item.ID+`"`) {
			t.Errorf("rendered HTML missing id %q for heading %q", item.ID, item.Text)
		}
	}
}

func TestRenderGFMTable(t *testing.T) {
	r := NewRenderer()
	got, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, tag := range []string{"<table>", "<thead>", "<tbody>", "<th>a</th>", "<td>2</td>"} {
		if !strings.Contains(got, tag) {
			t.Errorf("table output missing %s: %q", tag, got)
		}
	}
}

func TestRenderStrikethroughAndTaskList(t *testing.T) {
	r := NewRenderer()
	got, err := r.Render("~~gone~~\n\n- [x] done\n- [ ] todo")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "<del>gone</del>") {
		t.Errorf("strikethrough not rendered: %q", got)
	}
	if !strings.Contains(got, `type="checkbox"`) {
		t.Errorf("task list not rendered: %q", got)
	}
}

func TestRenderRawHTMLPassthrough(t *testing.T) {
	r := NewRenderer()
	got, err := r.Render("before\n\n<div class=\"note\">kept</div>\n\nafter")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `<div class="note">kept</div>`) {
		t.Errorf("raw HTML should pass through unescaped: %q", got)
	}
}

func TestRenderCodeBlockHighlighted(t *testing.T) {
	r := NewRenderer()
	got, err := r.Render("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "<pre") {
		t.Errorf("code block should render a <pre> element: %q", got)
	}
	// The fixed theme emits inline styles rather than bare code text.
	if !strings.Contains(got, "style=") {
		t.Errorf("highlighted block should carry inline styles: %q", got)
	}
}

func TestRenderCodeBlockWithoutLanguage(t *testing.T) {
	r := NewRenderer()
	got, err := r.Render("```\nplain text here\n```")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "plain text here") {
		t.Errorf("untagged code block should keep its content: %q", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	source := "## One\n\n```go\nx := 1\n```\n\n## One\n\n| a |\n|---|\n| b |"
	r := NewRenderer()
	first, err := r.Render(source)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := r.Render(source)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if first != second {
		t.Error("rendering the same input twice should produce identical output")
	}
}

func TestRenderAutolink(t *testing.T) {
	r := NewRenderer()
	got, err := r.Render("see https://example.com for details")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `<a href="https://example.com"`) {
		t.Errorf("bare URL should be autolinked: %q", got)
	}
}
