package markdown

import (
	"regexp"
	"strings"
)

// TocItem is one entry in a page's table of contents.
type TocItem struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Level-1 headings are reserved for the page title; only h2 through h4
// appear in the table of contents.
var headingLine = regexp.MustCompile(`^(#{2,4})\s+(.+)$`)

// ExtractTOC scans a raw markdown body for level 2-4 headings and returns
// them in document order. IDs come from the same Slugger the renderer
// uses, so each entry links to the heading the renderer actually emits.
func ExtractTOC(source string) []TocItem {
	slugger := NewSlugger()
	var toc []TocItem
	for _, line := range strings.Split(source, "\n") {
		m := headingLine.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		text := strings.TrimSpace(m[2])
		toc = append(toc, TocItem{
			ID:    slugger.Slug(text),
			Text:  text,
			Level: len(m[1]),
		})
	}
	return toc
}
