package celadon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ekubome/Celadon/content"
)

// SearchDoc is one entry of the client-side search index.
type SearchDoc struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Date     string   `json:"date"`
}

// BuildSearchIndex maps published posts to search documents, preserving the
// canonical newest-first order.
func BuildSearchIndex(posts []content.PostMeta) []SearchDoc {
	docs := make([]SearchDoc, 0, len(posts))
	for _, p := range posts {
		docs = append(docs, SearchDoc{
			Slug:     p.Slug,
			Title:    p.Title,
			Excerpt:  p.Excerpt,
			Category: p.Category,
			Tags:     append([]string{}, p.Tags...),
			Date:     p.Date,
		})
	}
	return docs
}

// WriteSearchIndex writes the search index as JSON to path, creating parent
// directories as needed.
func WriteSearchIndex(path string, posts []content.PostMeta) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("celadon: create index dir: %w", err)
	}
	b, err := json.MarshalIndent(BuildSearchIndex(posts), "", "  ")
	if err != nil {
		return fmt.Errorf("celadon: encode search index: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("celadon: write search index: %w", err)
	}
	return nil
}
