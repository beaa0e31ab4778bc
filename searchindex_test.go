package celadon

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ekubome/Celadon/content"
)

func TestBuildSearchIndex(t *testing.T) {
	posts := []content.PostMeta{
		{Slug: "second", Title: "Second", Excerpt: "newer", Category: "Tech", Tags: []string{"go"}, Date: "2024-02-01"},
		{Slug: "first", Title: "First", Excerpt: "older", Category: "Life", Date: "2024-01-01"},
	}
	docs := BuildSearchIndex(posts)
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].Slug != "second" || docs[1].Slug != "first" {
		t.Errorf("order not preserved: %q, %q", docs[0].Slug, docs[1].Slug)
	}
	if docs[0].Category != "Tech" || docs[0].Tags[0] != "go" {
		t.Errorf("unexpected doc: %+v", docs[0])
	}
}

func TestSearchIndexTagsNeverNull(t *testing.T) {
	docs := BuildSearchIndex([]content.PostMeta{{Slug: "bare", Title: "Bare"}})
	b, err := json.Marshal(docs)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "null") {
		t.Errorf("tags serialized as null: %s", b)
	}
	if !strings.Contains(string(b), `"tags":[]`) {
		t.Errorf("expected empty tags array, got %s", b)
	}
}

func TestWriteSearchIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "search-index.json")
	posts := []content.PostMeta{{Slug: "hello", Title: "Hello", Date: "2024-01-01"}}
	if err := WriteSearchIndex(path, posts); err != nil {
		t.Fatalf("WriteSearchIndex: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var docs []SearchDoc
	if err := json.Unmarshal(b, &docs); err != nil {
		t.Fatalf("invalid JSON written: %v", err)
	}
	if len(docs) != 1 || docs[0].Slug != "hello" {
		t.Errorf("unexpected index contents: %+v", docs)
	}
}
