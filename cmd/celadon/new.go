package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	celadon "github.com/ekubome/Celadon"
	"github.com/ekubome/Celadon/content"
	"github.com/ekubome/Celadon/scaffold"
)

const defaultContentDir = "content/posts"

// postData holds the template variables passed to the post scaffold.
type postData struct {
	Title string
	Date  string
}

func runNew(title string) error {
	contentDir := celadon.EnvOr("CONTENT_DIR", defaultContentDir)

	slug := celadon.Slugify(title)
	if slug == "" {
		return fmt.Errorf("title %q produces an empty slug", title)
	}

	dir := filepath.Join(contentDir, slug)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("post %q already exists", slug)
	}

	raw, err := scaffold.Templates.ReadFile("templates/index.md.tmpl")
	if err != nil {
		return fmt.Errorf("read scaffold template: %w", err)
	}
	tmpl, err := template.New("index.md").Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse scaffold template: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create post dir: %w", err)
	}

	out := filepath.Join(dir, "index.md")
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	data := postData{
		Title: toTitle(title),
		Date:  time.Now().UTC().Format("2006-01-02"),
	}
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("execute scaffold template: %w", err)
	}

	fmt.Printf("Created %s\n", out)
	fmt.Println("The post starts as a draft; flip draft to false when ready to publish.")
	return nil
}

func runIndex() error {
	contentDir := celadon.EnvOr("CONTENT_DIR", defaultContentDir)

	posts, err := content.LoadAll(contentDir)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}

	metas := make([]content.PostMeta, 0, len(posts))
	for _, p := range posts {
		if p.Draft {
			continue
		}
		metas = append(metas, p.Meta())
	}

	out := filepath.Join("public", "search-index.json")
	if err := celadon.WriteSearchIndex(out, metas); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d posts)\n", out, len(metas))
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-post" -> "My Post". Titles that already contain spaces or
// uppercase letters are left alone.
func toTitle(s string) string {
	if strings.ContainsAny(s, " ") || s != strings.ToLower(s) {
		return s
	}
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
