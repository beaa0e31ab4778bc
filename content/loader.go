// Package content loads markdown posts from a content directory and exposes
// read-only query and derivation operations over them.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// ErrNotFound is returned when a requested post or series does not exist.
var ErrNotFound = errors.New("content: not found")

const (
	entryFile      = "index.md"
	wordsPerMinute = 200

	defaultTitle    = "Untitled"
	defaultCategory = "Uncategorized"
)

// frontMatterEnvelope mirrors the recognized front-matter keys. Unknown keys
// are ignored; missing keys fall back to documented defaults in LoadPost.
type frontMatterEnvelope struct {
	Title        string   `yaml:"title"`
	Date         string   `yaml:"date"`
	Excerpt      string   `yaml:"excerpt"`
	Category     string   `yaml:"category"`
	Tags         []string `yaml:"tags"`
	Featured     bool     `yaml:"featured"`
	Draft        bool     `yaml:"draft"`
	Series       string   `yaml:"series"`
	SeriesOrder  *int     `yaml:"seriesOrder"`
	CoverImage   string   `yaml:"coverImage"`
	LastModified string   `yaml:"lastModified"`
}

// LoadPost reads <dir>/<slug>/index.md and builds a Post. A missing entry
// file yields ErrNotFound so callers can skip the folder; malformed
// front-matter is a real error since content is author-controlled.
func LoadPost(dir, slug string) (Post, error) {
	path := filepath.Join(dir, slug, entryFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Post{}, ErrNotFound
		}
		return Post{}, fmt.Errorf("content: read %s: %w", path, err)
	}

	var fm frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return Post{}, fmt.Errorf("content: parse front-matter %s: %w", path, err)
	}

	if fm.Title == "" {
		fm.Title = defaultTitle
	}
	if fm.Date == "" {
		fm.Date = time.Now().Format("2006-01-02")
	}
	if fm.Category == "" {
		fm.Category = defaultCategory
	}

	content := string(body)
	return Post{
		Slug:         slug,
		Title:        fm.Title,
		Date:         fm.Date,
		Excerpt:      fm.Excerpt,
		Category:     fm.Category,
		Tags:         fm.Tags,
		Featured:     fm.Featured,
		Draft:        fm.Draft,
		Series:       fm.Series,
		SeriesOrder:  fm.SeriesOrder,
		CoverImage:   fm.CoverImage,
		LastModified: fm.LastModified,
		ReadingTime:  ReadingTime(content),
		Content:      content,
	}, nil
}

// LoadAll enumerates post directories under dir and returns every post
// sorted newest-first. A missing content root is an empty corpus, not an
// error; folders without an entry file are skipped silently.
func LoadAll(dir string) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: read dir %s: %w", dir, err)
	}

	var posts []Post
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p, err := LoadPost(dir, e.Name())
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	return posts, nil
}

// Slugs returns the directory names under dir that contain an entry file.
func Slugs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: read dir %s: %w", dir, err)
	}

	var slugs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, e.Name(), entryFile)); err != nil {
			continue
		}
		slugs = append(slugs, e.Name())
	}
	return slugs, nil
}

// ReadingTime estimates reading minutes for a markdown body at 200 words
// per minute, rounded up, never less than one minute.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
