package markdown

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugger turns heading text into URL-fragment-safe anchor IDs and keeps
// track of IDs already handed out within one document, appending -1, -2, …
// to disambiguate repeats. Both the renderer and the TOC extractor use the
// same Slugger rules, so in-page anchor links always resolve.
type Slugger struct {
	used map[string]bool
}

// NewSlugger returns a Slugger with an empty per-document ID registry.
func NewSlugger() *Slugger {
	return &Slugger{used: make(map[string]bool)}
}

// Slug converts heading text to a unique anchor ID for this document.
func (s *Slugger) Slug(text string) string {
	base := normalizeSlug(text)
	slug := base
	for i := 1; s.used[slug]; i++ {
		slug = base + "-" + strconv.Itoa(i)
	}
	s.used[slug] = true
	return slug
}

// normalizeSlug applies github-slugger rules: lowercase, trim, whitespace
// collapsed to single hyphens, everything dropped except letters (any
// script), digits, hyphens, and underscores, repeated hyphens collapsed,
// leading/trailing hyphens trimmed.
func normalizeSlug(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	hyphen := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !hyphen {
				b.WriteByte('-')
				hyphen = true
			}
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			hyphen = false
		}
	}
	return strings.Trim(b.String(), "-")
}
