package content

// Post is a single blog entry loaded from the content directory.
// Posts are read-only once loaded; the slug is the directory name on disk
// and is never regenerated.
type Post struct {
	Slug         string
	Title        string
	Date         string // ISO date (YYYY-MM-DD), lexically sortable
	Excerpt      string
	Category     string
	Tags         []string
	Featured     bool
	Draft        bool
	Series       string
	SeriesOrder  *int // authoritative ordering within a series when set
	CoverImage   string
	LastModified string
	ReadingTime  int // estimated minutes, always >= 1
	Content      string
}

// Meta returns the post's metadata without the markdown body.
func (p Post) Meta() PostMeta {
	return PostMeta{
		Slug:         p.Slug,
		Title:        p.Title,
		Date:         p.Date,
		Excerpt:      p.Excerpt,
		Category:     p.Category,
		Tags:         p.Tags,
		Featured:     p.Featured,
		Draft:        p.Draft,
		Series:       p.Series,
		SeriesOrder:  p.SeriesOrder,
		CoverImage:   p.CoverImage,
		LastModified: p.LastModified,
		ReadingTime:  p.ReadingTime,
	}
}

// PostMeta is Post without the body, used by listings that never render
// the content so large bodies are not dragged through every view.
type PostMeta struct {
	Slug         string
	Title        string
	Date         string
	Excerpt      string
	Category     string
	Tags         []string
	Featured     bool
	Draft        bool
	Series       string
	SeriesOrder  *int
	CoverImage   string
	LastModified string
	ReadingTime  int
}

// SeriesInfo groups the posts belonging to one series, in reading order.
// Slug is the percent-encoded series name; no separate identifier is kept.
type SeriesInfo struct {
	Name  string
	Slug  string
	Posts []PostMeta
}

// Adjacent holds the chronological neighbors of a post in the canonical
// newest-first list. Prev is the older post, Next the newer one.
type Adjacent struct {
	Prev *PostMeta
	Next *PostMeta
}

// TagCount pairs a tag with the number of posts carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// CategoryCount pairs a category with the number of posts in it.
type CategoryCount struct {
	Category string
	Count    int
}
