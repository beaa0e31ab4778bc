package content

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// Repository caches the full post list loaded from a content directory and
// exposes read-only derived views. The cached slice is swapped atomically
// under the lock, so a reader racing a reload sees either the old or the
// new snapshot, never a partial one.
type Repository struct {
	dir string
	ttl time.Duration // 0 means cache forever (production)
	now func() time.Time

	mu      sync.RWMutex
	posts   []Post
	fetched time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithTTL enables cache expiry so content edits show up without a restart.
// Used in development; without it the cache lives for the process lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(r *Repository) { r.ttl = ttl }
}

// WithClock overrides the time source used for cache expiry, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// NewRepository creates a Repository over the given content directory.
func NewRepository(dir string, opts ...Option) *Repository {
	r := &Repository{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) valid() bool {
	if r.posts == nil {
		return false
	}
	if r.ttl == 0 {
		return true
	}
	return r.now().Sub(r.fetched) < r.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (r *Repository) Invalidate() {
	r.mu.Lock()
	r.posts = nil
	r.mu.Unlock()
}

// ensureLoaded returns the cached post list after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (r *Repository) ensureLoaded() ([]Post, error) {
	r.mu.RLock()
	if r.valid() {
		posts := r.posts
		r.mu.RUnlock()
		return posts, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.valid() {
		return r.posts, nil
	}
	posts, err := LoadAll(r.dir)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []Post{}
	}
	r.posts = posts
	r.fetched = r.now()
	return r.posts, nil
}

// AllPosts returns every post newest-first. Drafts are excluded unless
// includeDrafts is set (preview and development contexts only).
func (r *Repository) AllPosts(includeDrafts bool) ([]Post, error) {
	posts, err := r.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if includeDrafts {
		return posts, nil
	}
	published := make([]Post, 0, len(posts))
	for _, p := range posts {
		if !p.Draft {
			published = append(published, p)
		}
	}
	return published, nil
}

// AllPostsMeta returns the metadata of every published post, newest-first.
func (r *Repository) AllPostsMeta() ([]PostMeta, error) {
	posts, err := r.AllPosts(false)
	if err != nil {
		return nil, err
	}
	metas := make([]PostMeta, len(posts))
	for i, p := range posts {
		metas[i] = p.Meta()
	}
	return metas, nil
}

// PostBySlug returns the post with the given slug, drafts included.
// A missing slug yields ErrNotFound; the caller decides whether to 404.
func (r *Repository) PostBySlug(slug string) (Post, error) {
	posts, err := r.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// FeaturedPosts returns published featured posts in date order, truncated
// to limit when limit > 0.
func (r *Repository) FeaturedPosts(limit int) ([]PostMeta, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}
	var featured []PostMeta
	for _, m := range metas {
		if m.Featured {
			featured = append(featured, m)
		}
	}
	return truncate(featured, limit), nil
}

// RecentPosts returns the newest published posts, up to limit.
func (r *Repository) RecentPosts(limit int) ([]PostMeta, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}
	return truncate(metas, limit), nil
}

// PostsByCategory returns published posts whose category matches,
// case-insensitively.
func (r *Repository) PostsByCategory(category string) ([]PostMeta, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}
	var out []PostMeta
	for _, m := range metas {
		if strings.EqualFold(m.Category, category) {
			out = append(out, m)
		}
	}
	return out, nil
}

// PostsByTag returns published posts carrying the tag, case-insensitively.
func (r *Repository) PostsByTag(tag string) ([]PostMeta, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}
	var out []PostMeta
	for _, m := range metas {
		for _, t := range m.Tags {
			if strings.EqualFold(t, tag) {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

// Categories returns the distinct categories across published posts,
// alphabetically sorted.
func (r *Repository) Categories() ([]string, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, m := range metas {
		set[m.Category] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// Tags returns the distinct tags across published posts, alphabetically
// sorted.
func (r *Repository) Tags() ([]string, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	for _, m := range metas {
		for _, t := range m.Tags {
			set[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// RelatedPosts scores every other published post against the given one:
// +2 for the same category, +1 per shared tag. Zero-score posts are
// dropped, the rest sorted by score descending (ties keep the incoming
// newest-first order) and truncated to limit.
func (r *Repository) RelatedPosts(slug string, limit int) ([]PostMeta, error) {
	current, err := r.PostBySlug(slug)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}

	type scored struct {
		meta  PostMeta
		score int
	}
	var candidates []scored
	for _, m := range metas {
		if m.Slug == current.Slug {
			continue
		}
		score := 0
		if m.Category == current.Category {
			score += 2
		}
		for _, t := range m.Tags {
			for _, ct := range current.Tags {
				if t == ct {
					score++
					break
				}
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{meta: m, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	out := make([]PostMeta, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.meta)
	}
	return truncate(out, limit), nil
}

// AdjacentPosts returns the chronological neighbors of a post in the
// canonical newest-first list. Prev is the older post at the next index,
// Next the newer one before it; both nil when the slug is unknown.
func (r *Repository) AdjacentPosts(slug string) (Adjacent, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return Adjacent{}, err
	}
	idx := -1
	for i, m := range metas {
		if m.Slug == slug {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Adjacent{}, nil
	}
	var adj Adjacent
	if idx < len(metas)-1 {
		prev := metas[idx+1]
		adj.Prev = &prev
	}
	if idx > 0 {
		next := metas[idx-1]
		adj.Next = &next
	}
	return adj, nil
}

// AllSeries groups published posts by their series field and returns the
// groups sorted by name. Posts inside a series are ordered by seriesOrder
// when both sides have one; a post with an order always precedes one
// without; otherwise oldest first.
func (r *Repository) AllSeries() ([]SeriesInfo, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]PostMeta)
	var names []string
	for _, m := range metas {
		if m.Series == "" {
			continue
		}
		if _, ok := groups[m.Series]; !ok {
			names = append(names, m.Series)
		}
		groups[m.Series] = append(groups[m.Series], m)
	}
	sort.Strings(names)

	series := make([]SeriesInfo, 0, len(names))
	for _, name := range names {
		posts := groups[name]
		sort.SliceStable(posts, func(i, j int) bool {
			return seriesLess(posts[i], posts[j])
		})
		series = append(series, SeriesInfo{
			Name:  name,
			Slug:  url.PathEscape(name),
			Posts: posts,
		})
	}
	return series, nil
}

func seriesLess(a, b PostMeta) bool {
	if a.SeriesOrder != nil && b.SeriesOrder != nil {
		return *a.SeriesOrder < *b.SeriesOrder
	}
	if a.SeriesOrder != nil {
		return true
	}
	if b.SeriesOrder != nil {
		return false
	}
	return a.Date < b.Date
}

// SeriesByName looks a series up by display name or by its URL-safe slug.
func (r *Repository) SeriesByName(name string) (SeriesInfo, error) {
	series, err := r.AllSeries()
	if err != nil {
		return SeriesInfo{}, err
	}
	for _, s := range series {
		if s.Name == name || s.Slug == name {
			return s, nil
		}
	}
	return SeriesInfo{}, ErrNotFound
}

// SeriesPosts returns the ordered posts of a series, or nothing when the
// series is unknown.
func (r *Repository) SeriesPosts(name string) ([]PostMeta, error) {
	s, err := r.SeriesByName(name)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return s.Posts, nil
}

// PopularPosts ranks published posts featured-first, then by date
// descending. There is no real popularity signal; this is a deliberate
// stand-in ranking.
func (r *Repository) PopularPosts(limit int) ([]PostMeta, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}
	ranked := append([]PostMeta(nil), metas...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Featured != ranked[j].Featured {
			return ranked[i].Featured
		}
		return ranked[i].Date > ranked[j].Date
	})
	return truncate(ranked, limit), nil
}

// TagsWithCount aggregates tag usage across published posts, sorted by
// count descending with name ascending as the tie-break.
func (r *Repository) TagsWithCount() ([]TagCount, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, m := range metas {
		for _, t := range m.Tags {
			counts[t]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out, nil
}

// CategoriesWithCount aggregates category usage across published posts,
// sorted by count descending with name ascending as the tie-break.
func (r *Repository) CategoriesWithCount() ([]CategoryCount, error) {
	metas, err := r.AllPostsMeta()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, m := range metas {
		counts[m.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, CategoryCount{Category: category, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func truncate(metas []PostMeta, limit int) []PostMeta {
	if limit > 0 && len(metas) > limit {
		return metas[:limit]
	}
	return metas
}
