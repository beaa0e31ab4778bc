package celadon

import "time"

// SiteConfig holds all configuration for a Celadon site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr       string // Listen address (default ":3000")
	ContentDir string // Post directories root (default "content/posts")

	Dev          bool          // Development mode: post cache expires so edits show up
	PostCacheTTL time.Duration // Cache TTL in development mode (default 60s)

	AnalyticsEnabled      bool   // Record page views (default false)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	PreviewPassword string // Required: password for the draft preview area
	SessionSecret   string // Required: session encryption secret
	CookieSecure    bool   // Set true for HTTPS

	FeedLimit int // Number of posts in the RSS feed (default 20)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/posts"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = time.Minute
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.FeedLimit == 0 {
		c.FeedLimit = 20
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
