// Package celadon is a file-based blog engine built with Go, Echo, and templ.
// Posts are markdown directories on disk; the engine loads them, derives
// listings (categories, tags, series, related posts), renders markdown with
// heading anchors and highlighting, and serves RSS, sitemap, and a search
// index out of the box.
//
// Users provide their own templ templates via the ViewFuncs struct, and
// celadon handles the handler logic, middleware, and content pipeline.
package celadon

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/ekubome/Celadon/analytics"
	"github.com/ekubome/Celadon/content"
	"github.com/ekubome/Celadon/markdown"
)

// PostView bundles everything the post detail template needs: the post
// itself, the rendered HTML body, its table of contents, and the derived
// navigation context.
type PostView struct {
	Post     content.Post
	HTML     string
	TOC      []markdown.TocItem
	Related  []content.PostMeta
	Adjacent content.Adjacent
	Series   *content.SeriesInfo
}

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home          func(recent, featured []content.PostMeta, siteURL string) templ.Component
	BlogList      func(posts []content.PostMeta, activeTag, activeCategory string, tags []string, siteURL string) templ.Component
	Post          func(view PostView, siteURL string) templ.Component
	Archive       func(posts []content.PostMeta) templ.Component
	Tags          func(tags []content.TagCount) templ.Component
	SeriesIndex   func(series []content.SeriesInfo) templ.Component
	Series        func(series content.SeriesInfo) templ.Component
	PreviewLogin  func(showError bool, csrfToken string) templ.Component
	PreviewDrafts func(posts []content.PostMeta, csrfToken string) templ.Component
	NotFound      func() templ.Component
	ServerError   func() templ.Component
}

// App is the central celadon application. It wires together the content
// repository, markdown renderer, handlers, middleware, and user-provided
// templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Repo     *content.Repository
	Markdown *markdown.Renderer
	Views    ViewFuncs

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	covers         *coverCache
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a new celadon App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the repository, markdown pipeline, middleware, routes,
// and starts the server.
func (a *App) Start() error {
	// Validate required config
	if a.Config.PreviewPassword == "" {
		return fmt.Errorf("celadon: PreviewPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("celadon: SessionSecret is required")
	}

	// Initialize the content repository. In development the cache expires
	// so edits show up without a restart; in production it is permanent.
	var repoOpts []content.Option
	if a.Config.Dev {
		repoOpts = append(repoOpts, content.WithTTL(a.Config.PostCacheTTL))
	}
	a.Repo = content.NewRepository(a.Config.ContentDir, repoOpts...)

	// Initialize markdown renderer and cover cache
	a.Markdown = markdown.NewRenderer()
	a.covers = newCoverCache()

	// Initialize login limiter for the preview area
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	// Initialize analytics if enabled
	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("celadon: init analytics: %w", err)
		}
		a.analyticsStore = store
		stopCleanup := store.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	// Setup middleware
	a.setupMiddleware()

	// Setup routes
	a.setupRoutes()

	// Apply custom routes
	for _, fn := range a.customRoutes {
		fn(a)
	}

	// Start server
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Machine-readable documents
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/search-index.json", a.handleSearchIndex)

	// Public routes
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlogList)
	e.GET("/blog/archive/", a.handleArchive)
	e.GET("/blog/tags/", a.handleTags)
	e.GET("/blog/series/", a.handleSeriesIndex)
	e.GET("/blog/series/:series/", a.handleSeries)
	e.GET("/blog/category/:category/", a.handleCategory)
	e.GET("/blog/tag/:tag/", a.handleTag)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/covers/:slug", a.handleCover)

	// Draft preview routes
	e.GET("/preview/", a.handlePreview)
	e.POST("/preview/login/", a.handlePreviewLogin)
	e.POST("/preview/logout/", handlePreviewLogout)
	e.GET("/preview/:slug/", a.handlePreviewPost)
	if a.Config.AnalyticsEnabled {
		e.GET("/preview/stats/", a.handlePreviewStats)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.analyticsStore != nil {
		return a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
// This is a convenience function for use in site main.go files.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("celadon: required environment variable %s is not set", key)
	}
	return v
}
