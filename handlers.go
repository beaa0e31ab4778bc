package celadon

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ekubome/Celadon/analytics"
	"github.com/ekubome/Celadon/content"
	"github.com/ekubome/Celadon/markdown"
)

func (a *App) handleHome(c echo.Context) error {
	recent, err := a.Repo.RecentPosts(5)
	if err != nil {
		return err
	}
	featured, err := a.Repo.FeaturedPosts(3)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(recent, featured, a.Config.URL))
}

func (a *App) handleBlogList(c echo.Context) error {
	tag := c.QueryParam("tag")

	var posts []content.PostMeta
	var err error
	if tag != "" {
		posts, err = a.Repo.PostsByTag(tag)
	} else {
		posts, err = a.Repo.AllPostsMeta()
	}
	if err != nil {
		return err
	}

	tags, err := a.Repo.Tags()
	if err != nil {
		return err
	}
	return Render(c, a.Views.BlogList(posts, tag, "", tags, a.Config.URL))
}

func (a *App) handleCategory(c echo.Context) error {
	category, err := url.PathUnescape(c.Param("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	posts, err := a.Repo.PostsByCategory(category)
	if err != nil {
		return err
	}
	tags, err := a.Repo.Tags()
	if err != nil {
		return err
	}
	return Render(c, a.Views.BlogList(posts, "", category, tags, a.Config.URL))
}

func (a *App) handleTag(c echo.Context) error {
	tag, err := url.PathUnescape(c.Param("tag"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	posts, err := a.Repo.PostsByTag(tag)
	if err != nil {
		return err
	}
	tags, err := a.Repo.Tags()
	if err != nil {
		return err
	}
	return Render(c, a.Views.BlogList(posts, tag, "", tags, a.Config.URL))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	view, err := a.buildPostView(slug, false)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}

	a.recordVisit(c, "/blog/"+slug+"/")

	return Render(c, a.Views.Post(view, a.Config.URL))
}

// buildPostView assembles the post detail context: rendered HTML, table of
// contents, related posts, chronological neighbors, and series navigation.
// Draft posts are only reachable when includeDrafts is set (preview area).
func (a *App) buildPostView(slug string, includeDrafts bool) (PostView, error) {
	post, err := a.Repo.PostBySlug(slug)
	if err != nil {
		return PostView{}, err
	}
	if post.Draft && !includeDrafts {
		return PostView{}, content.ErrNotFound
	}

	// A markdown body the parser cannot handle is fatal for this render;
	// content is trusted, so broken posts should be fixed, not hidden.
	html, err := a.Markdown.Render(post.Content)
	if err != nil {
		return PostView{}, err
	}

	related, err := a.Repo.RelatedPosts(slug, 3)
	if err != nil {
		return PostView{}, err
	}
	adjacent, err := a.Repo.AdjacentPosts(slug)
	if err != nil {
		return PostView{}, err
	}

	var series *content.SeriesInfo
	if post.Series != "" {
		s, err := a.Repo.SeriesByName(post.Series)
		if err == nil {
			series = &s
		} else if !errors.Is(err, content.ErrNotFound) {
			return PostView{}, err
		}
	}

	return PostView{
		Post:     post,
		HTML:     html,
		TOC:      markdown.ExtractTOC(post.Content),
		Related:  related,
		Adjacent: adjacent,
		Series:   series,
	}, nil
}

func (a *App) handleArchive(c echo.Context) error {
	posts, err := a.Repo.AllPostsMeta()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Archive(posts))
}

func (a *App) handleTags(c echo.Context) error {
	tags, err := a.Repo.TagsWithCount()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Tags(tags))
}

func (a *App) handleSeriesIndex(c echo.Context) error {
	series, err := a.Repo.AllSeries()
	if err != nil {
		return err
	}
	return Render(c, a.Views.SeriesIndex(series))
}

func (a *App) handleSeries(c echo.Context) error {
	name := c.Param("series")
	series, err := a.Repo.SeriesByName(name)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			// The route parameter may arrive percent-decoded already.
			if decoded, derr := url.PathUnescape(name); derr == nil {
				if series, err = a.Repo.SeriesByName(decoded); err == nil {
					return Render(c, a.Views.Series(series))
				}
			}
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.Series(series))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Repo.AllPostsMeta()
	if err != nil {
		return err
	}
	if len(posts) > a.Config.FeedLimit {
		posts = posts[:a.Config.FeedLimit]
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleSearchIndex(c echo.Context) error {
	posts, err := a.Repo.AllPostsMeta()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, BuildSearchIndex(posts))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

// recordVisit hands the page view to the analytics store without blocking
// the response.
func (a *App) recordVisit(c echo.Context, path string) {
	if a.analyticsStore == nil {
		return
	}
	visit := analytics.Visit{
		Path:      path,
		IPHash:    analytics.HashIP(c.RealIP(), a.Config.SessionSecret),
		Referrer:  c.Request().Referer(),
		Timestamp: time.Now().UTC(),
	}
	go func() {
		if err := a.analyticsStore.RecordVisit(visit); err != nil {
			a.Echo.Logger.Errorf("record visit: %v", err)
		}
	}()
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
