package celadon

import (
	"encoding/xml"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context) error {
	base := a.Config.URL

	urls := []sitemapURL{
		{Loc: BuildURL(base)},
		{Loc: BuildURL(base, "blog")},
		{Loc: BuildURL(base, "blog", "archive")},
		{Loc: BuildURL(base, "blog", "tags")},
		{Loc: BuildURL(base, "blog", "series")},
	}

	posts, err := a.Repo.AllPostsMeta()
	if err != nil {
		return err
	}
	for _, p := range posts {
		lastMod := p.LastModified
		if lastMod == "" {
			lastMod = p.Date
		}
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, "blog", p.Slug),
			LastMod: lastMod,
		})
	}

	categories, err := a.Repo.Categories()
	if err != nil {
		return err
	}
	for _, category := range categories {
		urls = append(urls, sitemapURL{
			Loc: BuildURL(base, "blog", "category", url.PathEscape(category)),
		})
	}

	tags, err := a.Repo.Tags()
	if err != nil {
		return err
	}
	for _, tag := range tags {
		urls = append(urls, sitemapURL{
			Loc: BuildURL(base, "blog", "tag", url.PathEscape(tag)),
		})
	}

	series, err := a.Repo.AllSeries()
	if err != nil {
		return err
	}
	for _, s := range series {
		urls = append(urls, sitemapURL{
			Loc: BuildURL(base, "blog", "series", s.Slug),
		})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
