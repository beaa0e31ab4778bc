package celadon

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ekubome/Celadon/content"
)

// The preview area is the only place drafts are visible. It never mutates
// content; posts stay read-only files on disk.

func (a *App) handlePreview(c echo.Context) error {
	if !IsPreviewer(c) {
		return Render(c, a.Views.PreviewLogin(false, CsrfToken(c)))
	}
	posts, err := a.Repo.AllPosts(true)
	if err != nil {
		return err
	}
	metas := make([]content.PostMeta, len(posts))
	for i, p := range posts {
		metas[i] = p.Meta()
	}
	return Render(c, a.Views.PreviewDrafts(metas, CsrfToken(c)))
}

func (a *App) handlePreviewLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.PreviewPassword)) == 1 {
		if err := setPreviewSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/preview/")
	}
	return Render(c, a.Views.PreviewLogin(true, CsrfToken(c)))
}

func handlePreviewLogout(c echo.Context) error {
	if err := clearPreviewSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/preview/")
}

func (a *App) handlePreviewPost(c echo.Context) error {
	if !IsPreviewer(c) {
		return c.Redirect(http.StatusSeeOther, "/preview/")
	}
	view, err := a.buildPostView(c.Param("slug"), true)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.Post(view, a.Config.URL))
}

func (a *App) handlePreviewStats(c echo.Context) error {
	if !IsPreviewer(c) {
		return c.Redirect(http.StatusSeeOther, "/preview/")
	}
	days := 30
	top, err := a.analyticsStore.TopPaths(10, days)
	if err != nil {
		return err
	}
	total, err := a.analyticsStore.TotalVisits(days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"days":  days,
		"total": total,
		"top":   top,
	})
}
