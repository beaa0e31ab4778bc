package celadon

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/ekubome/Celadon/content"
)

const (
	maxCoverWidth    = 800
	coverJpegQuality = 80
)

// coverCache keeps processed cover images in memory so each cover is
// decoded and resized once per process lifetime.
type coverCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newCoverCache() *coverCache {
	return &coverCache{data: make(map[string][]byte)}
}

func (cc *coverCache) get(slug string) ([]byte, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	b, ok := cc.data[slug]
	return b, ok
}

func (cc *coverCache) put(slug string, b []byte) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.data[slug] = b
}

// processCover decodes an image, scales it down to maxCoverWidth if wider,
// and re-encodes it as JPEG.
func processCover(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxCoverWidth {
		newH := h * maxCoverWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxCoverWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: coverJpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func (a *App) handleCover(c echo.Context) error {
	slug := c.Param("slug")

	if b, ok := a.covers.get(slug); ok {
		return c.Blob(http.StatusOK, "image/jpeg", b)
	}

	post, err := a.Repo.PostBySlug(slug)
	if errors.Is(err, content.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err != nil {
		return err
	}
	if post.CoverImage == "" || (post.Draft && !IsPreviewer(c)) {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	// CoverImage is a filename relative to the post directory; Base strips
	// any path components so requests cannot escape the content dir.
	name := filepath.Base(post.CoverImage)
	raw, err := os.ReadFile(filepath.Join(a.Config.ContentDir, slug, name))
	if err != nil {
		if os.IsNotExist(err) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}

	processed, err := processCover(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	a.covers.put(slug, processed)
	return c.Blob(http.StatusOK, "image/jpeg", processed)
}
