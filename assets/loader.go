// Package assets loads images, text and Wavefront scenes through a
// [Fetcher], concurrently and in input order.
//
// Images in PNG, JPEG, GIF, WebP and BMP format are decoded.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"github.com/nfnt/resize"
	"github.com/soypat/glplay"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTimeout bounds each individual fetch of a Loader returned by NewLoader.
	DefaultTimeout = 30 * time.Second
	// DefaultConcurrency is the number of fetches a Loader returned by
	// NewLoader runs at once.
	DefaultConcurrency = 8
)

// Loader fetches and decodes assets. The zero value is not usable; create
// Loaders with NewLoader or set Fetcher.
type Loader struct {
	Fetcher Fetcher
	// Timeout bounds each fetch including decoding. Zero disables it.
	Timeout time.Duration
	// Concurrency limits how many fetches run at once. Values below 1 mean
	// no limit.
	Concurrency int
	// MaxDimension, when positive, downscales decoded images so neither side
	// exceeds it, preserving the aspect ratio.
	MaxDimension int
}

// NewLoader returns a Loader using f with DefaultTimeout and DefaultConcurrency.
func NewLoader(f Fetcher) *Loader {
	return &Loader{
		Fetcher:     f,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
	}
}

// ImageResult is the outcome of loading a single image.
type ImageResult struct {
	URL   string
	Image image.Image
	Err   error
}

// LoadImages fetches and decodes every url concurrently and returns one
// result per url in input order. Every fetch runs to completion; failures are
// reported per item and the caller decides whether partial success suffices.
func (l *Loader) LoadImages(ctx context.Context, urls []string) []ImageResult {
	results := make([]ImageResult, len(urls))
	var g errgroup.Group
	g.SetLimit(l.limit())
	for i, url := range urls {
		g.Go(func() error {
			img, err := l.LoadImage(ctx, url)
			results[i] = ImageResult{URL: url, Image: img, Err: err}
			return nil
		})
	}
	g.Wait()
	return results
}

// LoadAllImages fetches and decodes every url concurrently and returns the
// images in input order. If any image fails the whole batch fails: the first
// error is returned, fetches still in flight are cancelled and no images are
// returned.
func (l *Loader) LoadAllImages(ctx context.Context, urls []string) ([]image.Image, error) {
	images := make([]image.Image, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.limit())
	for i, url := range urls {
		g.Go(func() error {
			img, err := l.LoadImage(gctx, url)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// LoadImage fetches and decodes a single image. Errors are of type *FetchError.
func (l *Loader) LoadImage(ctx context.Context, url string) (image.Image, error) {
	var img image.Image
	err := l.fetch(ctx, url, func(r io.Reader) (err error) {
		var format string
		img, format, err = image.Decode(r)
		if err != nil {
			return err
		}
		glplay.Logger().Debug("assets: image decoded", "url", url, "format", format,
			"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return l.fit(img), nil
}

// LoadText fetches the resource at url and returns it as a string.
func (l *Loader) LoadText(ctx context.Context, url string) (string, error) {
	var text string
	err := l.fetch(ctx, url, func(r io.Reader) error {
		b, err := io.ReadAll(r)
		text = string(b)
		return err
	})
	return text, err
}

// fetch runs consume over the contents of url under the Loader's timeout,
// wrapping any failure in a *FetchError.
func (l *Loader) fetch(ctx context.Context, url string, consume func(io.Reader) error) error {
	if l.Fetcher == nil {
		return &FetchError{URL: url, Err: errors.New("nil fetcher")}
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	rc, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		glplay.Logger().Warn("assets: fetch failed", "url", url, "err", err)
		return &FetchError{URL: url, Err: err}
	}
	defer rc.Close()
	err = consume(rc)
	if err == nil {
		// Decoding may finish before a late cancellation is observed.
		err = ctx.Err()
	}
	if err != nil {
		glplay.Logger().Warn("assets: read failed", "url", url, "err", err)
		return &FetchError{URL: url, Err: fmt.Errorf("reading: %w", err)}
	}
	return nil
}

func (l *Loader) fit(img image.Image) image.Image {
	maxDim := l.MaxDimension
	b := img.Bounds()
	if maxDim <= 0 || (b.Dx() <= maxDim && b.Dy() <= maxDim) {
		return img
	}
	return resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Bilinear)
}

func (l *Loader) limit() int {
	if l.Concurrency < 1 {
		return -1
	}
	return l.Concurrency
}
