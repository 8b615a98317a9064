package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// newImageServer serves a.png (1x1), c.png (2x3) and slow.png, which blocks
// until its request is cancelled. Every other path is 404.
func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	a := encodePNG(t, 1, 1, color.RGBA{R: 255, A: 255})
	c := encodePNG(t, 2, 3, color.RGBA{B: 255, A: 255})
	mux := http.NewServeMux()
	mux.HandleFunc("/a.png", func(w http.ResponseWriter, r *http.Request) { w.Write(a) })
	mux.HandleFunc("/c.png", func(w http.ResponseWriter, r *http.Request) { w.Write(c) })
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
			w.Write(a)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadAllImagesFailsBatch(t *testing.T) {
	srv := newImageServer(t)
	l := NewLoader(HTTPFetcher{Client: srv.Client()})
	urls := []string{srv.URL + "/a.png", srv.URL + "/bad.png", srv.URL + "/c.png"}
	images, err := l.LoadAllImages(context.Background(), urls)
	require.Error(t, err)
	assert.Nil(t, images, "no partial results")
	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, srv.URL+"/bad.png", ferr.URL)
}

func TestLoadAllImagesOrder(t *testing.T) {
	srv := newImageServer(t)
	l := NewLoader(HTTPFetcher{Client: srv.Client()})
	urls := []string{srv.URL + "/c.png", srv.URL + "/a.png", srv.URL + "/c.png"}
	images, err := l.LoadAllImages(context.Background(), urls)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, image.Rect(0, 0, 2, 3), images[0].Bounds())
	assert.Equal(t, image.Rect(0, 0, 1, 1), images[1].Bounds())
	assert.Equal(t, image.Rect(0, 0, 2, 3), images[2].Bounds())
}

func TestLoadAllImagesCancelsInFlight(t *testing.T) {
	srv := newImageServer(t)
	l := NewLoader(HTTPFetcher{Client: srv.Client()})
	start := time.Now()
	_, err := l.LoadAllImages(context.Background(), []string{srv.URL + "/slow.png", srv.URL + "/bad.png"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "slow fetch must be cancelled")
}

func TestLoadImagesPerItem(t *testing.T) {
	srv := newImageServer(t)
	l := NewLoader(HTTPFetcher{Client: srv.Client()})
	urls := []string{srv.URL + "/a.png", srv.URL + "/bad.png", srv.URL + "/c.png"}
	results := l.LoadImages(context.Background(), urls)
	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, urls[i], res.URL)
	}
	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Image)
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Image)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, 2, results[2].Image.Bounds().Dx())
}

func TestLoadImageTimeout(t *testing.T) {
	srv := newImageServer(t)
	l := NewLoader(HTTPFetcher{Client: srv.Client()})
	l.Timeout = 50 * time.Millisecond
	_, err := l.LoadImage(context.Background(), srv.URL+"/slow.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadImageDecodeError(t *testing.T) {
	fsys := fstest.MapFS{"notimage.png": {Data: []byte("hello")}}
	l := NewLoader(FSFetcher{FS: fsys})
	_, err := l.LoadImage(context.Background(), "notimage.png")
	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestLoadImageBMPAndMaxDimension(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 32))
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))
	fsys := fstest.MapFS{"textures/wide.bmp": {Data: buf.Bytes()}}

	l := NewLoader(FSFetcher{FS: fsys})
	img, err := l.LoadImage(context.Background(), "/textures/wide.bmp")
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	l.MaxDimension = 16
	img, err = l.LoadImage(context.Background(), "textures/wide.bmp")
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestLoadText(t *testing.T) {
	fsys := fstest.MapFS{"readme.txt": {Data: []byte("hello")}}
	l := NewLoader(FSFetcher{FS: fsys})
	text, err := l.LoadText(context.Background(), "readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	_, err = l.LoadText(context.Background(), "missing.txt")
	assert.Error(t, err)
}

func TestNilFetcher(t *testing.T) {
	var l Loader
	_, err := l.LoadImage(context.Background(), "a.png")
	assert.Error(t, err)
}
