package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"thumbnailer/api/model"
	"thumbnailer/config"
	"thumbnailer/converter"
	"thumbnailer/fetch"
)

func newTestService(t *testing.T) *ThumbnailService {
	t.Helper()

	cfg := &config.Config{
		FetchTimeoutInSec:  5,
		MaxSourceSizeBytes: 1 << 20,
		FetchUserAgent:     "thumbnailer-test/1.0",
		RenderWorkers:      2,
	}
	logger := zap.NewNop()

	svc := NewThumbnailService(cfg, fetch.New(cfg, nil, logger), converter.MustConverter(logger), logger)
	t.Cleanup(svc.Close)
	return svc
}

func servePNG(t *testing.T, width, height int) *httptest.Server {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProcessProducesThumbnail(t *testing.T) {
	srv := servePNG(t, 200, 200)
	svc := newTestService(t)

	resp, err := svc.Process(context.Background(), model.ThumbnailRequest{URL: srv.URL + "/cover.png", Width: 100})
	require.NoError(t, err)
	assert.Equal(t, "png", resp.Type)
	assert.Equal(t, "inline; filename=cover.png", resp.ContentDisposition)
	assert.Equal(t, 100, resp.Width)
	assert.Equal(t, 100, resp.Height)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, resp.ContentLength, int64(len(raw)))

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestProcessPropagatesFetchFailures(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Process(context.Background(), model.ThumbnailRequest{URL: "ftp://example.com/a.png", Width: 10})
	assert.ErrorIs(t, err, fetch.ErrRequestFailed)
}

func TestProcessStopsOnCancelledContext(t *testing.T) {
	srv := servePNG(t, 200, 200)
	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Process(ctx, model.ThumbnailRequest{URL: srv.URL, Width: 100})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestThumbnailFilename(t *testing.T) {
	cases := map[string]string{
		"http://example.com/images/cat.png":  "cat.png",
		"http://example.com/images/cat.jpeg": "cat.png",
		"http://example.com/cat":             "cat.png",
		"http://example.com/":                "thumbnail.png",
		"http://example.com":                 "thumbnail.png",
		"s3://covers/books/demo.png":         "demo.png",
		"":                                   "thumbnail.png",
	}

	for raw, want := range cases {
		assert.Equal(t, want, thumbnailFilename(raw), raw)
	}
}
