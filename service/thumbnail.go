package service

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/Jeffail/tunny"
	"go.uber.org/zap"

	"thumbnailer/api/model"
	"thumbnailer/config"
	"thumbnailer/converter"
	"thumbnailer/fetch"
	"thumbnailer/shared/log"
)

// ThumbnailService runs the fetch and render pipeline. Decoding and
// resizing are cpu bound, so they go through a fixed worker pool instead
// of running on every request goroutine at once.
type ThumbnailService struct {
	cfg       *config.Config
	fetcher   *fetch.Fetcher
	converter *converter.Converter
	pool      *tunny.Pool

	logger *zap.Logger
}

type renderJob struct {
	ctx   context.Context
	raw   []byte
	width int
}

type renderResult struct {
	thumb *converter.Thumbnail
	err   error
}

func NewThumbnailService(cfg *config.Config, fetcher *fetch.Fetcher, conv *converter.Converter, logger *zap.Logger) *ThumbnailService {
	s := &ThumbnailService{cfg: cfg, fetcher: fetcher, converter: conv, logger: logger}

	workers := cfg.RenderWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	s.pool = tunny.NewFunc(workers, func(payload interface{}) interface{} {
		job := payload.(*renderJob)
		thumb, err := s.converter.Render(job.ctx, job.raw, job.width)
		return &renderResult{thumb: thumb, err: err}
	})

	return s
}

func (s *ThumbnailService) Close() {
	s.pool.Close()
}

// Process serves one thumbnail request end to end: download the source,
// render it on the pool and wrap the bytes for the controller.
func (s *ThumbnailService) Process(ctx context.Context, params model.ThumbnailRequest) (*model.ThumbnailResponse, error) {
	logger := log.LoggerWithTrace(ctx, s.logger)

	started := time.Now()
	raw, err := s.fetcher.Fetch(ctx, params.URL)
	if err != nil {
		return nil, err
	}
	logger.Debug("Downloaded source image",
		zap.Int("bytes", len(raw)), zap.Duration("took", time.Since(started)))

	started = time.Now()
	payload, err := s.pool.ProcessCtx(ctx, &renderJob{ctx: ctx, raw: raw, width: params.Width})
	if err != nil {
		return nil, err
	}
	result := payload.(*renderResult)
	if result.err != nil {
		return nil, result.err
	}
	thumb := result.thumb
	logger.Debug("Rendered thumbnail",
		zap.Int("width", thumb.Width), zap.Int("height", thumb.Height),
		zap.Duration("took", time.Since(started)))

	return &model.ThumbnailResponse{
		Type:               "png",
		ContentLength:      thumb.ContentLength,
		ContentDisposition: fmt.Sprintf("inline; filename=%s", thumbnailFilename(params.URL)),
		Width:              thumb.Width,
		Height:             thumb.Height,
		Body:               thumb.Body,
	}, nil
}

// thumbnailFilename derives a download name from the source url basename,
// normalised to a .png extension.
func thumbnailFilename(rawURL string) string {
	name := ""
	if u, err := url.Parse(rawURL); err == nil {
		name = path.Base(u.Path)
	}
	if name == "" || name == "." || name == "/" {
		return "thumbnail.png"
	}

	if ext := path.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}

	return name + ".png"
}
