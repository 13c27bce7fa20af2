package converter

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"

	"go.uber.org/zap"

	"thumbnailer/shared/log"
)

var ErrEncode = errors.New("encoding thumbnail to png failed")

type Png struct {
	logger *zap.Logger
}

func MustPng(logger *zap.Logger) *Png {
	return &Png{logger: logger}
}

func (p *Png) Encode(ctx context.Context, img image.Image) (io.Reader, int64, error) {
	logger := log.LoggerWithTrace(ctx, p.logger)
	logger.Debug("Converting image to png")

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		logger.Error(err.Error())
		return nil, 0, errors.Join(ErrEncode, err)
	}

	return &buf, int64(buf.Len()), nil
}
