package converter

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"thumbnailer/shared/log"
)

var (
	ErrBadImage    = errors.New("source bytes are not a png image")
	ErrBadGeometry = errors.New("width is out of range for source image")
)

// Thumbnail is an encoded resize result.
type Thumbnail struct {
	Body          io.Reader
	ContentLength int64
	Width         int
	Height        int
}

type Encoder interface {
	Encode(ctx context.Context, img image.Image) (io.Reader, int64, error)
}

type Converter struct {
	encoder Encoder

	logger *zap.Logger
}

func MustConverter(logger *zap.Logger) *Converter {
	return &Converter{encoder: MustPng(logger), logger: logger}
}

// Render decodes raw png bytes, scales them down to width keeping the source
// aspect ratio and encodes the result back to png. The output height is
// origHeight/(origWidth/width) in integer arithmetic, so a width of zero, a
// width beyond the source or a source too thin to survive the division are
// rejected as ErrBadGeometry.
func (c *Converter) Render(ctx context.Context, raw []byte, width int) (*Thumbnail, error) {
	logger := log.LoggerWithTrace(ctx, c.logger)

	src, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		logger.Error(err.Error())
		return nil, errors.Join(ErrBadImage, err)
	}

	bounds := src.Bounds()
	origWidth, origHeight := bounds.Dx(), bounds.Dy()

	if width == 0 || width > origWidth {
		logger.Debug("Rejecting resize geometry",
			zap.Int("source_width", origWidth), zap.Int("width", width))
		return nil, ErrBadGeometry
	}

	ratio := origWidth / width
	height := origHeight / ratio
	if height == 0 {
		logger.Debug("Rejecting resize geometry",
			zap.Int("source_height", origHeight), zap.Int("ratio", ratio))
		return nil, ErrBadGeometry
	}

	logger.Debug("Resizing image",
		zap.Int("source_width", origWidth), zap.Int("source_height", origHeight),
		zap.Int("width", width), zap.Int("height", height))

	resized := imaging.Resize(src, width, height, imaging.NearestNeighbor)

	body, size, err := c.encoder.Encode(ctx, resized)
	if err != nil {
		return nil, err
	}

	return &Thumbnail{Body: body, ContentLength: size, Width: width, Height: height}, nil
}
