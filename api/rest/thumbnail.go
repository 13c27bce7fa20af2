package rest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"thumbnailer/api/model"
	"thumbnailer/config"
	"thumbnailer/service"
	"thumbnailer/shared/log"
)

type ThumbnailController struct {
	cfg     *config.Config
	service *service.ThumbnailService
	logger  *zap.Logger
}

func NewThumbnailController(app *fiber.App, cfg *config.Config, service *service.ThumbnailService, logger *zap.Logger) *ThumbnailController {
	t := &ThumbnailController{service: service, cfg: cfg, logger: logger}

	// app.Get would register HEAD alongside GET; only GET may match here.
	app.Add(fiber.MethodGet, "/thumbnail", t.Thumbnail)

	// Anything else answers 404 with an empty body.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Send(nil)
	})

	return t
}

// Thumbnail renders a scaled down copy of a remote image
//
//	@Summary		Render a thumbnail for a source image
//	@Description	Downloads the png behind url and scales it down to the requested width, keeping the source aspect ratio.
//	@Tags			thumbnail
//	@Produce		image/png
//	@Param			url		query	string	true	"Source image url, fetched byte for byte as sent"
//	@Param			width	query	int		false	"Target width in pixels"	default(180)
//	@Success		200		{file}	file	"Returns the rendered thumbnail"
//	@Router			/thumbnail [get]
func (t *ThumbnailController) Thumbnail(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), t.cfg.RequestTimeout())
	defer cancel()
	logger := log.LoggerWithTrace(ctx, t.logger)

	query := c.Request().URI().QueryString()
	if len(query) == 0 {
		return model.ErrMissingQuery
	}

	params, err := model.ThumbnailRequestFromQuery(string(query))
	if err != nil {
		logger.Error("Error parsing query", zap.Error(err))
		return err
	}

	logger.Debug(fmt.Sprintf("Processing thumbnail with params: %++v", params))

	image, err := t.service.Process(ctx, params)
	if err != nil {
		logger.Error("Error processing thumbnail", zap.Error(err))
		return err
	}

	c.Type(image.Type)
	c.Set("Content-Length", strconv.Itoa(int(image.ContentLength)))
	c.Set("Content-Disposition", image.ContentDisposition)

	return c.SendStream(image.Body, int(image.ContentLength))
}
