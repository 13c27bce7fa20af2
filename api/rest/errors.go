package rest

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"thumbnailer/api/model"
	"thumbnailer/converter"
	"thumbnailer/fetch"
)

// StatusForError maps pipeline failures onto http statuses. Deadline expiry
// wins over whichever stage it surfaced from, so a slow upstream reports as
// a timeout rather than a generic fetch failure.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, model.ErrMissingQuery),
		errors.Is(err, model.ErrInvalidWidth),
		errors.Is(err, converter.ErrBadGeometry):
		return fiber.StatusBadRequest
	case errors.Is(err, fetch.ErrSourceTooLarge),
		errors.Is(err, fetch.ErrUpstreamStatus),
		errors.Is(err, fetch.ErrRequestFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, converter.ErrBadImage):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, converter.ErrEncode):
		return fiber.StatusInternalServerError
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	return fiber.StatusInternalServerError
}

// NewErrorHandler answers failed requests with the mapped status and a
// small json body.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := StatusForError(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error("Request failed", zap.Int("status", status), zap.Error(err))
		}

		return c.Status(status).JSON(model.ErrorResponse{Error: err.Error()})
	}
}
