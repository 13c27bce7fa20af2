package model

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// DefaultWidth is applied when the query string carries no width parameter.
const DefaultWidth = 180

var (
	ErrMissingQuery = errors.New("request carries no query string")
	ErrInvalidWidth = errors.New("width is not an unsigned integer")
)

// ThumbnailRequest is the validated form of a /thumbnail query string.
type ThumbnailRequest struct {
	URL   string
	Width int
}

// ThumbnailRequestFromQuery parses the raw query-string bytes of the request
// URI. Pairs are split on '&' and keys from values on the first '=' only;
// nothing is percent-decoded, the url value is taken byte for byte as the
// client sent it. Keys other than url and width are ignored, as are pairs
// without a '='. A repeated key keeps its last value.
func ThumbnailRequestFromQuery(query string) (ThumbnailRequest, error) {
	req := ThumbnailRequest{Width: DefaultWidth}

	for _, pair := range strings.Split(query, "&") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}

		switch key {
		case "url":
			req.URL = value
		case "width":
			width, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return ThumbnailRequest{}, ErrInvalidWidth
			}
			req.Width = int(width)
		}
	}

	return req, nil
}

// ThumbnailResponse carries an encoded thumbnail back to the controller.
type ThumbnailResponse struct {
	Type               string
	ContentLength      int64
	ContentDisposition string
	Width              int
	Height             int

	Body io.Reader
}

type ErrorResponse struct {
	Error string `json:"error"`
}
