package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailRequestFromQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
		url   string
		width int
	}{
		{"url and width", "url=http://example.com/a.png&width=320", "http://example.com/a.png", 320},
		{"width defaults", "url=http://example.com/a.png", "http://example.com/a.png", DefaultWidth},
		{"url defaults empty", "width=64", "", 64},
		{"unknown keys ignored", "url=a&foo=bar&width=10", "a", 10},
		{"pair without equals ignored", "url=a&junk&width=10", "a", 10},
		{"value keeps later equals", "url=a=b=c", "a=b=c", DefaultWidth},
		{"no percent decoding", "url=http%3A%2F%2Fexample.com%2Fa.png", "http%3A%2F%2Fexample.com%2Fa.png", DefaultWidth},
		{"plus stays literal", "url=a+b.png", "a+b.png", DefaultWidth},
		{"last repeated key wins", "url=first&url=second", "second", DefaultWidth},
		{"zero width parses", "url=a&width=0", "a", 0},
		{"empty pairs skipped", "&&url=a", "a", DefaultWidth},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := ThumbnailRequestFromQuery(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.url, req.URL)
			assert.Equal(t, tc.width, req.Width)
		})
	}
}

func TestThumbnailRequestFromQueryRejectsBadWidth(t *testing.T) {
	for _, query := range []string{
		"url=a&width=abc",
		"url=a&width=-1",
		"url=a&width=1.5",
		"url=a&width=",
		"url=a&width=4294967296",
	} {
		_, err := ThumbnailRequestFromQuery(query)
		assert.ErrorIs(t, err, ErrInvalidWidth, query)
	}
}
