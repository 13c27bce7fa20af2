package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"go.uber.org/zap"

	"thumbnailer/api/model"
	"thumbnailer/config"
	"thumbnailer/shared/log"
)

var (
	ErrRequestFailed  = errors.New("fetching source image failed")
	ErrUpstreamStatus = errors.New("source returned a non-200 status")
	ErrSourceTooLarge = errors.New("source image exceeds the size ceiling")
)

// Fetcher retrieves source images over http(s) or from s3. A single
// http client is shared by all requests so connections get reused.
type Fetcher struct {
	cfg    *config.Config
	client *http.Client
	s3     *s3.S3

	logger *zap.Logger
}

func New(cfg *config.Config, s3 *s3.S3, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.FetchTimeout()},
		s3:     s3,
		logger: logger,
	}
}

// Fetch downloads the source behind rawURL. The value is used exactly as it
// appeared on the wire and parsed only far enough to pick a scheme.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	scheme, err := model.MakeFromString(u.Scheme)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	if scheme.IsRemote() {
		return f.fetchHTTP(ctx, rawURL)
	}

	return f.fetchS3(ctx, u)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	logger := log.LoggerWithTrace(ctx, f.logger)
	logger.Debug("Fetching source image", zap.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("User-Agent", f.cfg.FetchUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Received status code " + strconv.Itoa(resp.StatusCode))
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	if resp.ContentLength >= 0 && resp.ContentLength > f.cfg.MaxSourceSizeBytes {
		return nil, ErrSourceTooLarge
	}

	return f.readCapped(resp.Body)
}

func (f *Fetcher) fetchS3(ctx context.Context, u *url.URL) ([]byte, error) {
	logger := log.LoggerWithTrace(ctx, f.logger)

	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: s3 url needs a bucket and a key", ErrRequestFailed)
	}

	logger.Debug("Fetching source object", zap.String("bucket", bucket), zap.String("key", key))

	result, err := f.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.Error(err.Error())
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer result.Body.Close()

	if result.ContentLength != nil && *result.ContentLength > f.cfg.MaxSourceSizeBytes {
		return nil, ErrSourceTooLarge
	}

	return f.readCapped(result.Body)
}

// readCapped reads at most MaxSourceSizeBytes; anything past the ceiling
// means the source lied about (or never sent) its length.
func (f *Fetcher) readCapped(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, f.cfg.MaxSourceSizeBytes+1))
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	if int64(len(raw)) > f.cfg.MaxSourceSizeBytes {
		return nil, ErrSourceTooLarge
	}

	return raw, nil
}
