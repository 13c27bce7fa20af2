package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppliesDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "thumbnailer", cfg.AppName)
	assert.Equal(t, 60, cfg.RequestTimeoutInSec)
	assert.Equal(t, 30, cfg.FetchTimeoutInSec)
	assert.Equal(t, int64(52428800), cfg.MaxSourceSizeBytes)
	assert.Equal(t, "thumbnailer/1.0", cfg.FetchUserAgent)
	assert.Equal(t, 0, cfg.RenderWorkers)
	assert.False(t, cfg.S3ForcePathStyle)

	assert.Equal(t, 60*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout())
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("REQUEST_TIMEOUT_IN_SEC", "5")
	t.Setenv("MAX_SOURCE_SIZE_BYTES", "1024")
	t.Setenv("RENDER_WORKERS", "4")
	t.Setenv("S3_FORCE_PATH_STYLE", "true")

	cfg := New()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.RequestTimeoutInSec)
	assert.Equal(t, int64(1024), cfg.MaxSourceSizeBytes)
	assert.Equal(t, 4, cfg.RenderWorkers)
	assert.True(t, cfg.S3ForcePathStyle)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
}
