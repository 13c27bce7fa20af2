package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v8"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"thumbnailer"`
	Host    string `env:"HOST" envDefault:"127.0.0.1"`
	Port    string `env:"PORT" envDefault:"3000"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	RequestTimeoutInSec int   `env:"REQUEST_TIMEOUT_IN_SEC" envDefault:"60"`
	FetchTimeoutInSec   int   `env:"FETCH_TIMEOUT_IN_SEC" envDefault:"30"`
	MaxSourceSizeBytes  int64 `env:"MAX_SOURCE_SIZE_BYTES" envDefault:"52428800"`

	FetchUserAgent string `env:"FETCH_USER_AGENT" envDefault:"thumbnailer/1.0"`

	// RenderWorkers bounds concurrent decode/resize/encode work.
	// Zero means one worker per CPU.
	RenderWorkers int `env:"RENDER_WORKERS" envDefault:"0"`

	S3Region    string `env:"S3_REGION"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Endpoint  string `env:"S3_ENDPOINT"`

	// S3ForcePathStyle addresses objects as endpoint/bucket/key, which
	// custom S3_ENDPOINT targets like minio expect.
	S3ForcePathStyle bool `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

func New() *Config {
	conf := &Config{}

	if err := env.Parse(conf); err != nil {
		slog.Error(err.Error())

		panic("Failed to parse config")
	}

	return conf
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutInSec) * time.Second
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutInSec) * time.Second
}
