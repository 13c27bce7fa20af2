package main

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hyperdxio/otel-config-go/otelconfig"

	"thumbnailer/api/rest"
	"thumbnailer/config"
	"thumbnailer/converter"
	"thumbnailer/fetch"
	"thumbnailer/service"
	"thumbnailer/shared/log"
	"thumbnailer/shared/trace"
)

//	@title			Thumbnailer service
//	@version		1.0
//	@description	This is an API for the Thumbnailer service

// @BasePath	/
func main() {
	serviceConfig := config.New()

	ctx := context.Background()

	tp := trace.InitTrace(serviceConfig.AppName)
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			slog.Error("Error shutting down tracer provider", "error", err)
		}
	}()

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		slog.Error("Error configuring OpenTelemetry", "error", err)
	}
	defer otelShutdown()

	logger := log.InitLogger(ctx, serviceConfig.LogLevel)
	defer func() {
		if err = logger.Sync(); err != nil {
			slog.Error("Error syncing logger", "error", err)
		}
	}()

	awsConfig := &aws.Config{
		Region:           aws.String(serviceConfig.S3Region),
		Endpoint:         &serviceConfig.S3Endpoint,
		S3ForcePathStyle: aws.Bool(serviceConfig.S3ForcePathStyle),
	}
	if serviceConfig.S3AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(serviceConfig.S3AccessKey, serviceConfig.S3SecretKey, "")
	}
	awsSession, err := session.NewSession(awsConfig)
	if err != nil {
		logger.Error(err.Error())
		panic("Failed to create aws session")
	}

	imageConverter := converter.MustConverter(logger)
	fetcher := fetch.New(serviceConfig, s3.New(awsSession), logger)

	thumbnailService := service.NewThumbnailService(serviceConfig, fetcher, imageConverter, logger)
	defer thumbnailService.Close()

	app := fiber.New(fiber.Config{
		AppName:       serviceConfig.AppName,
		CaseSensitive: true,
		StrictRouting: true,
		ErrorHandler:  rest.NewErrorHandler(logger),
	})
	app.Use(
		recover.New(),
		otelfiber.Middleware(),
		fiberzap.New(fiberzap.Config{Logger: logger}),
		compress.New(compress.Config{Level: compress.LevelBestSpeed}),
		swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Thumbnailer service",
		}),
	)

	rest.NewThumbnailController(app, serviceConfig, thumbnailService, logger)

	if err = app.Listen(serviceConfig.Host + ":" + serviceConfig.Port); err != nil {
		logger.Panic(err.Error())
		return
	}
}
