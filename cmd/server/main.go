package main

import (
	"context"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpadapter "github.com/campus-market/listing-service/internal/adapter/http"
	"github.com/campus-market/listing-service/internal/adapter/http/middleware"
	"github.com/campus-market/listing-service/internal/adapter/messaging/nats"
	"github.com/campus-market/listing-service/internal/adapter/repository/cache"
	"github.com/campus-market/listing-service/internal/adapter/repository/mongodb"
	"github.com/campus-market/listing-service/internal/adapter/storage/disk"
	"github.com/campus-market/listing-service/internal/adapter/storage/s3"
	"github.com/campus-market/listing-service/internal/config"
	"github.com/campus-market/listing-service/internal/mailer"
	"github.com/campus-market/listing-service/internal/platform/logger"
	"github.com/campus-market/listing-service/internal/platform/tracer"
	"github.com/campus-market/listing-service/internal/product/usecase"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	tp := tracer.InitTracer()
	defer tp.Shutdown(context.Background())

	mongoClient, err := mongodb.NewConnection(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "uri", cfg.MongoURI, "error", err)
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDB)

	productRepo := mongodb.NewProductRepository(db)
	if err := productRepo.EnsureIndexes(context.Background()); err != nil {
		log.Warn("Failed to create product indexes", "error", err)
	}

	// Photo storage: local uploads dir by default, MinIO when configured.
	var storage usecase.Storage
	uploadsDir := ""
	switch cfg.StorageDriver {
	case "s3":
		storage, err = s3.NewS3Storage(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", "error", err)
		}
	default:
		diskStorage, diskErr := disk.NewDiskStorage(cfg.UploadsDir, log)
		if diskErr != nil {
			log.Fatal("Failed to initialize disk storage", "dir", cfg.UploadsDir, "error", diskErr)
		}
		storage = diskStorage
		uploadsDir = diskStorage.Dir()
	}

	natsPublisher, err := nats.NewPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatal("Failed to connect to NATS", "url", cfg.NATSURL, "error", err)
	}
	defer natsPublisher.Close()

	// Cache is best-effort; the service runs without it.
	var productCache usecase.Cache
	if redisCache, cacheErr := cache.NewProductCache(cfg.RedisAddress); cacheErr != nil {
		log.Warn("Redis unavailable, running without product cache", "address", cfg.RedisAddress, "error", cacheErr)
	} else {
		productCache = redisCache
	}

	var emailSender usecase.EmailSender
	if cfg.SMTPEmail != "" {
		emailSender = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	}

	productUC := usecase.NewProductUsecase(productRepo, productCache, natsPublisher, emailSender, log)
	photoUC := usecase.NewPhotoUsecase(storage, log)
	handler := httpadapter.NewHandler(productUC, photoUC, log)

	var adminAuth middleware.Authorizer
	if cfg.AdminAuthMode == "jwt" {
		adminAuth = middleware.NewTokenAuthorizer(cfg.JWTSecret)
	} else {
		adminAuth = middleware.NewSecretAuthorizer(cfg.AdminSecret)
	}

	router := httpadapter.NewRouter(handler, adminAuth, log, uploadsDir)

	addr := ":" + cfg.HTTPPort
	log.Info("Starting HTTP server", "addr", addr, "storage_driver", cfg.StorageDriver, "admin_auth_mode", cfg.AdminAuthMode)
	if err := http.ListenAndServe(addr, otelhttp.NewHandler(router, "http.server")); err != nil {
		log.Fatal("HTTP server failed", "error", err)
	}
}
