package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aminati-ec/catalog-studio/internal/api/handlers"
	"github.com/aminati-ec/catalog-studio/internal/api/middleware"
	"github.com/aminati-ec/catalog-studio/internal/cache"
	"github.com/aminati-ec/catalog-studio/internal/config"
	"github.com/aminati-ec/catalog-studio/internal/describe"
	"github.com/aminati-ec/catalog-studio/internal/health"
	"github.com/aminati-ec/catalog-studio/internal/importer"
	"github.com/aminati-ec/catalog-studio/internal/merge"
	"github.com/aminati-ec/catalog-studio/internal/metrics"
	"github.com/aminati-ec/catalog-studio/internal/pipeline"
	"github.com/aminati-ec/catalog-studio/internal/publisher"
	"github.com/aminati-ec/catalog-studio/internal/renderer"
	"github.com/aminati-ec/catalog-studio/pkg/gemini"
	"github.com/aminati-ec/catalog-studio/pkg/github"
	"github.com/aminati-ec/catalog-studio/pkg/r2"
	"github.com/aminati-ec/catalog-studio/pkg/sendgrid"
	"github.com/redis/go-redis/v9"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	ctx := context.Background()

	// Generative client is optional: without a key every description comes
	// from the local fallback composition.
	var generator describe.Generator
	if cfg.Gemini.APIKey != "" {
		geminiClient, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
		if err != nil {
			slog.Error("❌ Error creating Gemini client", "error", err.Error())
			os.Exit(1)
		}
		defer geminiClient.Close()
		generator = geminiClient
		slog.Info("✅ Gemini client initialized", slog.String("model", cfg.Gemini.Model))
	} else {
		slog.Warn("⚠️ GEMINI_API_KEY not set, descriptions will use the fallback template")
	}

	// Description cache is optional too.
	var descriptionCache cache.Cache
	if cfg.RedisConnect.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConnect.Addr,
			Password: cfg.RedisConnect.Password,
			DB:       cfg.RedisConnect.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.Error("❌ Error accessing the redis instance", "error", err.Error())
			os.Exit(1)
		}

		descriptionCache = cache.NewRedisCache(redisClient, &cfg.Cache)
		defer descriptionCache.Close()
		slog.Info("✅ Redis description cache initialized")
	}

	var uploader pipeline.Uploader
	if cfg.R2.AccessKeyID != "" {
		u, err := r2.NewUploader(ctx, r2.Config{
			Endpoint:        cfg.R2.Endpoint(),
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			Bucket:          cfg.R2.Bucket,
			PublicURL:       cfg.R2.PublicURL,
		})
		if err != nil {
			slog.Error("❌ Error creating R2 uploader", "error", err.Error())
			os.Exit(1)
		}
		uploader = u
		slog.Info("✅ R2 uploader initialized", slog.String("bucket", cfg.R2.Bucket))
	} else {
		slog.Warn("⚠️ R2 credentials not set, image uploads are disabled")
	}

	contentStore := github.NewClient(github.Config{
		Token:  cfg.GitHub.Token,
		Owner:  cfg.GitHub.Owner,
		Repo:   cfg.GitHub.Repo,
		Branch: cfg.GitHub.Branch,
	})

	pageRenderer, err := renderer.New(renderer.Config{
		StoreName:        cfg.Store.Name,
		BrandFallback:    cfg.Store.BrandFallback,
		PlaceholderImage: cfg.Store.PlaceholderImage,
		CODFee:           int(cfg.Store.CODFee),
		OrderEmail:       cfg.SendGrid.OrderEmail,
	})
	if err != nil {
		slog.Error("❌ Error building page templates", "error", err.Error())
		os.Exit(1)
	}

	synthesizer := describe.NewSynthesizer(generator,
		describe.DefaultRetryPolicy(gemini.IsRetryable),
		descriptionCache, cfg.Cache.DefaultTTL, logger)

	pub := publisher.New(contentStore, logger)
	pipelineService := pipeline.NewService(uploader, synthesizer, pageRenderer,
		merge.New(logger), pub, logger)

	session := pipeline.NewSession(logger)
	catalogHandler := handlers.NewCatalogHandler(session, importer.NewParser(logger), pipelineService)

	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, cfg.SendGrid.OrderEmail)
	orderHandler := handlers.NewOrderHandler(emailService)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{ContentStore: contentStore})
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("components initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/imports", catalogHandler.Import())
	routerMux.HandleFunc("POST /api/v1/assets", catalogHandler.RegisterAsset())
	routerMux.HandleFunc("GET /api/v1/session", catalogHandler.Session())
	routerMux.HandleFunc("POST /api/v1/generate", catalogHandler.Generate())
	routerMux.HandleFunc("POST /api/v1/sync", catalogHandler.Sync())
	routerMux.HandleFunc("POST /api/v1/orders/notify", orderHandler.Notify())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {

		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
