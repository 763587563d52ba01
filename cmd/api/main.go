package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/credifyai/credify-api/internal/application"
	appanalysis "github.com/credifyai/credify-api/internal/application/analysis"
	"github.com/credifyai/credify-api/internal/config"
	domain "github.com/credifyai/credify-api/internal/domain/analysis"
	"github.com/credifyai/credify-api/internal/domain/faults"
	"github.com/credifyai/credify-api/internal/domain/stats"
	"github.com/credifyai/credify-api/internal/infra/ai/gemini"
	aiopenai "github.com/credifyai/credify-api/internal/infra/ai/openai"
	memorydb "github.com/credifyai/credify-api/internal/infra/db/memory"
	mysqldb "github.com/credifyai/credify-api/internal/infra/db/mysql"
	postgresdb "github.com/credifyai/credify-api/internal/infra/db/postgres"
	"github.com/credifyai/credify-api/internal/infra/httpserver"
	"github.com/credifyai/credify-api/internal/infra/news"
	minioStore "github.com/credifyai/credify-api/internal/infra/storage"
	"github.com/credifyai/credify-api/internal/middleware"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Fatal("config load error", zap.Error(err), zap.String("path", path))
	}

	ctx := context.Background()

	// persistence: history + stats + faults repos per configured driver
	var (
		historyRepo domain.Repository
		statsRepo   stats.Repository
		faultRepo   faults.Repository
		checkers    = map[string]middleware.HealthChecker{}
	)
	switch cfg.Database.Driver {
	case "memory":
		logger.Info("using in-memory storage")
		store := memorydb.NewStore()
		historyRepo = store
		statsRepo = store.StatsRepo()
		faultRepo = store.FaultsRepo()
	case "postgres":
		db, err := postgresdb.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			logger.Fatal("postgres connect error", zap.Error(err))
		}
		defer db.Close()
		historyRepo = postgresdb.NewHistoryRepository(db)
		statsRepo = postgresdb.NewStatsRepository(db)
		faultRepo = postgresdb.NewFaultRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	default:
		db, err := mysqldb.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			logger.Fatal("mysql connect error", zap.Error(err))
		}
		defer db.Close()
		historyRepo = mysqldb.NewHistoryRepository(db)
		statsRepo = mysqldb.NewStatsRepository(db)
		faultRepo = mysqldb.NewFaultRepository(db)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	// model client per configured provider
	var model domain.ModelClient
	switch cfg.AI.Provider {
	case "openai":
		model = aiopenai.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxOutputTokens, *cfg.AI.Temperature)
	default:
		model, err = gemini.NewClient(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxOutputTokens, *cfg.AI.Temperature)
		if err != nil {
			logger.Fatal("gemini init error", zap.Error(err))
		}
	}

	// optional raw-response archive
	var archive domain.RawArchive
	if cfg.Archive.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Archive.Endpoint,
			cfg.Archive.Region,
			cfg.Archive.BucketName,
			cfg.Archive.AccessKey,
			cfg.Archive.SecretKey,
			cfg.Archive.UseSSL,
		)
		if err != nil {
			logger.Fatal("archive init error", zap.Error(err))
		}
		archive = store
	}

	svc := &appanalysis.Service{
		Repo:    historyRepo,
		Stats:   statsRepo,
		Model:   model,
		Faults:  faultRepo,
		Archive: archive,
		Clock:   application.SystemClock{},
		Logger:  logger,
	}

	// optional news poller
	feedCtx, cancelFeed := context.WithCancel(ctx)
	defer cancelFeed()
	var feed *news.Feed
	if cfg.News.Enabled {
		feed = news.NewFeed(cfg.News.Endpoint, cfg.News.APIKey, cfg.News.Country, cfg.NewsRefresh(), logger)
		go feed.Run(feedCtx)
	}

	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware(logger))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if len(cfg.Auth.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	}
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Mount("/", httpserver.NewRouter(svc, feed, logger))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")
	cancelFeed()

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
