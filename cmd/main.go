package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog_service/config"
	"catalog_service/internal/clients"
	"catalog_service/internal/delivery"
	grpcHandler "catalog_service/internal/delivery/grpc"
	"catalog_service/internal/domain"
	"catalog_service/internal/repository"
	"catalog_service/internal/usecase"
	"catalog_service/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	readyTimeout  = 15 * time.Second
	readyInterval = 200 * time.Millisecond
)

func main() {
	logger := setupLogger()

	cfg := config.LoadConfig(logger)
	configureLogger(logger, cfg)
	logger.Infof("Starting Catalog Service (%s)...", cfg.AppEnv)

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	//  Stores
	categoryRepo, productRepo, database := setupStores(cfg, logger)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Errorf("Error closing database connection: %v", err)
			} else {
				logger.Info("Database connection closed.")
			}
		}()
	}

	// --- Dependency Injection ---
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, productRepo, cfg.PlaceholderImage, logger)
	categoryHandler := delivery.NewCategoryHandler(categoryUseCase, logger)
	router := delivery.NewRouter(categoryHandler, logger, cfg.IsDevelopment())
	logger.Info("Handlers and routes initialized.")

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	healthServer := grpcHandler.NewHealthServer(logger)
	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		logger.Fatalf("Failed to listen on port %s: %v", cfg.GrpcPort, err)
	}
	go func() {
		if err := healthServer.Serve(lis); err != nil {
			logger.Fatalf("Failed to serve gRPC: %v", err)
		}
		logger.Info("gRPC server stopped serving.")
	}()

	// gRPC health reports SERVING only once the HTTP API answers a real list call.
	if err := waitForHTTP(cfg.HTTPPort, logger); err != nil {
		logger.Fatalf("HTTP API did not become ready: %v", err)
	}
	healthServer.SetServing(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Warn("Shutdown signal received...")

	healthServer.SetServing(false)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP server forced to shutdown: %v", err)
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	healthServer.GracefulStop()
	logger.Info("gRPC server gracefully stopped.")
	logger.Info("Catalog Service shut down gracefully.")
}

func setupLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// configureLogger applies the loaded config: JSON output outside
// development, and the configured level.
func configureLogger(logger *logrus.Logger, cfg *config.Config) {
	if !cfg.IsDevelopment() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
		return
	}
	logger.SetLevel(logLevel)
}

func waitForHTTP(listenAddr string, logger *logrus.Logger) error {
	baseURL, err := clients.BaseURL(listenAddr)
	if err != nil {
		return err
	}
	client := clients.NewCategoryHTTPClient(baseURL, readyInterval*5, logger)

	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	defer cancel()
	if err := clients.WaitReady(ctx, client, readyInterval); err != nil {
		return err
	}
	logger.Infof("HTTP API ready at %s", baseURL)
	return nil
}

func setupStores(cfg *config.Config, logger *logrus.Logger) (domain.CategoryRepository, domain.ProductRepository, *sql.DB) {
	if !cfg.UsePostgres() {
		var categories []domain.Category
		var products []domain.Product
		if cfg.SeedData {
			categories = repository.SeedCategories()
			products = repository.SeedProducts()
		}
		logger.Infof("Using in-memory stores (%d categories, %d products seeded)", len(categories), len(products))
		return repository.NewMemoryCategoryRepository(categories, logger),
			repository.NewMemoryProductRepository(products, logger),
			nil
	}

	logger.Info("Connecting to database...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Database connection established.")

	if err := repository.EnsureSchema(ctx, database, cfg.SeedData, logger); err != nil {
		database.Close()
		logger.Fatalf("Failed to prepare database schema: %v", err)
	}

	return repository.NewPostgresCategoryRepository(database, logger),
		repository.NewPostgresProductRepository(database, logger),
		database
}
