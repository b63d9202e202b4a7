package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/tarpaulin/tarpaulin/pkg/config"
	"github.com/tarpaulin/tarpaulin/pkg/dependency_container"
	"github.com/tarpaulin/tarpaulin/pkg/infra/database"
	infraLogger "github.com/tarpaulin/tarpaulin/pkg/infra/logger"
	"github.com/tarpaulin/tarpaulin/pkg/infra/prometheus"
	"github.com/tarpaulin/tarpaulin/pkg/server"
	"github.com/tarpaulin/tarpaulin/pkg/version"
)

// @title Tarpaulin API
// @description Course management API with rate limited access
// @BasePath /
func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger, logCloser, err := infraLogger.NewLogger(infraLogger.Options{Dir: os.Getenv("LOG_DIR")})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logCloser.Close() }()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config"
	}
	if err := config.Load(configPath); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	prometheus.Initialize(prometheus.MetricsConfig{Enabled: cfg.Metrics.Enabled})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(ctx, logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer func() { _ = db.Close() }()

	container, err := dependency_container.NewContainer(ctx, dependency_container.ContainerDI{
		Cfg:    cfg,
		Logger: logger,
		DB:     db,
	})
	if err != nil {
		logger.Fatalf("failed to initialize dependencies: %v", err)
	}
	defer func() { _ = container.Close() }()

	srv := server.NewAPIServer(cfg, logger, container.Router())

	logger.WithField("version", version.GetInfo().String()).Info("starting")
	if err := srv.Run(ctx); err != nil {
		logger.WithError(err).Error("server stopped with error")
		return
	}
	logger.Info("server gracefully stopped")
}
