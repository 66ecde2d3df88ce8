package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	logger_adapter "github.com/Sterdizzy/ez-olx/internal/adapters/logger"
	"github.com/Sterdizzy/ez-olx/internal/adapters/olxfetcher"
	postgres_adapter "github.com/Sterdizzy/ez-olx/internal/adapters/postgres"
	"github.com/Sterdizzy/ez-olx/internal/adapters/rest"
	"github.com/Sterdizzy/ez-olx/internal/adapters/storage"
	"github.com/Sterdizzy/ez-olx/internal/configs"
	"github.com/Sterdizzy/ez-olx/internal/core/port"
	"github.com/Sterdizzy/ez-olx/internal/core/usecase"
	"github.com/Sterdizzy/ez-olx/pkg/fluentlogger"
	"github.com/Sterdizzy/ez-olx/pkg/postgres"
)

// App wires the whole service together.
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
	apiServer    *rest.Server
}

// NewApp is the composition root: every dependency is created and connected
// here.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- loggers ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- persistence ---
	// A configured DATABASE_URL selects the PostgreSQL store; without it the
	// service keeps everything in process memory.
	var dbPool *pgxpool.Pool
	var kvStore port.KeyValueStorePort
	if appConfig.Database.URL != "" {
		dbPool, err = postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		kvStore, err = postgres_adapter.NewKeyValueStoreAdapter(context.Background(), dbPool)
		if err != nil {
			appLogger.Error("Failed to initialize key-value store", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to initialize key-value store: %w", err)
		}
	} else {
		appLogger.Warn("DATABASE_URL is not set, using in-memory store", nil)
		kvStore = storage.NewMemoryKeyValueStore()
	}

	// --- outgoing adapters ---
	olxAdapter, err := olxfetcher.NewOLXFetcherAdapter(appConfig.Scraper.ScrapingBeeAPIKey)
	if err != nil {
		appLogger.Error("Failed to create OLX Fetcher Adapter", err, nil)
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, fmt.Errorf("failed to initialize olx fetcher: %w", err)
	}
	appLogger.Info("OLX Fetcher Adapter initialized.", port.Fields{
		"scrapingbee_enabled": appConfig.Scraper.ScrapingBeeAPIKey != "",
	})

	// --- use cases ---
	recentSearchesUC := usecase.NewRecentSearchesUseCase(kvStore)
	savedListingsUC := usecase.NewSavedListingsUseCase(kvStore)
	searchListingsUC := usecase.NewSearchListingsUseCase(olxAdapter, recentSearchesUC, appConfig.Scraper.MaxPages, appConfig.Scraper.PageDelay)
	appLogger.Info("All use cases initialized.", nil)

	// --- incoming adapters ---
	searchHandlers := rest.NewSearchHandlers(searchListingsUC)
	storageHandlers := rest.NewStorageHandlers(recentSearchesUC, savedListingsUC)
	proxyHandler := rest.NewProxyHandler(olxAdapter)
	apiServer := rest.NewServer(appConfig.HTTPPort, searchHandlers, storageHandlers, proxyHandler, baseLogger)

	return &App{
		config:       appConfig,
		dbPool:       dbPool,
		fluentClient: fluentClient,
		logger:       appLogger,
		apiServer:    apiServer,
	}, nil
}

// Run starts the HTTP server and blocks until an OS signal or a server
// failure, then shuts everything down.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// stdout, fluent may already be unreachable
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.HTTPPort})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed to start, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
